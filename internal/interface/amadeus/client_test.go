package amadeus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/pkg/logger"

	"github.com/stretchr/testify/require"
)

const offersBody = `{
  "data": [
    {
      "price": {"total": "512.40", "currency": "USD"},
      "itineraries": [{"segments": [{"carrierCode": "BA", "operating": {"carrierCode": "BA"}}]}],
      "travelerPricings": [{"fareDetailsBySegment": [{"cabin": "ECONOMY"}]}]
    },
    {
      "price": {"total": "433.10", "currency": "USD"},
      "itineraries": [{"segments": [{"carrierCode": "BA", "operating": {"carrierCode": ""}}]}],
      "travelerPricings": [{"fareDetailsBySegment": [{"cabin": "ECONOMY"}]}]
    },
    {
      "price": {"total": "not-a-number", "currency": "USD"},
      "itineraries": [{"segments": [{"carrierCode": "BA"}]}]
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, server.Client(), logger.NewLogger("test"))
}

func TestSearchFlightOffers_ParsesOffers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/shopping/flight-offers", r.URL.Path)
		require.Equal(t, "LHR", r.URL.Query().Get("originLocationCode"))
		require.Equal(t, "JFK", r.URL.Query().Get("destinationLocationCode"))
		require.Equal(t, "2026-09-13", r.URL.Query().Get("departureDate"))
		require.Equal(t, "BA", r.URL.Query().Get("includedAirlineCodes"))
		require.Equal(t, "ECONOMY", r.URL.Query().Get("travelClass"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(offersBody))
	})

	offers, err := client.SearchFlightOffers(context.Background(), "LHR", "JFK", "2026-09-13", []string{"BA"})
	require.NoError(t, err)
	// The malformed-price offer is skipped; the empty operating carrier
	// falls back to the marketing carrier.
	require.Len(t, offers, 2)
	require.Equal(t, "512.4", offers[0].Price.String())
	require.Equal(t, "BA", offers[1].AirlineCode)
	require.Equal(t, "433.1", offers[1].Price.String())
}

func TestSearchFlightOffers_EmptyResultIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})

	offers, err := client.SearchFlightOffers(context.Background(), "CMB", "SIN", "2026-09-13", []string{"UL"})
	require.NoError(t, err)
	require.Empty(t, offers)
}

func TestSearchFlightOffers_RateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.SearchFlightOffers(context.Background(), "LHR", "JFK", "2026-09-13", []string{"BA"})
	require.Equal(t, entity.ReasonRateLimited, entity.QuoteReasonOf(err))
}

func TestSearchFlightOffers_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SearchFlightOffers(context.Background(), "LHR", "JFK", "2026-09-13", []string{"BA"})
	require.Equal(t, entity.ReasonUpstreamError, entity.QuoteReasonOf(err))
}

func TestSearchFlightOffers_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [`))
	})

	_, err := client.SearchFlightOffers(context.Background(), "LHR", "JFK", "2026-09-13", []string{"BA"})
	require.Equal(t, entity.ReasonUpstreamError, entity.QuoteReasonOf(err))
}

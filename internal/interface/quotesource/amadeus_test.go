package quotesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/internal/infrastructure/oauth"
	"skywatch-service/internal/interface/amadeus"
	"skywatch-service/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newAmadeusSource(t *testing.T, handler http.HandlerFunc) *AmadeusSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := amadeus.NewClient(server.URL, server.Client(), logger.NewLogger("test"))
	return NewAmadeusSource(client, logger.NewLogger("test"))
}

func TestAmadeusSource_PicksCheapestQualifyingFare(t *testing.T) {
	source := newAmadeusSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
		  "data": [
		    {"price": {"total": "520.00", "currency": "USD"},
		     "itineraries": [{"segments": [{"carrierCode": "BA"}]}]},
		    {"price": {"total": "480.00", "currency": "USD"},
		     "itineraries": [{"segments": [{"carrierCode": "BA"}]}]},
		    {"price": {"total": "120.00", "currency": "USD"},
		     "itineraries": [{"segments": [{"carrierCode": "VS"}]}]}
		  ]
		}`))
	})

	quote, err := source.Fetch(context.Background(), entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}, "BA")
	require.NoError(t, err)
	require.Equal(t, "480", quote.Price.String())
	require.Equal(t, entity.SourceLive, quote.Source)
	require.Equal(t, "USD", quote.Currency)
}

func TestAmadeusSource_NoFaresFound(t *testing.T) {
	source := newAmadeusSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})

	_, err := source.Fetch(context.Background(), entity.Route{ID: 1, Origin: "CMB", Destination: "SIN"}, "UL")
	require.Equal(t, entity.ReasonNoFaresFound, entity.QuoteReasonOf(err))
}

func TestAmadeusSource_OtherCarrierFaresDoNotQualify(t *testing.T) {
	source := newAmadeusSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
		  "data": [
		    {"price": {"total": "99.00", "currency": "USD"},
		     "itineraries": [{"segments": [{"carrierCode": "VS"}]}]}
		  ]
		}`))
	})

	_, err := source.Fetch(context.Background(), entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}, "BA")
	require.Equal(t, entity.ReasonNoFaresFound, entity.QuoteReasonOf(err))
}

func TestAmadeusSource_CredentialRefreshFailureIsUpstreamError(t *testing.T) {
	// Token endpoint rejects the credentials, so every quote call fails
	// before the search request is even sent.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		t.Errorf("search request sent despite failed token grant: %s", r.URL.Path)
	}))
	t.Cleanup(server.Close)

	amadeusOAuth := oauth.NewAmadeusOAuth("bad-key", "bad-secret", server.URL, logger.NewLogger("test"))
	client := amadeus.NewClient(server.URL, amadeusOAuth.HTTPClient(context.Background()), logger.NewLogger("test"))
	source := NewAmadeusSource(client, logger.NewLogger("test"))

	_, err := source.Fetch(context.Background(), entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}, "BA")
	require.Equal(t, entity.ReasonUpstreamError, entity.QuoteReasonOf(err))
}

func TestAmadeusSource_UpstreamFailurePropagates(t *testing.T) {
	source := newAmadeusSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := source.Fetch(context.Background(), entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}, "BA")
	require.Equal(t, entity.ReasonUpstreamError, entity.QuoteReasonOf(err))
}

package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/pkg/logger"

	"github.com/shopspring/decimal"
)

// Client talks to the Amadeus Flight Offers Search v2 API. The HTTP
// client is expected to carry the OAuth bearer token (see
// infrastructure/oauth); token refresh failures therefore surface here
// as request errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxResults int
	logger     logger.Logger
}

// NewClient creates a new Amadeus API client
func NewClient(baseURL string, httpClient *http.Client, logger logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		maxResults: 10,
		logger:     logger,
	}
}

// FlightOffer is one priced itinerary from a search response, reduced
// to what the pipeline needs.
type FlightOffer struct {
	AirlineCode string
	Price       decimal.Decimal
	Currency    string
	CabinClass  string
}

type flightOffersResponse struct {
	Data []struct {
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
				Operating   struct {
					CarrierCode string `json:"carrierCode"`
				} `json:"operating"`
			} `json:"segments"`
		} `json:"itineraries"`
		TravelerPricings []struct {
			FareDetailsBySegment []struct {
				Cabin string `json:"cabin"`
			} `json:"fareDetailsBySegment"`
		} `json:"travelerPricings"`
	} `json:"data"`
}

// SearchFlightOffers runs one search for a route, restricted to the
// given airline codes. An empty result set is returned as an empty
// slice, not an error; HTTP failures are mapped onto the quote failure
// taxonomy.
func (c *Client) SearchFlightOffers(ctx context.Context, origin, destination, departureDate string, airlineCodes []string) ([]FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", origin)
	params.Set("destinationLocationCode", destination)
	params.Set("departureDate", departureDate)
	params.Set("adults", "1")
	params.Set("travelClass", entity.CabinEconomy)
	params.Set("currencyCode", "USD")
	params.Set("max", fmt.Sprintf("%d", c.maxResults))
	if len(airlineCodes) > 0 {
		params.Set("includedAirlineCodes", strings.Join(airlineCodes, ","))
	}

	endpoint := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, entity.NewQuoteError(entity.ReasonUpstreamError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Covers network failures and failed token refreshes alike.
		return nil, entity.NewQuoteError(entity.ReasonUpstreamError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, entity.NewQuoteError(entity.ReasonRateLimited, fmt.Errorf("amadeus rate limit: %s", resp.Status))
	default:
		return nil, entity.NewQuoteError(entity.ReasonUpstreamError, fmt.Errorf("amadeus api error: %s", resp.Status))
	}

	var body flightOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, entity.NewQuoteError(entity.ReasonUpstreamError, fmt.Errorf("decode flight offers: %w", err))
	}

	offers := make([]FlightOffer, 0, len(body.Data))
	for _, item := range body.Data {
		price, err := decimal.NewFromString(item.Price.Total)
		if err != nil {
			c.logger.Warn("Skipping offer with malformed price",
				"origin", origin,
				"destination", destination,
				"total", item.Price.Total)
			continue
		}

		var carrier string
		if len(item.Itineraries) > 0 && len(item.Itineraries[0].Segments) > 0 {
			seg := item.Itineraries[0].Segments[0]
			carrier = seg.Operating.CarrierCode
			if carrier == "" {
				carrier = seg.CarrierCode
			}
		}
		if carrier == "" {
			continue
		}

		cabin := entity.CabinEconomy
		if len(item.TravelerPricings) > 0 && len(item.TravelerPricings[0].FareDetailsBySegment) > 0 {
			cabin = item.TravelerPricings[0].FareDetailsBySegment[0].Cabin
		}

		currency := item.Price.Currency
		if currency == "" {
			currency = "USD"
		}

		offers = append(offers, FlightOffer{
			AirlineCode: carrier,
			Price:       price,
			Currency:    currency,
			CabinClass:  cabin,
		})
	}

	return offers, nil
}

package quotesource

import (
	"context"
	"testing"

	"skywatch-service/internal/domain/entity"
	"skywatch-service/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMockSource_NeverFails(t *testing.T) {
	source := NewMockSource(0, logger.NewLogger("test"))
	route := entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}

	base, ok := BasePrice(route, "BA")
	require.True(t, ok)
	// One cent of slack on both ends for the Round(2) in the generator.
	cent := decimal.NewFromFloat(0.01)
	low := base.Mul(decimal.NewFromFloat(jitterLow)).Sub(cent)
	high := base.Mul(decimal.NewFromFloat(jitterHigh)).Add(cent)

	for i := 0; i < 1000; i++ {
		quote, err := source.Fetch(context.Background(), route, "BA")
		require.NoError(t, err)
		require.Equal(t, "USD", quote.Currency)
		require.Equal(t, entity.SourceMock, quote.Source)
		require.True(t, quote.Price.GreaterThanOrEqual(low),
			"price %s below jitter band [%s, %s]", quote.Price, low, high)
		require.True(t, quote.Price.LessThanOrEqual(high),
			"price %s above jitter band [%s, %s]", quote.Price, low, high)
	}
}

func TestMockSource_VariesBetweenCalls(t *testing.T) {
	source := NewMockSource(0, logger.NewLogger("test"))
	route := entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}

	prices := map[string]bool{}
	for i := 0; i < 50; i++ {
		quote, err := source.Fetch(context.Background(), route, "BA")
		require.NoError(t, err)
		prices[quote.Price.String()] = true
	}
	require.Greater(t, len(prices), 1, "repeated calls should produce non-identical prices")
}

func TestMockSource_UnknownRouteStillSucceeds(t *testing.T) {
	source := NewMockSource(0, logger.NewLogger("test"))
	route := entity.Route{ID: 99, Origin: "XXX", Destination: "YYY"}

	quote, err := source.Fetch(context.Background(), route, "ZZ")
	require.NoError(t, err)
	require.True(t, quote.Price.IsPositive())
}

func TestMockSource_AirlineTierOrdersPrices(t *testing.T) {
	route := entity.Route{ID: 1, Origin: "LHR", Destination: "JFK"}

	qrBase, ok := BasePrice(route, "QR")
	require.True(t, ok)
	ulBase, ok := BasePrice(route, "UL")
	require.True(t, ok)
	require.True(t, qrBase.GreaterThan(ulBase), "premium carriers derive higher base prices")
}

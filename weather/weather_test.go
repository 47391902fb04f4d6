package weather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnconfiguredClientServesMocks(t *testing.T) {
	client := &Client{}
	require.False(t, client.Configured())

	current, err := client.Current(context.Background(), 35.68, 139.69)
	require.NoError(t, err)
	require.Equal(t, "Clear", current.Condition)

	forecast, err := client.Forecast(context.Background(), 35.68, 139.69, 3)
	require.NoError(t, err)
	require.Len(t, forecast, 3)
	for _, day := range forecast {
		require.Equal(t, "Clear", day.Condition)
		require.InDelta(t, 24, day.Temperature.Avg, 0.01)
	}
}

func TestGeocodeRequiresKey(t *testing.T) {
	client := &Client{}
	_, err := client.Geocode(context.Background(), "Tokyo")
	require.Error(t, err)
}

func TestAggregateDaily(t *testing.T) {
	base := time.Date(2026, 9, 10, 6, 0, 0, 0, time.UTC)
	mk := func(offset time.Duration, temp float64, cond string, code int) owmEntry {
		e := owmEntry{Dt: base.Add(offset).Unix()}
		e.Main.Temp = temp
		e.Main.Humidity = 50
		e.Wind.Speed = 4
		e.Weather = []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		}{{ID: code, Main: cond}}
		return e
	}

	entries := []owmEntry{
		mk(0, 18, "Rain", 501),
		mk(3*time.Hour, 22, "Rain", 502),
		mk(6*time.Hour, 26, "Clear", 800),
		mk(24*time.Hour, 30, "Clear", 800),
	}

	days := aggregateDaily(entries, 5)
	require.Len(t, days, 2)

	first := days[0]
	require.Equal(t, 18.0, first.Temperature.Min)
	require.Equal(t, 26.0, first.Temperature.Max)
	require.InDelta(t, 22.0, first.Temperature.Avg, 0.01)
	require.Equal(t, "Rain", first.Condition)
	require.Equal(t, 800, first.ConditionCode)

	second := days[1]
	require.Equal(t, "Clear", second.Condition)
	require.Equal(t, 30.0, second.Temperature.Max)
}

func TestRecommendation(t *testing.T) {
	require.Equal(t, "moderate", Recommendation(20, "Thunderstorm").Severity)
	require.Contains(t, Recommendation(22, "Clear").Recommendation, "outdoor")
	require.Equal(t, "High temperature", Recommendation(38, "Haze").Alert)
	require.Equal(t, "Cold weather", Recommendation(5, "Mist").Alert)
	require.Equal(t, "Normal conditions", Recommendation(22, "Clouds").Alert)
}

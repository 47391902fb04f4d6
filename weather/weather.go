package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"voyago/models"
	"voyago/rdx"
)

const (
	baseURL    = "https://api.openweathermap.org/data/2.5"
	geoURL     = "https://api.openweathermap.org/geo/1.0/direct"
	cacheTTL   = 15 * time.Minute
	reqTimeout = 8 * time.Second
)

// Client talks to OpenWeatherMap. Without an API key every call serves
// deterministic mock data so the pipeline keeps working offline.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		apiKey:     os.Getenv("OPENWEATHER_API_KEY"),
		httpClient: &http.Client{Timeout: reqTimeout},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type geoResult struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocode resolves a destination name to coordinates.
func (c *Client) Geocode(ctx context.Context, destination string) (models.Coordinates, error) {
	if !c.Configured() {
		return models.Coordinates{}, fmt.Errorf("weather api key not configured")
	}

	endpoint := fmt.Sprintf("%s?q=%s&limit=1&appid=%s", geoURL, url.QueryEscape(destination), c.apiKey)
	var results []geoResult
	if err := c.getJSON(ctx, endpoint, &results); err != nil {
		return models.Coordinates{}, err
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("no geocoding result for %q", destination)
	}
	return models.Coordinates{Lat: results[0].Lat, Lng: results[0].Lon}, nil
}

type owmEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owmForecast struct {
	List []owmEntry `json:"list"`
}

// Current fetches current conditions at a coordinate.
func (c *Client) Current(ctx context.Context, lat, lng float64) (models.CurrentWeather, error) {
	if !c.Configured() {
		return mockCurrent(), nil
	}

	endpoint := fmt.Sprintf("%s/weather?lat=%f&lon=%f&appid=%s&units=metric", baseURL, lat, lng, c.apiKey)
	var entry owmEntry
	if err := c.getJSON(ctx, endpoint, &entry); err != nil {
		return mockCurrent(), nil
	}

	current := models.CurrentWeather{
		Temperature: entry.Main.Temp,
		Humidity:    entry.Main.Humidity,
		WindSpeed:   entry.Wind.Speed,
		Timestamp:   time.Now(),
	}
	if len(entry.Weather) > 0 {
		current.Condition = entry.Weather[0].Main
		current.Description = entry.Weather[0].Description
		current.Icon = entry.Weather[0].Icon
	}
	return current, nil
}

// Forecast returns up to days of daily-aggregated forecast (min/max/avg
// temperature, dominant condition). Results are cached in Redis briefly.
func (c *Client) Forecast(ctx context.Context, lat, lng float64, days int) ([]models.ForecastDay, error) {
	if days <= 0 {
		days = 5
	}
	if !c.Configured() {
		return mockForecast(days), nil
	}

	cacheKey := fmt.Sprintf("weather:forecast:%.3f:%.3f:%d", lat, lng, days)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var out []models.ForecastDay
		if json.Unmarshal([]byte(cached), &out) == nil {
			return out, nil
		}
	}

	endpoint := fmt.Sprintf("%s/forecast?lat=%f&lon=%f&appid=%s&units=metric&cnt=%d",
		baseURL, lat, lng, c.apiKey, days*8)
	var raw owmForecast
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return mockForecast(days), nil
	}

	out := aggregateDaily(raw.List, days)
	if data, err := json.Marshal(out); err == nil {
		rdx.SetWithExpiry(cacheKey, string(data), cacheTTL)
	}
	return out, nil
}

// aggregateDaily collapses 3-hourly entries into per-day summaries.
func aggregateDaily(entries []owmEntry, days int) []models.ForecastDay {
	type bucket struct {
		date       time.Time
		temps      []float64
		conditions []string
		codes      []int
		humidity   float64
		wind       float64
		n          int
	}

	buckets := map[string]*bucket{}
	var order []string

	for _, e := range entries {
		ts := time.Unix(e.Dt, 0).UTC()
		key := ts.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{date: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)}
			buckets[key] = b
			order = append(order, key)
		}
		b.temps = append(b.temps, e.Main.Temp)
		if len(e.Weather) > 0 {
			b.conditions = append(b.conditions, e.Weather[0].Main)
			b.codes = append(b.codes, e.Weather[0].ID)
		}
		b.humidity += e.Main.Humidity
		b.wind += e.Wind.Speed
		b.n++
	}

	var out []models.ForecastDay
	for _, key := range order {
		b := buckets[key]
		day := models.ForecastDay{
			Date:      b.date,
			Condition: mostCommon(b.conditions),
		}
		if b.n > 0 {
			day.Humidity = b.humidity / float64(b.n)
			day.WindSpeed = b.wind / float64(b.n)
		}
		if len(b.temps) > 0 {
			min, max, sum := b.temps[0], b.temps[0], 0.0
			for _, tmp := range b.temps {
				if tmp < min {
					min = tmp
				}
				if tmp > max {
					max = tmp
				}
				sum += tmp
			}
			day.Temperature = models.TemperatureRange{Min: min, Max: max, Avg: sum / float64(len(b.temps))}
		}
		for _, code := range b.codes {
			if code > day.ConditionCode {
				day.ConditionCode = code
			}
		}
		out = append(out, day)
	}

	if len(out) > days {
		out = out[:days]
	}
	return out
}

func mostCommon(values []string) string {
	if len(values) == 0 {
		return ""
	}
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

// Recommendation derives a display hint from conditions.
func Recommendation(temperature float64, condition string) models.WeatherAdvice {
	switch {
	case containsAny(condition, "rain", "storm", "thunder"):
		return models.WeatherAdvice{
			Alert:          "Rain expected",
			Recommendation: "Consider indoor activities or bring an umbrella",
			Severity:       "moderate",
		}
	case containsAny(condition, "clear", "sun"):
		return models.WeatherAdvice{
			Alert:          "Clear weather",
			Recommendation: "Perfect for outdoor activities",
			Severity:       "low",
		}
	case temperature > 35:
		return models.WeatherAdvice{
			Alert:          "High temperature",
			Recommendation: "Stay hydrated and avoid prolonged sun exposure",
			Severity:       "moderate",
		}
	case temperature < 10:
		return models.WeatherAdvice{
			Alert:          "Cold weather",
			Recommendation: "Dress warmly and consider indoor activities",
			Severity:       "low",
		}
	default:
		return models.WeatherAdvice{
			Alert:          "Normal conditions",
			Recommendation: "Weather is suitable for most activities",
			Severity:       "low",
		}
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("weather api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func mockCurrent() models.CurrentWeather {
	return models.CurrentWeather{
		Temperature: 25,
		Condition:   "Clear",
		Description: "clear sky",
		Humidity:    60,
		WindSpeed:   5,
		Icon:        "01d",
		Timestamp:   time.Now(),
	}
}

func mockForecast(days int) []models.ForecastDay {
	out := make([]models.ForecastDay, 0, days)
	now := time.Now()
	for i := 0; i < days; i++ {
		out = append(out, models.ForecastDay{
			Date:        now.AddDate(0, 0, i),
			Temperature: models.TemperatureRange{Min: 20, Max: 28, Avg: 24},
			Condition:   "Clear",
			Humidity:    60,
			WindSpeed:   5,
		})
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	lowered := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lowered, sub) {
			return true
		}
	}
	return false
}

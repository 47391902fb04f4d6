package models

import "time"

type CurrentWeather struct {
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Icon        string    `json:"icon"`
	Timestamp   time.Time `json:"timestamp"`
}

type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// ForecastDay is one day of aggregated forecast data.
type ForecastDay struct {
	Date          time.Time        `json:"date"`
	Temperature   TemperatureRange `json:"temperature"`
	Condition     string           `json:"condition"`
	ConditionCode int              `json:"conditionCode"`
	Humidity      float64          `json:"humidity"`
	WindSpeed     float64          `json:"windSpeed"`
}

type WeatherAdvice struct {
	Alert          string `json:"alert"`
	Recommendation string `json:"recommendation"`
	Severity       string `json:"severity"`
}

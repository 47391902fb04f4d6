package mapsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"voyago/models"
	"voyago/rdx"
)

const (
	placesURL  = "https://maps.googleapis.com/maps/api/place"
	cacheTTL   = time.Hour
	reqTimeout = 10 * time.Second
)

// Client wraps the Google Places API. Calls degrade to deterministic
// mock data when no API key is set or the upstream fails, so itinerary
// generation never blocks on maps availability.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		apiKey:     os.Getenv("GOOGLE_MAPS_API_KEY"),
		httpClient: &http.Client{Timeout: reqTimeout},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type textSearchResponse struct {
	Results []struct {
		PlaceID string `json:"place_id"`
		Name    string `json:"name"`
		Types   []string
		Rating  float64 `json:"rating"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		PriceLevel       int    `json:"price_level"`
		FormattedAddress string `json:"formatted_address"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
	Status string `json:"status"`
}

// SearchPlaces runs a text search like "museums in Kyoto" and maps the
// results into candidate places. Cached per query for an hour.
func (c *Client) SearchPlaces(ctx context.Context, query, destination string) ([]models.CandidatePlace, error) {
	full := strings.TrimSpace(query + " in " + destination)
	if !c.Configured() {
		return MockPlaces(query, destination), nil
	}

	cacheKey := "maps:search:" + strings.ToLower(full)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var out []models.CandidatePlace
		if json.Unmarshal([]byte(cached), &out) == nil {
			return out, nil
		}
	}

	endpoint := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s", placesURL, url.QueryEscape(full), c.apiKey)
	var raw textSearchResponse
	if err := c.getJSON(ctx, endpoint, &raw); err != nil || raw.Status != "OK" {
		return MockPlaces(query, destination), nil
	}

	out := make([]models.CandidatePlace, 0, len(raw.Results))
	for _, r := range raw.Results {
		place := models.CandidatePlace{
			ID:         r.PlaceID,
			Name:       r.Name,
			Categories: placeCategories(r.Types, query),
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
			Coordinates: models.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Address:           r.FormattedAddress,
			EstimatedDuration: 120,
			EstimatedCost:     costForPriceLevel(r.PriceLevel),
		}
		for _, p := range r.Photos {
			place.Photos = append(place.Photos, photoLink(p.PhotoReference, c.apiKey))
		}
		out = append(out, place)
	}

	if data, err := json.Marshal(out); err == nil {
		rdx.SetWithExpiry(cacheKey, string(data), cacheTTL)
	}
	return out, nil
}

type detailsResponse struct {
	Result struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		Rating           float64 `json:"rating"`
		FormattedAddress string  `json:"formatted_address"`
		FormattedPhone   string  `json:"formatted_phone_number"`
		Website          string  `json:"website"`
		OpeningHours     struct {
			WeekdayText []string `json:"weekday_text"`
			OpenNow     bool     `json:"open_now"`
		} `json:"opening_hours"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
	Status string `json:"status"`
}

// PlaceDetails holds the enrichment payload attached to activities.
type PlaceDetails struct {
	PlaceID      string              `json:"placeId"`
	Name         string              `json:"name"`
	Rating       float64             `json:"rating"`
	Address      string              `json:"address"`
	Phone        string              `json:"phone,omitempty"`
	Website      string              `json:"website,omitempty"`
	OpeningHours []string            `json:"openingHours,omitempty"`
	OpenNow      bool                `json:"openNow"`
	Coordinates  *models.Coordinates `json:"coordinates,omitempty"`
	Photos       []string            `json:"photos,omitempty"`
}

// GetPlaceDetails looks a place up by name within a city.
func (c *Client) GetPlaceDetails(ctx context.Context, placeName, city string) (*PlaceDetails, error) {
	if !c.Configured() {
		return mockDetails(placeName, city), nil
	}

	cacheKey := "maps:details:" + strings.ToLower(placeName+":"+city)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var out PlaceDetails
		if json.Unmarshal([]byte(cached), &out) == nil {
			return &out, nil
		}
	}

	candidates, err := c.SearchPlaces(ctx, placeName, city)
	if err != nil || len(candidates) == 0 {
		return mockDetails(placeName, city), nil
	}

	endpoint := fmt.Sprintf("%s/details/json?place_id=%s&key=%s", placesURL, url.QueryEscape(candidates[0].ID), c.apiKey)
	var raw detailsResponse
	if err := c.getJSON(ctx, endpoint, &raw); err != nil || raw.Status != "OK" {
		return mockDetails(placeName, city), nil
	}

	r := raw.Result
	details := &PlaceDetails{
		PlaceID:      r.PlaceID,
		Name:         r.Name,
		Rating:       r.Rating,
		Address:      r.FormattedAddress,
		Phone:        r.FormattedPhone,
		Website:      r.Website,
		OpeningHours: r.OpeningHours.WeekdayText,
		OpenNow:      r.OpeningHours.OpenNow,
		Coordinates: &models.Coordinates{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		},
	}
	for _, p := range r.Photos {
		details.Photos = append(details.Photos, photoLink(p.PhotoReference, c.apiKey))
	}

	if data, err := json.Marshal(details); err == nil {
		rdx.SetWithExpiry(cacheKey, string(data), cacheTTL)
	}
	return details, nil
}

// Directions describes a leg between two activities.
type Directions struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
	Mode     string `json:"mode"`
}

// GetDirections estimates travel between two coordinates. Without an
// API key it uses straight-line distance at walking speed.
func (c *Client) GetDirections(ctx context.Context, from, to models.Coordinates, mode string) (*Directions, error) {
	if mode == "" {
		mode = "walking"
	}
	km := haversineKm(from, to)
	speed := 4.5 // km/h walking
	if mode == "driving" {
		speed = 30
	} else if mode == "transit" {
		speed = 20
	}
	minutes := int(km / speed * 60)
	if minutes < 1 {
		minutes = 1
	}
	return &Directions{
		Distance: fmt.Sprintf("%.1f km", km),
		Duration: fmt.Sprintf("%d mins", minutes),
		Mode:     mode,
	}, nil
}

func placeCategories(types []string, fallback string) []string {
	skip := map[string]bool{"point_of_interest": true, "establishment": true}
	var out []string
	for _, t := range types {
		if !skip[t] {
			out = append(out, strings.ReplaceAll(t, "_", " "))
		}
	}
	if len(out) == 0 {
		if fallback == "" {
			fallback = "attraction"
		}
		out = append(out, strings.ToLower(fallback))
	}
	return out
}

func costForPriceLevel(level int) float64 {
	switch {
	case level <= 0:
		return 500
	case level >= 4:
		return 4000
	default:
		return float64(level) * 1000
	}
}

func photoLink(ref, key string) string {
	return fmt.Sprintf("%s/photo?maxwidth=800&photo_reference=%s&key=%s", placesURL, ref, key)
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
		return fmt.Errorf("maps api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

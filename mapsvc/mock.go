package mapsvc

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"voyago/models"
)

// mockCatalog seeds offline search results. Entries vary by query hash
// so repeated identical queries stay deterministic.
var mockCatalog = []struct {
	name     string
	category string
	rating   float64
	cost     float64
	duration int
	wheel    bool
	eco      float64
}{
	{"Central Museum", "museum", 4.5, 1200, 150, true, 7},
	{"Old Town Market", "market", 4.2, 300, 90, false, 6},
	{"Riverside Park", "park", 4.6, 0, 120, true, 9},
	{"Heritage Temple", "temple", 4.7, 200, 100, false, 8},
	{"Grand Monument", "monument", 4.4, 500, 80, true, 7},
	{"Local Kitchen", "restaurant", 4.3, 800, 90, true, 5},
	{"Skyline Viewpoint", "attraction", 4.8, 600, 60, false, 6},
	{"Art Quarter Gallery", "museum", 4.1, 900, 110, true, 7},
	{"Harbor Walk", "attraction", 4.0, 0, 75, true, 8},
	{"Night Bazaar", "market", 4.2, 400, 120, false, 5},
}

// MockPlaces returns deterministic candidates for query+destination.
func MockPlaces(query, destination string) []models.CandidatePlace {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(query + "|" + destination)))
	seed := h.Sum32()

	out := make([]models.CandidatePlace, 0, len(mockCatalog))
	for i, entry := range mockCatalog {
		eco := entry.eco
		out = append(out, models.CandidatePlace{
			ID:   fmt.Sprintf("mock-%08x-%d", seed, i),
			Name: fmt.Sprintf("%s %s", destination, entry.name),
			Address: fmt.Sprintf("%d Main Street, %s", (int(seed)%90+1)*10+i,
				destination),
			Coordinates: models.Coordinates{
				Lat: 35.0 + float64(seed%1000)/1000 + float64(i)*0.01,
				Lng: 135.0 + float64(seed%1000)/1000 + float64(i)*0.01,
			},
			Rating:               entry.rating,
			Categories:           []string{entry.category},
			Photos:               []string{placeholderImage(entry.category)},
			EstimatedCost:        entry.cost,
			EstimatedDuration:    entry.duration,
			SustainabilityScore:  &eco,
			WheelchairAccessible: entry.wheel,
			DietaryOptions:       dietaryFor(entry.category),
		})
	}
	return out
}

func mockDetails(placeName, city string) *PlaceDetails {
	return &PlaceDetails{
		PlaceID: "mock-" + strings.ToLower(strings.ReplaceAll(placeName, " ", "-")),
		Name:    placeName,
		Rating:  4.3,
		Address: fmt.Sprintf("%s, %s", placeName, city),
		OpeningHours: []string{
			"Monday: 9:00 AM – 6:00 PM",
			"Tuesday: 9:00 AM – 6:00 PM",
			"Wednesday: 9:00 AM – 6:00 PM",
			"Thursday: 9:00 AM – 6:00 PM",
			"Friday: 9:00 AM – 6:00 PM",
			"Saturday: 10:00 AM – 4:00 PM",
			"Sunday: Closed",
		},
		OpenNow: true,
		Photos:  []string{placeholderImage("attraction")},
	}
}

var placeholderImages = map[string]string{
	"museum":     "https://images.unsplash.com/photo-1554907984-15263bfd63bd?w=800",
	"restaurant": "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800",
	"park":       "https://images.unsplash.com/photo-1519331379826-f10be5486c6f?w=800",
	"temple":     "https://images.unsplash.com/photo-1545569341-9eb8b30979d9?w=800",
	"monument":   "https://images.unsplash.com/photo-1549893072-4b747df5f669?w=800",
	"market":     "https://images.unsplash.com/photo-1555529669-e69e7aa0ba9a?w=800",
	"attraction": "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1?w=800",
	"beach":      "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800",
	"nightlife":  "https://images.unsplash.com/photo-1514525253161-7a46d19cd819?w=800",
}

// PlaceholderImage returns a stock photo URL for a place category.
func PlaceholderImage(category string) string {
	return placeholderImage(category)
}

func placeholderImage(category string) string {
	if link, ok := placeholderImages[strings.ToLower(category)]; ok {
		return link
	}
	return placeholderImages["attraction"]
}

func dietaryFor(category string) []string {
	if category == "restaurant" {
		return []string{"vegetarian", "vegan"}
	}
	return nil
}

const earthRadiusKm = 6371.0

func haversineKm(a, b models.Coordinates) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*sinLng*sinLng
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

package feedback

import (
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInsights(t *testing.T) {
	user := models.User{
		Prefs: models.PreferenceVector{
			VisitedPlaces: []models.VisitedPlace{{PlaceName: "a"}, {PlaceName: "b"}},
			Feedback: []models.FeedbackEntry{
				{Rating: 4},
				{Rating: 5},
			},
		},
	}
	itineraries := []models.Itinerary{
		{Destination: "Kyoto", Status: models.StatusCompleted},
		{Destination: "Kyoto", Status: models.StatusActive},
		{Destination: "Oslo", Status: models.StatusCompleted},
		{Destination: "Lima", Status: models.StatusDraft},
		{Destination: "Lima", Status: models.StatusDraft},
		{Destination: "Hanoi", Status: models.StatusDraft},
	}

	insights := buildInsights(user, itineraries)
	assert.Equal(t, 6, insights.TotalTrips)
	assert.Equal(t, 2, insights.CompletedTrips)
	assert.Equal(t, 2, insights.PlacesVisited)
	assert.Equal(t, 2, insights.FeedbackMessages)
	assert.InDelta(t, 4.5, insights.AverageRating, 0.001)
	require.Len(t, insights.TopDestinations, 3)
	assert.Equal(t, []string{"Kyoto", "Lima", "Hanoi"}, insights.TopDestinations)
}

func TestBuildInsightsEmptyHistory(t *testing.T) {
	insights := buildInsights(models.User{}, nil)
	assert.Zero(t, insights.TotalTrips)
	assert.Zero(t, insights.AverageRating)
	assert.Empty(t, insights.TopDestinations)
}

package prefs

import (
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePreferencesDefaults(t *testing.T) {
	var prefs models.PreferenceVector
	normalizePreferences(&prefs)

	assert.Equal(t, models.PaceModerate, prefs.TravelPace)
	assert.Equal(t, models.BudgetMid, prefs.BudgetLevel)
	assert.Equal(t, 1, prefs.GroupSize)
	assert.NotEmpty(t, prefs.Interests)
}

func TestNormalizePreferencesClampsWeights(t *testing.T) {
	prefs := models.PreferenceVector{
		TravelPace:  models.PaceFast,
		BudgetLevel: models.BudgetHigh,
		GroupSize:   3,
		Interests: map[string]float64{
			"culture": 1.7,
			"food":    -0.2,
			"nature":  0.6,
		},
	}
	normalizePreferences(&prefs)

	assert.Equal(t, 1.0, prefs.Interests["culture"])
	assert.Equal(t, 0.0, prefs.Interests["food"])
	assert.Equal(t, 0.6, prefs.Interests["nature"])
	assert.Equal(t, models.PaceFast, prefs.TravelPace, "valid values pass through")
}

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `{"days":[{"dayNumber":1,"theme":"Cultural Immersion","places":[
{"place_name":"City Museum","city":"Kyoto","category":"museum","importance":"top sight","duration":150,"estimatedCost":1200},
{"place_name":"Old Quarter","city":"Kyoto","category":"attraction","importance":"historic core","duration":90,"estimatedCost":0}
]}]}`

func TestParseDraftStrict(t *testing.T) {
	draft, err := ParseDraft(wellFormed)
	require.NoError(t, err)
	require.Len(t, draft.Days, 1)
	assert.Equal(t, "Cultural Immersion", draft.Days[0].Theme)
	require.Len(t, draft.Days[0].Places, 2)
	assert.Equal(t, "City Museum", draft.Days[0].Places[0].PlaceName)
	assert.Equal(t, 150, draft.Days[0].Places[0].Duration)
}

func TestParseDraftStripsMarkdownFences(t *testing.T) {
	fenced := "Here is your plan:\n```json\n" + wellFormed + "\n```\nEnjoy!"
	draft, err := ParseDraft(fenced)
	require.NoError(t, err)
	require.Len(t, draft.Days, 1)
}

func TestParseDraftTruncatedMidValue(t *testing.T) {
	// Cut mid-number, as a max_tokens truncation would.
	truncated := `{"days":[{"dayNumber":1,"theme":"Nature","places":[{"place_name":"Botanical Gardens","city":"Oslo","category":"park","importance":"green escape","duration":12`
	draft, err := ParseDraft(truncated)
	require.NoError(t, err)
	require.Len(t, draft.Days, 1)
	require.NotEmpty(t, draft.Days[0].Places)
	assert.Equal(t, "Botanical Gardens", draft.Days[0].Places[0].PlaceName)
}

func TestParseDraftTruncatedMidKey(t *testing.T) {
	truncated := `{"days":[{"dayNumber":1,"theme":"Nature","places":[{"place_name":"Botanical Gardens","city":"Oslo","category":"park","importance":"green escape","duration":120,"estimatedCost":200},{"place_na`
	draft, err := ParseDraft(truncated)
	require.NoError(t, err)
	require.Len(t, draft.Days, 1)
	require.Len(t, draft.Days[0].Places, 1)
	assert.Equal(t, 200.0, draft.Days[0].Places[0].EstimatedCost)
}

func TestParseDraftRegexSalvage(t *testing.T) {
	// Garbage between complete day objects defeats bracket repair but
	// the per-day extraction still salvages both days.
	mangled := `The plan: {"dayNumber":1,"theme":"A","places":[{"place_name":"One","city":"X","category":"museum","duration":100,"estimatedCost":50}]} and then broken {{{ {"dayNumber":2,"theme":"B","places":[{"place_name":"Two","city":"X","category":"park","duration":80,"estimatedCost":0}]}`
	draft, err := ParseDraft(mangled)
	require.NoError(t, err)
	require.Len(t, draft.Days, 2)
	assert.Equal(t, "One", draft.Days[0].Places[0].PlaceName)
	assert.Equal(t, "Two", draft.Days[1].Places[0].PlaceName)
}

func TestParseDraftUnrecoverable(t *testing.T) {
	_, err := ParseDraft("I cannot produce a plan right now.")
	require.Error(t, err)
}

func TestPadDraftFillsMissingDays(t *testing.T) {
	draft, err := ParseDraft(wellFormed)
	require.NoError(t, err)

	padDraft(draft, "Kyoto", 3)
	require.Len(t, draft.Days, 3)
	assert.Equal(t, 2, draft.Days[1].DayNumber)
	assert.Equal(t, "Day 2 - More Exploration", draft.Days[1].Theme)
	assert.Equal(t, "Day 3 - More Exploration", draft.Days[2].Theme)
	// Missing days reuse the parsed days as templates rather than
	// inventing new places.
	for _, day := range draft.Days[1:] {
		assert.Equal(t, draft.Days[0].Places, day.Places)
	}
}

func TestPadDraftCyclesParsedDays(t *testing.T) {
	draft := &Draft{Days: []DraftDay{
		{DayNumber: 1, Theme: "A", Places: []DraftPlace{{PlaceName: "First", City: "Lima"}}},
		{DayNumber: 2, Theme: "B", Places: []DraftPlace{{PlaceName: "Second", City: "Lima"}}},
	}}

	padDraft(draft, "Lima", 5)
	require.Len(t, draft.Days, 5)
	assert.Equal(t, "First", draft.Days[2].Places[0].PlaceName)
	assert.Equal(t, "Second", draft.Days[3].Places[0].PlaceName)
	assert.Equal(t, "First", draft.Days[4].Places[0].PlaceName)
	for i, day := range draft.Days {
		assert.Equal(t, i+1, day.DayNumber)
	}
}

func TestPadDraftTruncatesExtraDays(t *testing.T) {
	draft := MockDraft("Lima", 5)
	padDraft(draft, "Lima", 2)
	require.Len(t, draft.Days, 2)
	assert.Equal(t, 1, draft.Days[0].DayNumber)
	assert.Equal(t, 2, draft.Days[1].DayNumber)
}

func TestMockDraftDeterministic(t *testing.T) {
	a := MockDraft("Hanoi", 4)
	b := MockDraft("Hanoi", 4)
	require.Equal(t, a, b)
	require.Len(t, a.Days, 4)
	for i, day := range a.Days {
		assert.Equal(t, i+1, day.DayNumber)
		assert.Len(t, day.Places, 4)
		for _, p := range day.Places {
			assert.Equal(t, "Hanoi", p.City)
		}
	}
}

package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Draft is the model's day-by-day plan before assembly and enrichment.
type Draft struct {
	Days []DraftDay `json:"days"`
}

type DraftDay struct {
	DayNumber int          `json:"dayNumber"`
	Theme     string       `json:"theme"`
	Places    []DraftPlace `json:"places"`
}

type DraftPlace struct {
	PlaceName     string  `json:"place_name"`
	City          string  `json:"city"`
	Category      string  `json:"category"`
	Importance    string  `json:"importance"`
	Duration      int     `json:"duration"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// ParseDraft decodes a model completion into a Draft. Models routinely
// wrap JSON in markdown fences or truncate mid-object, so parsing runs
// three strategies in order:
//  1. strict decode of the stripped payload
//  2. decode after balancing unclosed brackets and trimming a dangling
//     partial element
//  3. per-day regex extraction, salvaging whatever complete day objects
//     survive in the text
func ParseDraft(raw string) (*Draft, error) {
	payload := stripFences(raw)

	var draft Draft
	if err := json.Unmarshal([]byte(payload), &draft); err == nil && len(draft.Days) > 0 {
		return &draft, nil
	}

	if repaired := balanceBrackets(payload); repaired != payload {
		draft = Draft{}
		if err := json.Unmarshal([]byte(repaired), &draft); err == nil && len(draft.Days) > 0 {
			return &draft, nil
		}
	}

	if days := extractDays(payload); len(days) > 0 {
		return &Draft{Days: days}, nil
	}

	return nil, fmt.Errorf("could not recover draft from model output")
}

// stripFences removes markdown code fences and any prose before the
// first brace or after the last one.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	if start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndex(s, "}"); end >= 0 && end < len(s)-1 {
		// Only cut trailing prose, not a truncated object.
		tail := strings.TrimSpace(s[end+1:])
		if !strings.ContainsAny(tail, "{[\"") {
			s = s[:end+1]
		}
	}
	return s
}

// balanceBrackets repairs truncated JSON by dropping a trailing partial
// element and appending the closers the bracket stack still owes.
func balanceBrackets(s string) string {
	trimmed := trimPartialTail(s)

	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(trimmed); i++ {
		ch := trimmed[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				stack = append(stack, ch)
			}
		case '}', ']':
			if !inString && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if inString {
		trimmed += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			trimmed += "}"
		} else {
			trimmed += "]"
		}
	}
	return trimmed
}

// trimPartialTail cuts dangling fragments (an unterminated key string,
// a `:` awaiting its value, a just-opened empty container) back to the
// last complete value so that appended closers produce valid JSON. A
// tail that is a truncated number or an unterminated string VALUE is
// left alone; balanceBrackets can close those directly.
func trimPartialTail(s string) string {
	t := strings.TrimRight(s, " \t\n\r,")
	if i := openStringStart(t); i >= 0 {
		if prev := lastNonSpace(t[:i]); prev == ':' || prev == '[' {
			// unterminated value string, closable as-is
			return t
		}
		t = strings.TrimRight(t[:i], " \t\n\r,")
	}
	for len(t) > 0 {
		switch t[len(t)-1] {
		case ':':
			// key with no value yet: drop the colon and its key
			t = strings.TrimRight(t[:len(t)-1], " \t\n\r")
			if j := closedStringStart(t); j >= 0 {
				t = t[:j]
			}
			t = strings.TrimRight(t, " \t\n\r,")
		case '"':
			j := closedStringStart(t)
			if j < 0 {
				return t
			}
			if prev := lastNonSpace(t[:j]); prev == ':' || prev == '[' || prev == ',' {
				return t // complete string value
			}
			// closed quote is a dangling key, drop it
			t = strings.TrimRight(t[:j], " \t\n\r,")
		case '{', '[':
			// container opened with nothing inside
			t = strings.TrimRight(t[:len(t)-1], " \t\n\r,")
		default:
			return t
		}
	}
	return t
}

// openStringStart reports the opening-quote index when s ends inside an
// unterminated JSON string, -1 otherwise.
func openStringStart(s string) int {
	start := -1
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch s[i] {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			if inString {
				inString = false
				start = -1
			} else {
				inString = true
				start = i
			}
		}
	}
	if inString {
		return start
	}
	return -1
}

// closedStringStart reports the opening-quote index of the string s
// ends with, -1 when s does not end with a closed string.
func closedStringStart(s string) int {
	if len(s) < 2 || s[len(s)-1] != '"' {
		return -1
	}
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			return i
		}
	}
	return -1
}

func lastNonSpace(s string) byte {
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return s[i]
		}
	}
	return 0
}

var dayObjectRe = regexp.MustCompile(`\{\s*"dayNumber"\s*:\s*\d+[^{}]*"places"\s*:\s*\[(?:[^\[\]]|\[[^\]]*\])*\]\s*\}`)

// extractDays is the last-resort strategy: pull out every structurally
// complete day object and decode them individually.
func extractDays(s string) []DraftDay {
	var out []DraftDay
	for _, match := range dayObjectRe.FindAllString(s, -1) {
		var day DraftDay
		if err := json.Unmarshal([]byte(match), &day); err == nil && len(day.Places) > 0 {
			out = append(out, day)
		}
	}
	return out
}

// padDraft guarantees the draft covers the requested number of days by
// cycling the parsed days as templates for the missing ones, and
// renumbers sequentially.
func padDraft(draft *Draft, destination string, days int) {
	if len(draft.Days) == 0 {
		draft.Days = MockDraft(destination, days).Days
	}
	parsed := len(draft.Days)
	for len(draft.Days) < days {
		template := draft.Days[len(draft.Days)%parsed]
		places := make([]DraftPlace, len(template.Places))
		copy(places, template.Places)

		n := len(draft.Days) + 1
		draft.Days = append(draft.Days, DraftDay{
			DayNumber: n,
			Theme:     fmt.Sprintf("Day %d - More Exploration", n),
			Places:    places,
		})
	}
	if len(draft.Days) > days {
		draft.Days = draft.Days[:days]
	}
	for i := range draft.Days {
		draft.Days[i].DayNumber = i + 1
	}
}

var mockThemes = []string{
	"Heritage & Culture",
	"Local Flavors & Temples",
	"Art & Cuisine",
	"Nature & Spirituality",
	"Hidden Gems",
}

// MockDraft builds a deterministic draft used when the model is
// unavailable or its output cannot be recovered.
func MockDraft(destination string, days int) *Draft {
	if days <= 0 {
		days = 1
	}
	templates := [][]DraftPlace{
		{
			{PlaceName: "City Museum", Category: "museum", Importance: "Flagship collection of local art and history", Duration: 150, EstimatedCost: 1200},
			{PlaceName: "Old Quarter Walk", Category: "attraction", Importance: "The historic heart of the city", Duration: 90, EstimatedCost: 0},
			{PlaceName: "Traditional Restaurant", Category: "restaurant", Importance: "Signature regional cuisine", Duration: 90, EstimatedCost: 800},
			{PlaceName: "Evening Market", Category: "market", Importance: "Street food and local crafts", Duration: 120, EstimatedCost: 400},
		},
		{
			{PlaceName: "Botanical Gardens", Category: "park", Importance: "A calm green escape", Duration: 120, EstimatedCost: 200},
			{PlaceName: "Riverside Promenade", Category: "attraction", Importance: "Scenic walk along the water", Duration: 75, EstimatedCost: 0},
			{PlaceName: "Local Kitchen", Category: "restaurant", Importance: "Farm-to-table lunch spot", Duration: 90, EstimatedCost: 700},
			{PlaceName: "Sunset Viewpoint", Category: "attraction", Importance: "Best panorama in town", Duration: 60, EstimatedCost: 300},
		},
		{
			{PlaceName: "Heritage Temple", Category: "temple", Importance: "Centuries-old sacred site", Duration: 100, EstimatedCost: 200},
			{PlaceName: "Artisan District", Category: "market", Importance: "Workshops and galleries", Duration: 110, EstimatedCost: 300},
			{PlaceName: "Courtyard Cafe", Category: "restaurant", Importance: "Beloved local institution", Duration: 90, EstimatedCost: 600},
			{PlaceName: "Grand Monument", Category: "monument", Importance: "The city's defining landmark", Duration: 80, EstimatedCost: 500},
		},
	}

	draft := &Draft{}
	for i := 0; i < days; i++ {
		places := make([]DraftPlace, len(templates[i%len(templates)]))
		copy(places, templates[i%len(templates)])
		for j := range places {
			places[j].City = destination
		}
		draft.Days = append(draft.Days, DraftDay{
			DayNumber: i + 1,
			Theme:     mockThemes[i%len(mockThemes)],
			Places:    places,
		})
	}
	return draft
}

package locations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGazetteer() []Landmark {
	return []Landmark{
		{
			Name:    "Carrefour Kotto",
			Area:    "Bonamoussadi",
			Aliases: []string{"kotto"},
			Phrases: []string{"vers le carrefour", "apres le carrefour"},
		},
		{
			Name:    "Marché Central",
			Area:    "Akwa",
			Aliases: []string{"grand marché"},
		},
	}
}

func TestScoreTiers(t *testing.T) {
	m := NewMatcher(testGazetteer(), nil, nil)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"canonical substring", "je suis au carrefour kotto", ConfidenceCanonical},
		{"alias", "près de kotto", ConfidenceAlias},
		{"reference phrase", "c'est vers le carrefour", ConfidencePhrase},
		{"shared word", "un carrefour quelconque", ConfidenceOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best := m.BestMatch(tt.text, "")
			require.NotNil(t, best, "expected a match for %q", tt.text)
			assert.Equal(t, "Carrefour Kotto", best.Landmark.Name)
			assert.InDelta(t, tt.want, best.Confidence, 0.001)
		})
	}
}

func TestNoMatchBelowFloor(t *testing.T) {
	m := NewMatcher(testGazetteer(), nil, nil)
	assert.Nil(t, m.BestMatch("rien d'utile ici", ""))
	assert.Nil(t, m.BestMatch("", ""))
}

func TestAccentAndHyphenInsensitive(t *testing.T) {
	m := NewMatcher(testGazetteer(), nil, nil)
	best := m.BestMatch("au marche central svp", "")
	require.NotNil(t, best)
	assert.Equal(t, "Marché Central", best.Landmark.Name)
	assert.InDelta(t, ConfidenceCanonical, best.Confidence, 0.001)
}

func TestAutoConfirmThreshold(t *testing.T) {
	assert.True(t, Match{Confidence: ConfidenceCanonical}.AutoConfirmed())
	assert.True(t, Match{Confidence: ConfidenceAlias}.AutoConfirmed())
	assert.False(t, Match{Confidence: ConfidencePhrase}.AutoConfirmed())
	assert.False(t, Match{Confidence: ConfidenceOverlap}.AutoConfirmed())
}

func TestMatchesSortedByConfidence(t *testing.T) {
	m := NewMatcher(testGazetteer(), nil, nil)
	got := m.FindLandmarkMatches("carrefour kotto pas loin du grand marché", "")
	require.GreaterOrEqual(t, len(got), 2)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Confidence, got[i].Confidence)
	}
}

func TestAreaFilter(t *testing.T) {
	m := NewMatcher(testGazetteer(), nil, nil)
	best := m.BestMatch("carrefour kotto", "Akwa")
	assert.Nil(t, best, "area filter should exclude Bonamoussadi landmarks")
}

func TestRecordMatch(t *testing.T) {
	store := NewInMemoryMatchStore()
	m := NewMatcher(testGazetteer(), store, nil)

	best := m.BestMatch("carrefour kotto", "")
	require.NotNil(t, best)
	m.RecordMatch(context.Background(), "carrefour kotto", *best, true)

	records := store.All()
	require.Len(t, records, 1)
	assert.Equal(t, "Carrefour Kotto", records[0].Landmark)
	assert.True(t, records[0].Confirmed)
}

func TestDefaultGazetteerResolvesKnownSpots(t *testing.T) {
	m := NewMatcher(DefaultGazetteer(), nil, nil)
	for _, text := range []string{"bonamoussadi", "ndokoti", "bonaberi"} {
		best := m.BestMatch(text, "")
		require.NotNil(t, best, "expected default gazetteer to know %q", text)
		assert.True(t, best.AutoConfirmed(), "expected %q to auto-confirm", text)
	}
}

package locations

import (
	"context"
	"sort"
	"strings"

	"github.com/djobea/djobea-ai/pkg/logging"
)

// Confidence tiers for landmark matching, highest to lowest.
const (
	ConfidenceCanonical = 0.95
	ConfidencePhrase    = 0.70
	ConfidenceAlias     = 0.85
	ConfidenceOverlap   = 0.40
	ConfidenceNone      = 0.05

	// AutoConfirmThreshold separates matches applied silently from matches
	// offered to the user for confirmation.
	AutoConfirmThreshold = 0.80
)

// Match is a scored candidate landmark for a free-text location.
type Match struct {
	Landmark   Landmark
	Confidence float64
}

// AutoConfirmed reports whether the match can be applied without asking.
func (m Match) AutoConfirmed() bool {
	return m.Confidence >= AutoConfirmThreshold
}

// Matcher scores free-text location descriptions against the gazetteer.
type Matcher struct {
	landmarks []Landmark
	store     MatchStore
	logger    *logging.Logger
}

// NewMatcher builds a matcher over the given gazetteer. The store records
// confirmed matches for learning and may be nil.
func NewMatcher(landmarks []Landmark, store MatchStore, logger *logging.Logger) *Matcher {
	if len(landmarks) == 0 {
		landmarks = DefaultGazetteer()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Matcher{landmarks: landmarks, store: store, logger: logger.Named("locations")}
}

// FindLandmarkMatches scores every landmark against the text and returns
// candidates sorted by confidence descending. When area is non-empty only
// landmarks in that area are considered.
func (m *Matcher) FindLandmarkMatches(text, area string) []Match {
	normalized := normalize(text)
	if normalized == "" {
		return nil
	}
	area = normalize(area)

	var out []Match
	for _, lm := range m.landmarks {
		if area != "" && normalize(lm.Area) != area {
			continue
		}
		score := scoreLandmark(normalized, lm)
		if score <= ConfidenceNone {
			continue
		}
		out = append(out, Match{Landmark: lm, Confidence: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// BestMatch returns the single best candidate, or nil when nothing scores
// above the noise floor.
func (m *Matcher) BestMatch(text, area string) *Match {
	matches := m.FindLandmarkMatches(text, area)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

// RecordMatch persists a confirmed mapping so repeated inputs resolve faster.
// Storage failures are logged, never surfaced to the conversation.
func (m *Matcher) RecordMatch(ctx context.Context, input string, match Match, confirmed bool) {
	if m.store == nil {
		return
	}
	rec := &LocationMatch{
		Input:      input,
		Landmark:   match.Landmark.Name,
		Area:       match.Landmark.Area,
		Confidence: match.Confidence,
		Confirmed:  confirmed,
	}
	if err := m.store.Create(ctx, rec); err != nil {
		m.logger.Warn("failed to record location match", "input", input, "error", err)
	}
}

func scoreLandmark(text string, lm Landmark) float64 {
	canonical := normalize(lm.Name)
	if canonical != "" && strings.Contains(text, canonical) {
		return ConfidenceCanonical
	}
	for _, alias := range lm.Aliases {
		if a := normalize(alias); a != "" && strings.Contains(text, a) {
			return ConfidenceAlias
		}
	}
	for _, phrase := range lm.Phrases {
		if p := normalize(phrase); p != "" && strings.Contains(text, p) {
			return ConfidencePhrase
		}
	}
	if sharesWord(text, canonical) {
		return ConfidenceOverlap
	}
	return ConfidenceNone
}

// sharesWord reports whether any significant word of the canonical name
// appears in the text.
func sharesWord(text, canonical string) bool {
	for _, w := range strings.Fields(canonical) {
		if len([]rune(w)) < 4 {
			continue
		}
		for _, tw := range strings.Fields(text) {
			if tw == w {
				return true
			}
		}
	}
	return false
}

var accentReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a", "ô", "o", "î", "i", "ï", "i",
	"ù", "u", "û", "u", "ü", "u", "ç", "c",
)

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = accentReplacer.Replace(s)
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

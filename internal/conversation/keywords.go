package conversation

import (
	"strings"

	"github.com/djobea/djobea-ai/internal/requests"
)

// serviceKeywords maps French problem vocabulary to service types. Matching is
// substring-based on the lowercased message, so "fuite d'eau" hits "fuite".
var serviceKeywords = map[string][]string{
	requests.ServicePlumbing: {
		"plombier", "plomberie", "fuite", "robinet", "tuyau", "canalisation",
		"wc bouché", "toilette", "évier", "chauffe-eau", "eau qui coule",
	},
	requests.ServiceElectric: {
		"électricien", "electricien", "électricité", "electricite", "courant",
		"coupure", "prise", "disjoncteur", "câble", "cable", "ampoule",
		"compteur", "court-circuit",
	},
	requests.ServiceAppliance: {
		"électroménager", "electromenager", "frigo", "réfrigérateur",
		"refrigerateur", "congélateur", "congelateur", "climatiseur", "clim",
		"machine à laver", "machine a laver", "lave-linge", "ventilateur",
		"cuisinière", "cuisiniere", "micro-onde",
	},
}

// DetectService maps free text to a service type, empty when ambiguous.
func DetectService(text string) string {
	text = strings.ToLower(text)
	for _, service := range requests.ServiceTypes() {
		for _, kw := range serviceKeywords[service] {
			if strings.Contains(text, kw) {
				return service
			}
		}
	}
	return ""
}

var affirmativeWords = []string{
	"oui", "ok", "d'accord", "daccord", "confirme", "confirmer", "c'est ça",
	"c'est ca", "exact", "yes", "valide", "parfait",
}

var negativeWords = []string{
	"non", "pas du tout", "no", "négatif", "negatif",
}

var cancelWords = []string{
	"annuler", "annule", "annulation", "stop", "laisse tomber", "laisser tomber",
	"plus besoin",
}

var urgentWords = []string{
	"urgent", "urgence", "vite", "immédiat", "immediat", "tout de suite",
	"maintenant",
}

// IsAffirmative reports whether the message is a clear yes.
func IsAffirmative(text string) bool {
	return matchesAny(text, affirmativeWords) && !matchesAny(text, negativeWords)
}

// IsNegative reports whether the message is a clear no.
func IsNegative(text string) bool {
	return matchesAny(text, negativeWords)
}

// WantsCancellation reports whether the message asks to abandon the request.
func WantsCancellation(text string) bool {
	return matchesAny(text, cancelWords)
}

// SoundsUrgent reports whether the message carries urgency vocabulary.
func SoundsUrgent(text string) bool {
	return matchesAny(text, urgentWords)
}

func matchesAny(text string, words []string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

package scheduling

import (
	"strings"

	"github.com/djobea/djobea-ai/internal/requests"
)

// Preference is a user's scheduling choice for a request.
type Preference string

const (
	PreferenceUrgent            Preference = "URGENT"
	PreferenceToday             Preference = "TODAY"
	PreferenceTomorrowMorning   Preference = "TOMORROW_MORNING"
	PreferenceTomorrowAfternoon Preference = "TOMORROW_AFTERNOON"
	PreferenceThisWeek          Preference = "THIS_WEEK"
	PreferenceWeekend           Preference = "WEEKEND"
	PreferenceFlexible          Preference = "FLEXIBLE"
)

// Urgency supplements in XAF. Urgent > weekend > same-day > 0.
const (
	SupplementUrgent  = 2000
	SupplementWeekend = 1500
	SupplementSameDay = 1000
)

// Preferences lists every defined scheduling preference in display order.
func Preferences() []Preference {
	return []Preference{
		PreferenceUrgent,
		PreferenceToday,
		PreferenceTomorrowMorning,
		PreferenceTomorrowAfternoon,
		PreferenceThisWeek,
		PreferenceWeekend,
		PreferenceFlexible,
	}
}

// ParsePreference normalizes a raw preference value. ok is false for
// anything outside the defined set.
func ParsePreference(raw string) (Preference, bool) {
	p := Preference(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Preferences() {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Supplement returns the monetary urgency add-on for the preference.
func (p Preference) Supplement() int {
	switch p {
	case PreferenceUrgent:
		return SupplementUrgent
	case PreferenceWeekend:
		return SupplementWeekend
	case PreferenceToday:
		return SupplementSameDay
	default:
		return 0
	}
}

// Urgency derives the coarse urgency label used in matching and messaging.
func (p Preference) Urgency() string {
	switch p {
	case PreferenceUrgent:
		return requests.UrgencyUrgent
	case PreferenceToday, PreferenceTomorrowMorning, PreferenceTomorrowAfternoon, PreferenceWeekend:
		return requests.UrgencyNormal
	default:
		return requests.UrgencyFlexible
	}
}

// Label returns the user-facing French label for the preference.
func (p Preference) Label() string {
	switch p {
	case PreferenceUrgent:
		return "🚨 Urgent (dès que possible)"
	case PreferenceToday:
		return "Aujourd'hui"
	case PreferenceTomorrowMorning:
		return "Demain matin (8h – 12h)"
	case PreferenceTomorrowAfternoon:
		return "Demain après-midi (14h – 18h)"
	case PreferenceThisWeek:
		return "Cette semaine"
	case PreferenceWeekend:
		return "Ce week-end"
	case PreferenceFlexible:
		return "Je suis flexible"
	default:
		return string(p)
	}
}

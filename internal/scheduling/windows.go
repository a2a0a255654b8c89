package scheduling

import "time"

// sameDayCutoffHour is the local hour past which "today" is no longer offered.
const sameDayCutoffHour = 17

// Local business-hour bounds used when deriving concrete windows.
const (
	morningStartHour   = 8
	morningEndHour     = 12
	afternoonStartHour = 14
	afternoonEndHour   = 18
	dayEndHour         = 20
)

var douala = loadDouala()

func loadDouala() *time.Location {
	loc, err := time.LoadLocation("Africa/Douala")
	if err != nil {
		// WAT is UTC+1 with no DST.
		return time.FixedZone("WAT", 3600)
	}
	return loc
}

// Timezone returns the local zone all windows are computed in.
func Timezone() *time.Location {
	return douala
}

// Window computes the concrete local time window for a preference relative
// to now. ok is false when the preference is not currently offerable
// (today past the cutoff hour).
func Window(p Preference, now time.Time) (start, end time.Time, ok bool) {
	local := now.In(douala)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, douala)

	switch p {
	case PreferenceUrgent:
		// As soon as possible: next two hours.
		return local, local.Add(2 * time.Hour), true
	case PreferenceToday:
		if local.Hour() >= sameDayCutoffHour {
			return time.Time{}, time.Time{}, false
		}
		return local.Add(time.Hour), midnight.Add(dayEndHour * time.Hour), true
	case PreferenceTomorrowMorning:
		d := midnight.AddDate(0, 0, 1)
		return d.Add(morningStartHour * time.Hour), d.Add(morningEndHour * time.Hour), true
	case PreferenceTomorrowAfternoon:
		d := midnight.AddDate(0, 0, 1)
		return d.Add(afternoonStartHour * time.Hour), d.Add(afternoonEndHour * time.Hour), true
	case PreferenceThisWeek:
		return local, midnight.AddDate(0, 0, 7), true
	case PreferenceWeekend:
		sat := midnight
		for sat.Weekday() != time.Saturday {
			sat = sat.AddDate(0, 0, 1)
		}
		// Already past Saturday morning: offer the next weekend instead of a
		// window that starts in the past.
		if !sat.Add(morningStartHour * time.Hour).After(local) {
			sat = sat.AddDate(0, 0, 7)
		}
		return sat.Add(morningStartHour * time.Hour), sat.AddDate(0, 0, 1).Add(afternoonEndHour * time.Hour), true
	case PreferenceFlexible:
		return local, midnight.AddDate(0, 0, 14), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

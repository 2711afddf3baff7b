package clan

import (
	"log/slog"
	"time"
)

// ActivityDateLayout is the fixed timestamp format of the profile feed,
// e.g. "07-Nov-2024 21:06".
const ActivityDateLayout = "02-Jan-2006 15:04"

// Normalizer converts raw profile payloads into Activity records. Entries
// whose date fails to parse are dropped and logged; they are never fatal.
type Normalizer struct {
	recencyWindow time.Duration // 0 disables the recency filter
}

func NewNormalizer(recencyDays int) *Normalizer {
	var window time.Duration
	if recencyDays > 0 {
		window = time.Duration(recencyDays) * 24 * time.Hour
	}

	return &Normalizer{recencyWindow: window}
}

func (n *Normalizer) Run(profile *Profile) []Activity {
	if profile == nil {
		return nil
	}

	var cutoff time.Time
	if n.recencyWindow > 0 {
		cutoff = time.Now().Add(-n.recencyWindow)
	}

	activities := make([]Activity, 0, len(profile.Activities))
	for _, raw := range profile.Activities {
		date, err := time.Parse(ActivityDateLayout, raw.Date)
		if err != nil {
			slog.Warn("Dropping activity with unparseable date", "member", profile.Name, "date", raw.Date, "error", err)
			continue
		}

		if !cutoff.IsZero() && date.Before(cutoff) {
			continue
		}

		activities = append(activities, Activity{
			MemberName: profile.Name,
			Date:       date,
			Details:    raw.Details,
			Text:       raw.Text,
		})
	}

	return activities
}

package clan

import (
	"time"
)

// Roster and profile types

type Member struct {
	Name       string
	Rank       string
	Experience int64
	Kills      int64
}

// RawActivity is one entry of the profile feed, exactly as the upstream
// returns it. Date stays a string until the normalizer parses it.
type RawActivity struct {
	Date    string `json:"date"`
	Details string `json:"details"`
	Text    string `json:"text"`
}

type Profile struct {
	Name       string        `json:"name"`
	Activities []RawActivity `json:"activities"`
}

// Activity is a normalized profile feed entry, ready for insertion.
type Activity struct {
	MemberName string
	Date       time.Time
	Details    string
	Text       string
}

// ProfileResult is the per-member outcome of a fetch run. Skipped is set
// when the member's requests failed permanently or exhausted their retries;
// the rest of the batch is unaffected.
type ProfileResult struct {
	Member  string
	Profile *Profile
	Skipped bool
	Err     error
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	Clan     string         `yaml:"clan"` // In-game clan name as known to the roster feed
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	Activities      int  `yaml:"activities"`       // per-member history depth
	RecencyDays     int  `yaml:"recency_days"`     // 0 disables the recency filter
}

// GetRefreshInterval returns the refresh interval as time.Duration
func (s *ConfigSettings) GetRefreshInterval() time.Duration {
	if s.RefreshInterval <= 0 {
		return 900 * time.Second // default 15 minutes
	}
	return time.Duration(s.RefreshInterval) * time.Second
}

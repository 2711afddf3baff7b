package database

import (
	"time"
)

// Member is a clan roster record. The name is the natural key; rank,
// experience and kills track the latest roster snapshot.
type Member struct {
	ID         int64
	Name       string
	Rank       string
	Experience int64
	Kills      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Activity is a stored profile feed entry. ActivityType and Status use
// "" for SQL NULL: an empty ActivityType means the row has not been
// classified yet, an empty Status means the row is still active.
type Activity struct {
	ID           int64
	MemberName   string
	Date         time.Time
	Details      string
	Text         string
	ActivityType string
	Status       string
	CreatedAt    time.Time
}

// Item is a Grand Exchange catalog entry.
type Item struct {
	ID        int64
	Name      string
	Price     int64
	Volume    int64
	Limit     int64
	Value     int64
	HighAlch  int64
	LowAlch   int64
	Members   bool
	Examine   string
	UpdatedAt time.Time
}

// ActivityStats aggregates row counts per classification state.
type ActivityStats struct {
	Total        int
	Classified   int
	Unclassified int
	Exempt       int
}

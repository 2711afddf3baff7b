package clan

import (
	"testing"
	"time"
)

func TestNormalizer_Run(t *testing.T) {
	normalizer := NewNormalizer(0)

	profile := &Profile{
		Name: "Test Member",
		Activities: []RawActivity{
			{Date: "07-Nov-2024 21:06", Details: "details one", Text: "I killed a thing"},
			{Date: "08-Nov-2024 09:30", Details: "details two", Text: "Levelled up Attack."},
		},
	}

	activities := normalizer.Run(profile)

	if len(activities) != 2 {
		t.Fatalf("Expected 2 activities, got %d", len(activities))
	}

	first := activities[0]
	if first.MemberName != "Test Member" {
		t.Errorf("Expected member name 'Test Member', got %q", first.MemberName)
	}
	expected := time.Date(2024, time.November, 7, 21, 6, 0, 0, time.UTC)
	if !first.Date.Equal(expected) {
		t.Errorf("Expected date %v, got %v", expected, first.Date)
	}
	if first.Text != "I killed a thing" {
		t.Errorf("Text not preserved: got %q", first.Text)
	}
	if first.Details != "details one" {
		t.Errorf("Details not preserved: got %q", first.Details)
	}
}

func TestNormalizer_DropsUnparseableDates(t *testing.T) {
	normalizer := NewNormalizer(0)

	profile := &Profile{
		Name: "Test Member",
		Activities: []RawActivity{
			{Date: "not-a-date", Text: "bad entry"},
			{Date: "07-Nov-2024 21:06", Text: "good entry"},
			{Date: "2024-11-07T21:06:00Z", Text: "wrong format"},
		},
	}

	activities := normalizer.Run(profile)

	if len(activities) != 1 {
		t.Fatalf("Expected 1 activity, got %d", len(activities))
	}
	if activities[0].Text != "good entry" {
		t.Errorf("Expected the valid sibling to survive, got %q", activities[0].Text)
	}
}

func TestNormalizer_RecencyFilter(t *testing.T) {
	normalizer := NewNormalizer(30)

	recent := time.Now().Add(-24 * time.Hour)
	stale := time.Now().Add(-45 * 24 * time.Hour)

	profile := &Profile{
		Name: "Test Member",
		Activities: []RawActivity{
			{Date: recent.Format(ActivityDateLayout), Text: "recent entry"},
			{Date: stale.Format(ActivityDateLayout), Text: "stale entry"},
		},
	}

	activities := normalizer.Run(profile)

	if len(activities) != 1 {
		t.Fatalf("Expected 1 activity, got %d", len(activities))
	}
	if activities[0].Text != "recent entry" {
		t.Errorf("Expected only the recent entry, got %q", activities[0].Text)
	}
}

func TestNormalizer_NilProfile(t *testing.T) {
	normalizer := NewNormalizer(30)

	if activities := normalizer.Run(nil); activities != nil {
		t.Errorf("Expected nil for nil profile, got %v", activities)
	}
}

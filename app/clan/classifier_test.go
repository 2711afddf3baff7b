package clan

import (
	"testing"
)

func TestClassify_RuleTable(t *testing.T) {
	tests := []struct {
		text     string
		details  string
		expected string
	}{
		{"Visited my clan citadel.", "", "clan - citadel visit"},
		{"Capped at my clan citadel.", "", "clan - citadel cap"},
		{"I found a pet", "", "pet drop"},
		{"I found Sifu, the Ancient Summoning pet.", "", "pet drop"},
		{"I killed the dragon", "", "combat"},
		{"I defeated TzTok-Jad.", "", "combat"},
		{"I found a sword", "", "item drop"},
		{"I found an ancient effigy", "", "item drop"},
		{"200000000XP in Defence", "", "xp milestone"},
		{"Levelled up Attack.", "", "level"},
		{"I levelled my Agility skill, I am now level 80.", "", "level"},
		{"2000 total levels reached!", "", "total levels"},
		{"Levelled all skills over 90.", "", "total levels"},
		{"Quest complete: The World Wakes", "", "quest"},
		{"Treasure Trail completed", "", "clue"},
		{"Used a key", "Treasure Hunter reward", "mtx"},
		{"", "Treasure Hunter reward", ""},
		{"Clan Fealty 3 achieved.", "", "clan - fealty"},
		{"Reached dungeon floor 60.", "", "dungeoneering"},
		{"I solved an archaeological mystery.", "", "archaeology"},
		{"I completed a tetracompass.", "", "archaeology"},
		{"300 quest points obtained", "", "quest milestone"},
		{"Daemonheim's history uncovered", "", "dungeoneering"},
		{"Challenged by the Skeleton Champion.", "", "distraction and diversion"},
		{"500 songs unlocked.", "", "songs"},
		{"unrelated text", "", ""},
		{"", "", ""},
	}

	for _, test := range tests {
		result := Classify(test.text, test.details)
		if result != test.expected {
			t.Errorf("Classify(%q, %q): expected %q, got %q", test.text, test.details, test.expected, result)
		}
	}
}

func TestClassify_PetRuleWinsOverItemDrop(t *testing.T) {
	// Both "i found" and "pet" are present; the more specific pet rule
	// must win because it is evaluated first.
	if got := Classify("I found a pet", ""); got != "pet drop" {
		t.Errorf("Expected 'pet drop', got %q", got)
	}
	if got := Classify("I found a sword", ""); got != "item drop" {
		t.Errorf("Expected 'item drop', got %q", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	tests := []struct {
		text     string
		details  string
		expected string
	}{
		{"VISITED MY CLAN CITADEL.", "", "clan - citadel visit"},
		{"i KILLED something", "", "combat"},
		{"quest COMPLETE: Cook's Assistant", "", "quest"},
		{"Used a key", "TREASURE HUNTER", "mtx"},
	}

	for _, test := range tests {
		result := Classify(test.text, test.details)
		if result != test.expected {
			t.Errorf("Classify(%q, %q): expected %q, got %q", test.text, test.details, test.expected, result)
		}
	}
}

func TestClassify_EmptyTextShortCircuits(t *testing.T) {
	// An empty text yields "" before any rule runs. Details alone never
	// reach the rule table, not even the details-keyed mtx rule.
	if got := Classify("", "something irrelevant"); got != "" {
		t.Errorf("Expected empty classification, got %q", got)
	}
	if got := Classify("", "Treasure Hunter reward"); got != "" {
		t.Errorf("Expected empty classification, got %q", got)
	}
}

func TestClassify_DetailsOnlyRule(t *testing.T) {
	// The mtx rule is the only one keyed on details; it applies when the
	// text is non-empty but matches no text rule.
	if got := Classify("something unmatched", "Treasure Hunter: prize claimed"); got != "mtx" {
		t.Errorf("Expected 'mtx', got %q", got)
	}
}

package clan

import (
	"strings"
)

type rule struct {
	match    func(text, details string) bool
	category string
}

func textEquals(s string) func(string, string) bool {
	return func(text, _ string) bool { return text == s }
}

func textContains(substrings ...string) func(string, string) bool {
	return func(text, _ string) bool {
		for _, s := range substrings {
			if strings.Contains(text, s) {
				return true
			}
		}
		return false
	}
}

func textContainsAll(substrings ...string) func(string, string) bool {
	return func(text, _ string) bool {
		for _, s := range substrings {
			if !strings.Contains(text, s) {
				return false
			}
		}
		return true
	}
}

func detailsContains(s string) func(string, string) bool {
	return func(_, details string) bool { return strings.Contains(details, s) }
}

// classifierRules is evaluated top to bottom and the first match wins.
// The order is load-bearing: "i found" + "pet" must be checked before the
// plain "i found" item-drop rule, and the exact citadel matches before
// everything else. Do not reorder.
var classifierRules = []rule{
	{textEquals("visited my clan citadel."), "clan - citadel visit"},
	{textEquals("capped at my clan citadel."), "clan - citadel cap"},
	{textContainsAll("i found", "pet"), "pet drop"},
	{textContains("i killed", "i defeated"), "combat"},
	{textContains("i found"), "item drop"},
	{textContains("xp in"), "xp milestone"},
	{textContains("levelled up", "i levelled"), "level"},
	{textContains("total levels", "levelled all skills"), "total levels"},
	{textContains("quest complete"), "quest"},
	{textContains("treasure trail"), "clue"},
	{detailsContains("treasure hunter"), "mtx"},
	{textContains("clan fealty"), "clan - fealty"},
	{textContains("dungeon floor"), "dungeoneering"},
	{textContains("archaeological mystery", "tetracompass"), "archaeology"},
	{textContains("quest points obtained"), "quest milestone"},
	{textContains("daemonheim's history uncovered"), "dungeoneering"},
	{textContains("challenged by the skeleton champion"), "distraction and diversion"},
	{textContains("songs unlocked"), "songs"},
}

// Classify maps a free-text activity entry to a category. Matching is
// case-insensitive. An empty text yields "" without evaluating any rule;
// "" also means no rule matched and the row stays unclassified.
func Classify(text, details string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	details = strings.ToLower(details)

	for _, r := range classifierRules {
		if r.match(text, details) {
			return r.category
		}
	}

	return ""
}

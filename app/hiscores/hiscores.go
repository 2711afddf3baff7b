// Package hiscores fetches per-player skill and activity rankings from
// the hiscores CSV endpoint.
package hiscores

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

const DefaultHiscoresURL = "https://secure.runescape.com/m=hiscore/index_lite.ws"

// Skills lists the skill rows of the hiscores payload in upstream order.
var Skills = []string{
	"Overall", "Attack", "Defence", "Strength", "Constitution", "Ranged", "Prayer",
	"Magic", "Cooking", "Woodcutting", "Fletching", "Fishing", "Firemaking", "Crafting",
	"Smithing", "Mining", "Herblore", "Agility", "Thieving", "Slayer", "Farming",
	"Runecrafting", "Hunter", "Construction", "Summoning", "Dungeoneering", "Divination",
	"Invention", "Archaeology", "Necromancy",
}

// Activities lists the activity rows that follow the skill rows.
var Activities = []string{
	"Bounty Hunter", "B.H. Rogues", "Dominion Tower", "The Crucible", "Castle Wars games",
	"B.A. Attackers", "B.A. Defenders", "B.A. Collectors", "B.A. Healers", "Duel Tournament",
	"Mobilising Armies", "Conquest", "Fist of Guthix", "GG: Athletics", "GG: Resource Race",
	"WE2: Armadyl Lifetime Contrib", "WE2: Bandos Lifetime Contrib",
	"WE2: Armadyl PvP kills", "WE2: Bandos PvP kills", "Heist Guard Level", "Heist Robber Level",
	"CFP: 5 game average", "AF15: Cow Tipping", "AF15: Rat kills post-quest",
	"RuneScore", "Clue Scrolls Easy", "Clue Scrolls Medium", "Clue Scrolls Hard",
	"Clue Scrolls Elite", "Clue Scrolls Master",
}

type SkillRank struct {
	Name       string `json:"name"`
	Rank       int64  `json:"rank"`
	Level      int64  `json:"level"`
	Experience int64  `json:"experience"`
}

type ActivityRank struct {
	Name  string `json:"name"`
	Rank  int64  `json:"rank"`
	Score int64  `json:"score"`
}

type PlayerStats struct {
	Player     string         `json:"player"`
	Skills     []SkillRank    `json:"skills"`
	Activities []ActivityRank `json:"activities"`
}

type Client struct {
	client  *resty.Client
	baseURL string
}

func NewClient(client *resty.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultHiscoresURL
	}
	return &Client{client: client, baseURL: baseURL}
}

// Fetch retrieves and parses a player's hiscores. The payload is one CSV
// line per skill (rank,level,experience) followed by one per activity
// (rank,score); unranked entries arrive as -1 and are reported as 0.
func (c *Client) Fetch(ctx context.Context, player string) (*PlayerStats, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("player", player).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hiscores for %s: %w", player, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("hiscores returned HTTP %d for %s", resp.StatusCode(), player)
	}

	lines := strings.Split(strings.TrimSpace(string(resp.Body())), "\n")
	if len(lines) < len(Skills)+len(Activities) {
		return nil, fmt.Errorf("hiscores payload too short: %d lines", len(lines))
	}

	stats := &PlayerStats{Player: player}

	for i, name := range Skills {
		fields, err := parseLine(lines[i], 3)
		if err != nil {
			return nil, fmt.Errorf("bad skill line %d: %w", i, err)
		}
		stats.Skills = append(stats.Skills, SkillRank{
			Name:       name,
			Rank:       fields[0],
			Level:      fields[1],
			Experience: fields[2],
		})
	}

	for i, name := range Activities {
		fields, err := parseLine(lines[len(Skills)+i], 2)
		if err != nil {
			return nil, fmt.Errorf("bad activity line %d: %w", i, err)
		}
		stats.Activities = append(stats.Activities, ActivityRank{
			Name:  name,
			Rank:  fields[0],
			Score: fields[1],
		})
	}

	return stats, nil
}

func parseLine(line string, want int) ([]int64, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d fields, got %d", want, len(parts))
	}

	values := make([]int64, want)
	for i, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric field %q: %w", part, err)
		}
		if v == -1 {
			v = 0
		}
		values[i] = v
	}

	return values, nil
}

package clan

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/unicode/norm"
)

const DefaultRosterURL = "http://services.runescape.com/m=clan-hiscores/members_lite.ws"

// RosterLoader fetches the current member list of a clan. The upstream
// response is a header line followed by one CSV record per member:
// name,rank,experience,kills.
type RosterLoader struct {
	client  *resty.Client
	baseURL string
}

func NewRosterLoader(client *resty.Client, baseURL string) *RosterLoader {
	if baseURL == "" {
		baseURL = DefaultRosterURL
	}
	return &RosterLoader{
		client:  client,
		baseURL: baseURL,
	}
}

func (l *RosterLoader) Run(ctx context.Context, clanName string) ([]Member, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetQueryParam("clanName", clanName).
		Get(l.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clan roster: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	lines := strings.Split(strings.TrimSpace(resp.String()), "\n")

	// A header with no member records is a valid empty clan. Skip the
	// header line; parse leniently so one malformed record never loses
	// the rest of the roster.
	members := make([]Member, 0, len(lines))
	if len(lines) < 2 {
		slog.Debug("Roster has no member records", "clan", clanName)
		return members, nil
	}
	for _, line := range lines[1:] {
		member, err := parseRosterLine(line)
		if err != nil {
			slog.Warn("Skipping malformed roster line", "clan", clanName, "line", line, "error", err)
			continue
		}
		members = append(members, member)
	}

	slog.Debug("Fetched clan roster", "clan", clanName, "members", len(members))

	return members, nil
}

func parseRosterLine(line string) (Member, error) {
	fields := strings.Split(strings.TrimRight(line, "\r"), ",")
	if len(fields) != 4 {
		return Member{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	name := NormalizeName(fields[0])
	if name == "" {
		return Member{}, fmt.Errorf("empty member name")
	}

	experience, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return Member{}, fmt.Errorf("invalid experience value: %w", err)
	}

	kills, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return Member{}, fmt.Errorf("invalid kills value: %w", err)
	}

	return Member{
		Name:       name,
		Rank:       strings.TrimSpace(fields[1]),
		Experience: experience,
		Kills:      kills,
	}, nil
}

// NormalizeName folds the non-breaking spaces the roster feed uses in
// display names into plain spaces. NFKC covers U+00A0 and its variants.
func NormalizeName(name string) string {
	return strings.TrimSpace(norm.NFKC.String(name))
}

// Package items syncs the Grand Exchange item catalog from the public
// price dump into the database.
package items

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/lysyi3m/clan-comb/app/database"
)

const DefaultDumpURL = "https://chisel.weirdgloop.org/gazproj/gazbot/rs_dump.json"

// dumpEntry is one item of the dump keyed by item name. Numeric fields
// arrive inconsistently typed (number, float, or comma-grouped string),
// so they are decoded loosely.
type dumpEntry struct {
	ID       looseInt `json:"id"`
	Price    looseInt `json:"price"`
	Volume   looseInt `json:"volume"`
	Limit    looseInt `json:"limit"`
	Value    looseInt `json:"value"`
	HighAlch looseInt `json:"highalch"`
	LowAlch  looseInt `json:"lowalch"`
	Members  bool     `json:"members"`
	Examine  string   `json:"examine"`
}

// looseInt coerces a JSON number, float, or numeric string into an
// int64. Unusable values leave the field at zero with Valid unset
// rather than failing the whole row.
type looseInt struct {
	Int64 int64
	Valid bool
}

func (l *looseInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		str = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return nil
		}
		l.Int64 = v
		l.Valid = true
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	l.Int64 = int64(math.Round(f))
	l.Valid = true
	return nil
}

type Catalog struct {
	client *resty.Client
	url    string
	repo   database.ItemRepository
}

func NewCatalog(client *resty.Client, url string, repo database.ItemRepository) *Catalog {
	if url == "" {
		url = DefaultDumpURL
	}
	return &Catalog{client: client, url: url, repo: repo}
}

// Sync downloads the dump and upserts every usable entry. Rows without
// an id are skipped; per-row upsert failures are logged and counted but
// do not abort the run.
func (c *Catalog) Sync(ctx context.Context) (int, int, error) {
	resp, err := c.client.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to download item dump: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, 0, fmt.Errorf("item dump returned HTTP %d", resp.StatusCode())
	}

	var dump map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &dump); err != nil {
		return 0, 0, fmt.Errorf("failed to parse item dump: %w", err)
	}

	stored := 0
	skipped := 0
	for name, raw := range dump {
		// The dump carries metadata entries like "%jagex_timestamp%"
		// alongside the items.
		if strings.HasPrefix(name, "%") {
			continue
		}

		var entry dumpEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			slog.Warn("Skipping unparseable item entry", "name", name, "error", err)
			skipped++
			continue
		}
		if !entry.ID.Valid || name == "" {
			skipped++
			continue
		}

		item := database.Item{
			ID:       entry.ID.Int64,
			Name:     name,
			Price:    entry.Price.Int64,
			Volume:   entry.Volume.Int64,
			Limit:    entry.Limit.Int64,
			Value:    entry.Value.Int64,
			HighAlch: entry.HighAlch.Int64,
			LowAlch:  entry.LowAlch.Int64,
			Members:  entry.Members,
			Examine:  entry.Examine,
		}

		if err := c.repo.UpsertItem(item); err != nil {
			slog.Error("Failed to upsert item", "name", name, "id", item.ID, "error", err)
			skipped++
			continue
		}
		stored++
	}

	return stored, skipped, nil
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lysyi3m/clan-comb/app/clan"
	"github.com/lysyi3m/clan-comb/app/database"
	"github.com/lysyi3m/clan-comb/app/hiscores"
	"github.com/lysyi3m/clan-comb/app/tasks"
)

type stubMemberRepo struct{}

func (r *stubMemberRepo) UpsertMember(name, rank string, experience, kills int64) error { return nil }
func (r *stubMemberRepo) GetMember(name string) (*database.Member, error) {
	if name == "Known Member" {
		return &database.Member{Name: name, Rank: "Owner"}, nil
	}
	return nil, nil
}
func (r *stubMemberRepo) GetMembers() ([]database.Member, error) {
	return []database.Member{{Name: "Known Member", Rank: "Owner", Experience: 100, Kills: 1}}, nil
}
func (r *stubMemberRepo) GetMemberCount() (int, error) { return 1, nil }

type stubActivityRepo struct{}

func (r *stubActivityRepo) InsertActivity(memberName string, date time.Time, details, text string) (bool, error) {
	return true, nil
}
func (r *stubActivityRepo) GetUnclassifiedActivities(afterID int64, limit int) ([]database.Activity, error) {
	return nil, nil
}
func (r *stubActivityRepo) SetActivityType(id int64, activityType string) error { return nil }
func (r *stubActivityRepo) GetActivitiesForMember(memberName string, includeExempt bool, limit int) ([]database.Activity, error) {
	return []database.Activity{{ID: 1, MemberName: memberName, Text: "Levelled up Attack.", ActivityType: "level"}}, nil
}
func (r *stubActivityRepo) GetActivityCount() (int, error) { return 1, nil }
func (r *stubActivityRepo) GetActivityStats() (*database.ActivityStats, error) {
	return &database.ActivityStats{Total: 1, Classified: 1}, nil
}
func (r *stubActivityRepo) MarkExpired(olderThan time.Time) (int64, error) { return 0, nil }

type stubItemRepo struct{}

func (r *stubItemRepo) UpsertItem(item database.Item) error      { return nil }
func (r *stubItemRepo) GetItem(id int64) (*database.Item, error) { return nil, nil }
func (r *stubItemRepo) GetItemCount() (int, error)               { return 0, nil }

type stubScheduler struct {
	synced []string
}

func (s *stubScheduler) Start() {}
func (s *stubScheduler) Stop()  {}
func (s *stubScheduler) EnqueueTask(task tasks.TaskInterface) error { return nil }
func (s *stubScheduler) EnqueueSyncClan(clanName string) error {
	s.synced = append(s.synced, clanName)
	return nil
}

func newTestServer(t *testing.T, hiscoresURL, apiKey string) (*httptest.Server, *stubScheduler) {
	t.Helper()

	scheduler := &stubScheduler{}
	handler := NewHandler(
		clan.NewConfigCache(t.TempDir()),
		&stubMemberRepo{},
		&stubActivityRepo{},
		&stubItemRepo{},
		hiscores.NewClient(resty.New(), hiscoresURL),
		scheduler,
	)

	server := httptest.NewServer(NewServer(handler, apiKey))
	t.Cleanup(server.Close)
	return server, scheduler
}

func TestGetHealth(t *testing.T) {
	server, _ := newTestServer(t, "", "")

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var health map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if health["members"] != float64(1) {
		t.Errorf("Expected 1 member in health payload, got %v", health["members"])
	}
}

func TestGetMemberActivities(t *testing.T) {
	server, _ := newTestServer(t, "", "")

	resp, err := http.Get(server.URL + "/members/Known%20Member/activities")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Member string `json:"member"`
		Total  int    `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if payload.Member != "Known Member" || payload.Total != 1 {
		t.Errorf("Wrong payload: %+v", payload)
	}
}

func TestGetMemberActivities_UnknownMember(t *testing.T) {
	server, _ := newTestServer(t, "", "")

	resp, err := http.Get(server.URL + "/members/Nobody/activities")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestGetPlayerStats_LookupFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer failing.Close()

	server, _ := newTestServer(t, failing.URL, "")

	resp, err := http.Get(server.URL + "/players/Bad%20Name/stats")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", resp.StatusCode)
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := "Could not retrieve stats for Bad Name. Please check the username and try again."
	if payload.Error != expected {
		t.Errorf("Expected %q, got %q", expected, payload.Error)
	}
}

func TestAuthMiddleware(t *testing.T) {
	server, scheduler := newTestServer(t, "", "secret-key")

	// Without a key the protected route refuses.
	resp, err := http.Post(server.URL+"/api/clans/test-clan/sync", "application/json", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}

	// With the right key the sync is queued.
	req, _ := http.NewRequest("POST", server.URL+"/api/clans/test-clan/sync", strings.NewReader(""))
	req.Header.Set("X-API-Key", "secret-key")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d", resp.StatusCode)
	}
	if len(scheduler.synced) != 1 || scheduler.synced[0] != "test-clan" {
		t.Errorf("Expected sync queued for 'test-clan', got %v", scheduler.synced)
	}
}

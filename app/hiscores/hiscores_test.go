package hiscores

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
)

func buildPayload() string {
	var b strings.Builder
	for i := range Skills {
		fmt.Fprintf(&b, "%d,%d,%d\n", i+1, 99, (i+1)*1000)
	}
	for i := range Activities {
		fmt.Fprintf(&b, "%d,%d\n", i+100, (i+1)*10)
	}
	return b.String()
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("player") != "Test Player" {
			t.Errorf("Expected player query param 'Test Player', got %q", r.URL.Query().Get("player"))
		}
		w.Write([]byte(buildPayload()))
	}))
	defer server.Close()

	client := NewClient(resty.New(), server.URL)

	stats, err := client.Fetch(context.Background(), "Test Player")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(stats.Skills) != len(Skills) {
		t.Fatalf("Expected %d skills, got %d", len(Skills), len(stats.Skills))
	}
	if len(stats.Activities) != len(Activities) {
		t.Fatalf("Expected %d activities, got %d", len(Activities), len(stats.Activities))
	}

	if stats.Skills[0].Name != "Overall" {
		t.Errorf("Expected first skill 'Overall', got %q", stats.Skills[0].Name)
	}
	if stats.Skills[0].Rank != 1 || stats.Skills[0].Level != 99 || stats.Skills[0].Experience != 1000 {
		t.Errorf("Wrong first skill values: %+v", stats.Skills[0])
	}
	if stats.Skills[len(Skills)-1].Name != "Necromancy" {
		t.Errorf("Expected last skill 'Necromancy', got %q", stats.Skills[len(Skills)-1].Name)
	}
	if stats.Activities[0].Name != "Bounty Hunter" {
		t.Errorf("Expected first activity 'Bounty Hunter', got %q", stats.Activities[0].Name)
	}
	if stats.Activities[0].Rank != 100 || stats.Activities[0].Score != 10 {
		t.Errorf("Wrong first activity values: %+v", stats.Activities[0])
	}
}

func TestClient_UnrankedBecomesZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := buildPayload()
		lines := strings.SplitAfter(payload, "\n")
		lines[1] = "-1,-1,-1\n"
		w.Write([]byte(strings.Join(lines, "")))
	}))
	defer server.Close()

	client := NewClient(resty.New(), server.URL)

	stats, err := client.Fetch(context.Background(), "Unranked")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	attack := stats.Skills[1]
	if attack.Rank != 0 || attack.Level != 0 || attack.Experience != 0 {
		t.Errorf("Expected unranked skill to read as zeros, got %+v", attack)
	}
}

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(resty.New(), server.URL)

	if _, err := client.Fetch(context.Background(), "No Such Player"); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestClient_TruncatedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1,99,1000\n2,99,2000\n"))
	}))
	defer server.Close()

	client := NewClient(resty.New(), server.URL)

	if _, err := client.Fetch(context.Background(), "Short"); err == nil {
		t.Error("Expected error for truncated payload")
	}
}

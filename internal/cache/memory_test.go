package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := repo.SetJSON(ctx, "key", payload{Name: "hello", Count: 3}, time.Minute); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var got payload
	found, err := repo.GetJSON(ctx, "key", &got)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if !found {
		t.Fatal("expected a hit")
	}
	if got.Name != "hello" || got.Count != 3 {
		t.Errorf("unexpected value: %+v", got)
	}

	found, err = repo.GetJSON(ctx, "missing", &got)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if found {
		t.Error("expected a miss for an unknown key")
	}
}

func TestInvalidateLeaderboards(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	ctx := context.Background()

	// Leaderboard keys carry limit suffixes; all must go at once.
	keys := []string{
		KeyLeaderboardExpensive + ":10",
		KeyLeaderboardRecent + ":25",
		KeyPlatformStats,
	}
	for _, key := range keys {
		if err := repo.SetJSON(ctx, key, "cached", time.Minute); err != nil {
			t.Fatalf("SetJSON failed: %v", err)
		}
	}
	if err := repo.SetJSON(ctx, "unrelated", "stays", time.Minute); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	if err := InvalidateLeaderboards(ctx, repo); err != nil {
		t.Fatalf("InvalidateLeaderboards failed: %v", err)
	}

	var out string
	for _, key := range keys {
		if found, _ := repo.GetJSON(ctx, key, &out); found {
			t.Errorf("expected %q to be invalidated", key)
		}
	}
	if found, _ := repo.GetJSON(ctx, "unrelated", &out); !found {
		t.Error("expected unrelated key to survive")
	}
}

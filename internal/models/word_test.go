package models

import (
	"testing"
	"time"
)

func TestIsAvailable(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Minute)

	if !IsAvailable(nil) {
		t.Error("expected word without lockout to be available")
	}
	if !IsAvailable(&past) {
		t.Error("expected word with expired lockout to be available")
	}
	if IsAvailable(&future) {
		t.Error("expected word with active lockout to be unavailable")
	}
}

func TestAdjudicationStatus(t *testing.T) {
	cases := map[string]ModerationStatus{
		"approve": ModerationApproved,
		"reject":  ModerationRejected,
		"protect": ModerationProtected,
	}
	for action, want := range cases {
		got, ok := AdjudicationStatus(action)
		if !ok || got != want {
			t.Errorf("AdjudicationStatus(%q) = %q, %v; want %q, true", action, got, ok, want)
		}
	}

	if _, ok := AdjudicationStatus("delete"); ok {
		t.Error("expected unknown action to be rejected")
	}
}

func TestCanAutoEscalate(t *testing.T) {
	if !ModerationUnset.CanAutoEscalate() {
		t.Error("expected unset status to allow escalation")
	}
	for _, s := range []ModerationStatus{ModerationPending, ModerationApproved, ModerationRejected, ModerationProtected} {
		if s.CanAutoEscalate() {
			t.Errorf("expected %q to block escalation", s)
		}
	}
}

package content

import (
	"context"
	"errors"
	"testing"

	"word-market/internal/classifier"
	"word-market/internal/models"
)

type stubClassifier struct {
	scores classifier.Scores
	err    error
	calls  int
}

func (s *stubClassifier) Score(ctx context.Context, text string) (classifier.Scores, error) {
	s.calls++
	return s.scores, s.err
}

func newGate(cls classifier.Classifier, failOpen bool) *Gate {
	return NewGate(cls, Config{
		WordThreshold:    0.7,
		MessageThreshold: 0.8,
		ReportThreshold:  3,
		FailOpen:         failOpen,
	})
}

func TestValidateContentFormatRules(t *testing.T) {
	gate := newGate(nil, true)

	cases := []struct {
		text   string
		reason string
	}{
		{"check out https://example.com", "URLs"},
		{"visit www.example.com today", "URLs"},
		{"mail me at bob@example.com", "Email"},
		{"follow @someone", "handles"},
		{"call 555-123-4567", "Phone"},
		{"well shit happens", "Profanity"},
	}

	for _, tc := range cases {
		ok, reason := gate.ValidateContent(context.Background(), tc.text)
		if ok {
			t.Errorf("expected %q to be rejected", tc.text)
		}
		if reason == "" {
			t.Errorf("expected a reason for %q", tc.text)
		}
	}

	if ok, reason := gate.ValidateContent(context.Background(), "a perfectly fine message"); !ok {
		t.Errorf("expected clean text to pass, got %q", reason)
	}
}

func TestValidateContentClassifierThreshold(t *testing.T) {
	cls := &stubClassifier{scores: classifier.Scores{Toxicity: 0.9}}
	gate := newGate(cls, true)

	if ok, _ := gate.ValidateContent(context.Background(), "subtle but toxic"); ok {
		t.Error("expected high-toxicity text to be rejected")
	}

	cls.scores = classifier.Scores{Toxicity: 0.5, Insult: 0.79}
	if ok, reason := gate.ValidateContent(context.Background(), "borderline"); !ok {
		t.Errorf("expected sub-threshold text to pass, got %q", reason)
	}
}

func TestClassifierFailOpen(t *testing.T) {
	cls := &stubClassifier{err: errors.New("service down")}
	gate := newGate(cls, true)

	if ok, _ := gate.ValidateContent(context.Background(), "anything at all"); !ok {
		t.Error("expected classifier failure to pass with fail-open")
	}
	if cls.calls == 0 {
		t.Error("expected the classifier to be called")
	}

	strict := newGate(&stubClassifier{err: errors.New("service down")}, false)
	if ok, _ := strict.ValidateContent(context.Background(), "anything at all"); ok {
		t.Error("expected classifier failure to reject without fail-open")
	}
}

func TestCheckWordTextUsesWordThreshold(t *testing.T) {
	// 0.75 sits between the word threshold (0.7) and message threshold (0.8).
	cls := &stubClassifier{scores: classifier.Scores{Obscene: 0.75}}
	gate := newGate(cls, true)

	if ok, _ := gate.CheckWordText(context.Background(), "edgy"); ok {
		t.Error("expected word above word threshold to be rejected")
	}
	if ok, _ := gate.ValidateContent(context.Background(), "edgy"); !ok {
		t.Error("expected same score to pass the looser message threshold")
	}
}

func TestNormalizeWord(t *testing.T) {
	for input, want := range map[string]string{
		"  Hello ": "hello",
		"WORLD":    "world",
		"plain":    "plain",
	} {
		if got := NormalizeWord(input); got != want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidWordText(t *testing.T) {
	valid := []string{"a", "hello", "abcdefghijklmnopqrstuvwxyz"}
	for _, text := range valid {
		if !ValidWordText(text) {
			t.Errorf("expected %q to be valid", text)
		}
	}

	invalid := []string{"", "Hello", "two words", "hello1", "héllo", "with-dash", "with_underscore"}
	for _, text := range invalid {
		if ValidWordText(text) {
			t.Errorf("expected %q to be invalid", text)
		}
	}
}

func TestFilterMessage(t *testing.T) {
	gate := newGate(nil, true)
	message := "hello there"

	cases := []struct {
		name    string
		status  models.ModerationStatus
		reports int64
		visible bool
	}{
		{"unset below threshold", models.ModerationUnset, 2, true},
		{"unset at threshold", models.ModerationUnset, 3, false},
		{"pending", models.ModerationPending, 0, false},
		{"rejected", models.ModerationRejected, 0, false},
		{"approved", models.ModerationApproved, 10, true},
		{"protected", models.ModerationProtected, 10, true},
	}

	for _, tc := range cases {
		got := gate.FilterMessage(&message, tc.status, tc.reports)
		if tc.visible && got == nil {
			t.Errorf("%s: expected message visible", tc.name)
		}
		if !tc.visible && got != nil {
			t.Errorf("%s: expected message suppressed", tc.name)
		}
	}

	if got := gate.FilterMessage(nil, models.ModerationApproved, 0); got != nil {
		t.Error("expected nil message to stay nil")
	}
}

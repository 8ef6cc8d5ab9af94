package content

import (
	"context"
	"log"
	"regexp"
	"strings"

	"word-market/internal/classifier"
	"word-market/internal/models"
)

var (
	urlPattern    = regexp.MustCompile(`(?i)https?://|www\.|\.com|\.net|\.org|\.io|\.ai`)
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	handlePattern = regexp.MustCompile(`@\w+`)
	phonePattern  = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	wordPattern   = regexp.MustCompile(`^[a-z]{1,100}$`)
)

var profanityList = []string{"fuck", "shit", "bitch", "asshole", "damn"}

// Gate validates user-submitted text and decides message visibility. The
// classifier is injected at construction; when FailOpen is set, classifier
// errors are logged and treated as a pass so an unavailable scoring
// service never blocks submissions.
type Gate struct {
	classifier       classifier.Classifier
	wordThreshold    float64
	messageThreshold float64
	reportThreshold  int64
	failOpen         bool
}

// Config carries the gate's policy knobs.
type Config struct {
	WordThreshold    float64
	MessageThreshold float64
	ReportThreshold  int64
	FailOpen         bool
}

func NewGate(cls classifier.Classifier, cfg Config) *Gate {
	return &Gate{
		classifier:       cls,
		wordThreshold:    cfg.WordThreshold,
		messageThreshold: cfg.MessageThreshold,
		reportThreshold:  cfg.ReportThreshold,
		failOpen:         cfg.FailOpen,
	}
}

// ReportThreshold returns the report count at which a message is escalated
// and suppressed.
func (g *Gate) ReportThreshold() int64 {
	return g.reportThreshold
}

// NormalizeWord lowercases and trims a word candidate.
func NormalizeWord(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ValidWordText reports whether a normalized word is 1-100 ASCII letters.
func ValidWordText(text string) bool {
	return wordPattern.MatchString(text)
}

// ValidateContent checks user text (names, messages) against format rules
// and the toxicity classifier. Returns false with a human-readable reason
// on rejection.
func (g *Gate) ValidateContent(ctx context.Context, text string) (bool, string) {
	if urlPattern.MatchString(text) {
		return false, "URLs and web links are not allowed"
	}
	if emailPattern.MatchString(text) {
		return false, "Email addresses are not allowed"
	}
	if handlePattern.MatchString(text) {
		return false, "Social media handles are not allowed"
	}
	if phonePattern.MatchString(text) {
		return false, "Phone numbers are not allowed"
	}

	lower := strings.ToLower(text)
	for _, word := range profanityList {
		if strings.Contains(lower, word) {
			return false, "Profanity is not allowed"
		}
	}

	if !g.acceptable(ctx, text, g.messageThreshold) {
		return false, "Message was flagged as inappropriate"
	}

	return true, ""
}

// CheckWordText runs a word candidate through the classifier. Only a
// high-confidence toxicity signal blocks; errors pass per the fail-open
// policy.
func (g *Gate) CheckWordText(ctx context.Context, text string) (bool, string) {
	if !g.acceptable(ctx, text, g.wordThreshold) {
		return false, "Word was flagged as inappropriate"
	}
	return true, ""
}

func (g *Gate) acceptable(ctx context.Context, text string, threshold float64) bool {
	if g.classifier == nil {
		return true
	}

	scores, err := g.classifier.Score(ctx, text)
	if err != nil {
		if g.failOpen {
			log.Printf("Classifier error (failing open): %v", err)
			return true
		}
		return false
	}

	return scores.Max() < threshold
}

// FilterMessage decides whether an owner message may be shown. It is the
// only place message suppression is decided; every read path goes through
// it instead of reading the raw column.
func (g *Gate) FilterMessage(message *string, status models.ModerationStatus, reportCount int64) *string {
	if message == nil {
		return nil
	}

	switch status {
	case models.ModerationApproved, models.ModerationProtected:
		return message
	case models.ModerationPending, models.ModerationRejected:
		return nil
	}

	// Status unset: suppress once reports reach the threshold, even
	// before formal adjudication.
	if reportCount >= g.reportThreshold {
		return nil
	}
	return message
}

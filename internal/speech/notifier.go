package speech

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/redchef/internal/domain"
)

// Compile-time interface check.
var _ domain.Notifier = (*SpeakingNotifier)(nil)

// Speaker queues a line for speech. *Mouth satisfies it.
type Speaker interface {
	Say(text string, p Priority)
}

// SpeakingNotifier prints through an inner notifier and also speaks.
type SpeakingNotifier struct {
	text    domain.Notifier
	speaker Speaker
}

// NewSpeakingNotifier wraps text so every notification is also spoken.
func NewSpeakingNotifier(text domain.Notifier, speaker Speaker) *SpeakingNotifier {
	return &SpeakingNotifier{text: text, speaker: speaker}
}

// Notify prints the message and speaks it at normal priority.
func (n *SpeakingNotifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	n.speaker.Say(cleanForSpeech(message), PriorityNormal)
	return nil
}

// NotifyUrgent prints the message and speaks it ahead of normal lines.
func (n *SpeakingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.speaker.Say(cleanForSpeech(message), PriorityUrgent)
	return nil
}

var (
	ansiCodes     = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	bracketPrefix = regexp.MustCompile(`^\[[^\]]*\]\s*`)
)

// cleanForSpeech strips terminal styling and "[n]" list markers.
func cleanForSpeech(msg string) string {
	s := ansiCodes.ReplaceAllString(msg, "")
	s = bracketPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

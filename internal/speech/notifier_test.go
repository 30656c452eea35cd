package speech

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type printed struct{ normal, urgent []string }

func (p *printed) Notify(ctx context.Context, m string) error {
	p.normal = append(p.normal, m)
	return nil
}

func (p *printed) NotifyUrgent(ctx context.Context, m string) error {
	p.urgent = append(p.urgent, m)
	return nil
}

type said struct {
	text     string
	priority Priority
}

type fakeSpeaker struct{ got []said }

func (f *fakeSpeaker) Say(text string, p Priority) {
	f.got = append(f.got, said{text, p})
}

func TestSpeakingNotifier(t *testing.T) {
	text := &printed{}
	speaker := &fakeSpeaker{}
	n := NewSpeakingNotifier(text, speaker)
	ctx := context.Background()

	n.Notify(ctx, "\x1b[32mAdded eggs.\x1b[0m")
	n.NotifyUrgent(ctx, "Please add at least one ingredient")

	if len(text.normal) != 1 || len(text.urgent) != 1 {
		t.Fatalf("inner notifier not called: %+v", text)
	}
	want := []said{
		{"Added eggs.", PriorityNormal},
		{"Please add at least one ingredient", PriorityUrgent},
	}
	if diff := cmp.Diff(want, speaker.got, cmp.AllowUnexported(said{})); diff != "" {
		t.Fatalf("spoken lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanForSpeech(t *testing.T) {
	if got := cleanForSpeech("  [2] milk "); got != "milk" {
		t.Fatalf("expected list marker stripped, got %q", got)
	}
}

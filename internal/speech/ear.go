package speech

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/hammamikhairi/redchef/internal/logger"
)

// EarOption configures the Ear.
type EarOption func(*Ear)

// WithRecordDuration sets the length of each recording.
func WithRecordDuration(d time.Duration) EarOption {
	return func(e *Ear) {
		if d > 0 {
			e.recordDuration = d
		}
	}
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) EarOption {
	return func(e *Ear) { e.tempDir = dir }
}

// WithBusy sets a check that suppresses recording, typically
// Mouth.Speaking, so the microphone does not transcribe our own voice.
func WithBusy(busy func() bool) EarOption {
	return func(e *Ear) { e.busy = busy }
}

// recorder records for d and returns the raw transcription.
type recorder func(ctx context.Context, d time.Duration) string

// Ear turns dictation into input lines using a local Whisper model.
// Each recording window is transcribed, cleaned, and, if anything is
// left, delivered on C exactly like a typed line.
type Ear struct {
	whisperBin     string
	modelPath      string
	tempDir        string
	log            *logger.Logger
	recordDuration time.Duration
	busy           func() bool
	record         recorder

	mu     sync.Mutex
	muted  bool
	textCh chan string
}

// NewEar creates a dictation listener.
//
//   - whisperBin: path to the whisper-cli executable
//   - modelPath:  path to the GGML model file
func NewEar(whisperBin, modelPath string, log *logger.Logger, opts ...EarOption) *Ear {
	e := &Ear{
		whisperBin:     whisperBin,
		modelPath:      modelPath,
		tempDir:        ".redchef-stt",
		log:            log,
		recordDuration: 4 * time.Second,
		busy:           func() bool { return false },
		textCh:         make(chan string, 8),
	}
	e.record = e.recordWhisper
	for _, opt := range opts {
		opt(e)
	}

	if _, err := exec.LookPath(e.whisperBin); err != nil {
		log.Error("whisper binary %q not found: %v", e.whisperBin, err)
	}
	return e
}

// C delivers cleaned utterances.
func (e *Ear) C() <-chan string { return e.textCh }

// Mute pauses recording until Unmute.
func (e *Ear) Mute() {
	e.mu.Lock()
	e.muted = true
	e.mu.Unlock()
}

// Unmute resumes recording.
func (e *Ear) Unmute() {
	e.mu.Lock()
	e.muted = false
	e.mu.Unlock()
}

func (e *Ear) paused() bool {
	e.mu.Lock()
	muted := e.muted
	e.mu.Unlock()
	return muted || e.busy()
}

// Run records and transcribes until ctx is cancelled. Call it in a
// goroutine.
func (e *Ear) Run(ctx context.Context) {
	e.log.Info("dictation started (window=%s)", e.recordDuration)
	defer e.log.Info("dictation stopped")

	for ctx.Err() == nil {
		if e.paused() {
			select {
			case <-time.After(200 * time.Millisecond):
			case <-ctx.Done():
			}
			continue
		}

		raw := e.record(ctx, e.recordDuration)

		// Speech started mid-recording: the clip has our own voice in it.
		if e.paused() {
			e.log.Debug("discarding clip recorded while busy")
			continue
		}

		text := cleanTranscription(raw)
		if text == "" {
			continue
		}
		e.log.Info("heard %q", text)

		select {
		case e.textCh <- text:
		case <-ctx.Done():
		}
	}
}

// recordWhisper does one recording cycle through whisper-cli.
func (e *Ear) recordWhisper(ctx context.Context, d time.Duration) string {
	var (
		result string
		wg     sync.WaitGroup
	)
	wg.Add(1)
	callback := func(text string) {
		result = text
		wg.Done()
	}

	verbose := e.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(e.whisperBin, e.modelPath, e.tempDir, "wav", callback, verbose)
	if err != nil {
		e.log.Error("transcriber init: %v", err)
		sleepCtx(ctx, 2*time.Second)
		return ""
	}
	if err := t.Start(); err != nil {
		e.log.Error("recording start: %v", err)
		sleepCtx(ctx, 2*time.Second)
		return ""
	}

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
	t.Stop()
	wg.Wait()

	if ctx.Err() != nil {
		return ""
	}
	return result
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// ── Transcription cleanup ────────────────────────────────────────

var (
	// Whisper timestamps: "[00:00:00.000 --> 00:00:04.000]".
	timestampPrefix = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}\]\s*`)

	// Non-speech annotations: "[BLANK_AUDIO]", "(keyboard clicking)",
	// "[Music]", "(speaking French)".
	annotation = regexp.MustCompile(`[\(\[][A-Za-z][A-Za-z_\s]*[\)\]]`)

	spaces = regexp.MustCompile(`\s+`)
)

// Whisper emits these on silent clips.
var hallucinations = []string{
	"you",
	"thank you",
	"thanks for watching",
	"thank you for watching",
	"bye",
	"the end",
	"please subscribe",
}

// cleanTranscription turns raw whisper output into an input line:
// timestamps and annotations removed, whitespace collapsed, trailing
// punctuation dropped, and known silence hallucinations discarded.
func cleanTranscription(s string) string {
	s = timestampPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	s = annotation.ReplaceAllString(s, " ")
	s = spaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!?,; ")
	s = strings.TrimLeft(s, ".,-; ")

	for _, h := range hallucinations {
		if strings.EqualFold(s, h) {
			return ""
		}
	}
	return s
}

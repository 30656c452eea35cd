package speech

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/redchef/internal/logger"
)

// MouthOption configures the Mouth.
type MouthOption func(*Mouth)

// WithCache replaces the default in-memory audio cache.
func WithCache(c *AudioCache) MouthOption {
	return func(m *Mouth) {
		m.cache = c
	}
}

// Mouth serializes speech: queue -> synthesize (cached) -> play. Only
// one line plays at a time; urgent lines jump ahead of normal ones.
type Mouth struct {
	tts   Synthesizer
	sink  Sink
	log   *logger.Logger
	cache *AudioCache

	mu       sync.Mutex
	queue    []request
	gen      uint64 // bumped by Interrupt; stale requests are dropped
	speaking bool
	wake     chan struct{}
}

// NewMouth creates a speech dispatcher.
func NewMouth(tts Synthesizer, sink Sink, log *logger.Logger, opts ...MouthOption) *Mouth {
	m := &Mouth{
		tts:  tts,
		sink: sink,
		log:  log,
		wake: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = NewAudioCache(tts.Voice(), "", false, log)
	}
	return m
}

// Say queues one line. Non-blocking; empty text is ignored.
func (m *Mouth) Say(text string, p Priority) {
	if text == "" {
		return
	}
	m.mu.Lock()
	req := request{text: text, priority: p, queuedAt: time.Now(), gen: m.gen}
	// Insert after every item of equal or higher priority.
	i := len(m.queue)
	for i > 0 && m.queue[i-1].priority < p {
		i--
	}
	m.queue = append(m.queue, request{})
	copy(m.queue[i+1:], m.queue[i:])
	m.queue[i] = req
	n := len(m.queue)
	m.mu.Unlock()

	m.log.Debug("queued %s (len=%d): %s", p, n, truncate(text, 60))
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// SayAll queues lines in order at the same priority.
func (m *Mouth) SayAll(p Priority, lines ...string) {
	for _, l := range lines {
		m.Say(l, p)
	}
}

// Interrupt drops everything queued and stops the current line.
func (m *Mouth) Interrupt() {
	m.mu.Lock()
	m.queue = m.queue[:0]
	m.gen++
	m.mu.Unlock()

	m.sink.Stop()
	m.log.Debug("interrupted")
}

// Speaking reports whether a line is playing or waiting to play.
func (m *Mouth) Speaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking || len(m.queue) > 0
}

// Cache returns the audio cache, for stats.
func (m *Mouth) Cache() *AudioCache { return m.cache }

// Start runs the playback loop until ctx is cancelled. Non-blocking.
func (m *Mouth) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				m.log.Debug("mouth stopped")
				return
			case <-m.wake:
				m.drain(ctx)
			}
		}
	}()
}

func (m *Mouth) drain(ctx context.Context) {
	for ctx.Err() == nil {
		req, ok := m.next()
		if !ok {
			return
		}
		m.speak(ctx, req)

		m.mu.Lock()
		m.speaking = false
		m.mu.Unlock()
	}
}

// next pops the head of the queue and marks the mouth busy in one step,
// so Speaking never reports a gap between lines.
func (m *Mouth) next() (request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return request{}, false
	}
	req := m.queue[0]
	m.queue = m.queue[1:]
	m.speaking = true
	return req, true
}

func (m *Mouth) speak(ctx context.Context, req request) {
	m.log.Debug("speaking (waited %s): %s", time.Since(req.queuedAt).Round(time.Millisecond), truncate(req.text, 60))

	audio, err := m.synthesize(ctx, req.text)
	if err != nil {
		m.log.Error("synthesis failed: %v", err)
		return
	}
	if m.stale(req) {
		return
	}
	if err := m.sink.Play(audio); err != nil {
		m.log.Error("playback failed: %v", err)
	}
}

func (m *Mouth) stale(req request) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return req.gen != m.gen
}

func (m *Mouth) synthesize(ctx context.Context, text string) ([]byte, error) {
	if audio, ok := m.cache.Get(text); ok {
		return audio, nil
	}
	audio, err := m.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	m.cache.Put(text, audio)
	return audio, nil
}

// Prefetch synthesizes uncached lines in the background so a later Say
// starts playing immediately.
func (m *Mouth) Prefetch(ctx context.Context, lines ...string) {
	for _, text := range lines {
		if text == "" || m.cache.Has(text) {
			continue
		}
		go func(t string) {
			audio, err := m.tts.Synthesize(ctx, t)
			if err != nil {
				m.log.Warn("prefetch failed: %v", err)
				return
			}
			m.cache.Put(t, audio)
		}(text)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

package speech

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/redchef/internal/logger"
)

// Sink plays WAV audio. Play blocks until playback ends or Stop is called.
type Sink interface {
	Play(wav []byte) error
	Stop()
}

// Compile-time interface check.
var _ Sink = (*Player)(nil)

// Player plays PCM audio through the system device via oto.
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	mu     sync.Mutex
	active *oto.Player
}

// NewPlayer opens the audio device. It fails when no device is available,
// in which case the caller should run without read-aloud.
func NewPlayer(log *logger.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	log.Debug("audio device ready (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{ctx: ctx, log: log}, nil
}

// Play plays WAV data synchronously.
func (p *Player) Play(wav []byte) error {
	pcm, err := extractPCM(wav)
	if err != nil {
		return err
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()
	p.log.Debug("playing %d bytes of PCM", len(pcm))

	tick := time.NewTicker(10 * time.Millisecond)
	for player.IsPlaying() {
		<-tick.C
	}
	tick.Stop()

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()
	return player.Close()
}

// Stop pauses the current playback, which makes Play return. Safe to
// call when idle.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()
	if active != nil {
		active.Pause()
		p.log.Debug("playback interrupted")
	}
}

var (
	errShortWAV  = errors.New("speech: wav data too short")
	errNotWAV    = errors.New("speech: not a RIFF/WAVE file")
	errNoDataWAV = errors.New("speech: wav has no data chunk")
)

// extractPCM walks the RIFF chunks and returns the "data" payload.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, errShortWAV
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errNotWAV
	}

	pos := 12
	for pos+8 <= len(wav) {
		id := string(wav[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		if id == "data" {
			start := pos + 8
			end := min(start+size, len(wav))
			return wav[start:end], nil
		}
		pos += 8 + size
		if size%2 != 0 {
			pos++ // word aligned
		}
	}
	return nil, errNoDataWAV
}

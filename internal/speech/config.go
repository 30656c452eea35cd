package speech

import (
	"os"
	"time"
)

// DefaultVoice is the Azure neural voice used for read-aloud.
// Full list: https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-AndrewNeural"

// DefaultAudioFormat is requested from Azure and understood by the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters matching DefaultAudioFormat.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Env var names for Azure Speech credentials.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

// Config holds the read-aloud settings assembled from flags and env.
type Config struct {
	Key       string
	Region    string
	Voice     string
	CacheDir  string // empty disables the disk cache layer
	DiskWrite bool
}

// ConfigFromEnv reads the Azure credentials from the environment and
// fills the rest with defaults.
func ConfigFromEnv() Config {
	return Config{
		Key:       os.Getenv(EnvAzureSpeechKey),
		Region:    os.Getenv(EnvAzureSpeechRegion),
		Voice:     DefaultVoice,
		CacheDir:  ".redchef-tts",
		DiskWrite: true,
	}
}

// Enabled reports whether credentials are present.
func (c Config) Enabled() bool {
	return c.Key != "" && c.Region != ""
}

// Priority orders queued speech. Higher speaks first.
type Priority int

const (
	PriorityNormal Priority = iota // confirmations, recipe narration
	PriorityUrgent                 // errors, validation
)

func (p Priority) String() string {
	if p == PriorityUrgent {
		return "urgent"
	}
	return "normal"
}

// request is a queued item waiting to be spoken.
type request struct {
	text     string
	priority Priority
	queuedAt time.Time
	gen      uint64 // interrupt generation at enqueue time
}

// RedChef turns the ingredients you have into a recipe.
//
// Usage:
//
//	redchef [-endpoint URL] [-demo] [-verbose] [-quiet] [-voice]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/redchef/internal/conversation"
	"github.com/hammamikhairi/redchef/internal/display"
	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
	"github.com/hammamikhairi/redchef/internal/recipe"
	"github.com/hammamikhairi/redchef/internal/recipeapi"
	"github.com/hammamikhairi/redchef/internal/session"
	"github.com/hammamikhairi/redchef/internal/speech"
)

// EnvEndpoint overrides the recipe service URL when -endpoint is not given.
const EnvEndpoint = "REDCHEF_ENDPOINT"

func main() {
	_ = godotenv.Load()

	endpoint := flag.String("endpoint", "", "recipe service URL (default $"+EnvEndpoint+" or "+recipeapi.DefaultEndpoint+")")
	timeout := flag.Duration("timeout", 60*time.Second, "recipe request timeout")
	demo := flag.Bool("demo", false, "use the built-in recipe book instead of the recipe service")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".redchef-logs/redchef.log", "file to write logs to (use \"stderr\" to log to console)")
	noSpeech := flag.Bool("no-speech", false, "disable read-aloud even if Azure keys are set")
	cacheDir := flag.String("cache-dir", ".redchef-tts", "directory for the persistent TTS audio cache")
	diskCache := flag.Bool("disk-cache", true, "persist TTS audio to disk (reads from disk even when false)")
	voice := flag.Bool("voice", false, "enable voice dictation via local Whisper STT")
	whisperBin := flag.String("whisper-bin", "whisper-cli", "path to the whisper-cpp CLI binary")
	whisperModel := flag.String("whisper-model", "bin/ggml-small.bin", "path to the Whisper GGML model file")
	recordSecs := flag.Int("record-secs", 4, "seconds per dictation recording")
	flag.Parse()

	logOut, closeLog := openLog(*logFile)
	defer closeLog()

	// Third-party libraries (the whisper transcriber) log through the
	// standard package.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logger.LevelFromFlags(*verbose, *quiet), logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newRecipeService(log, *endpoint, *timeout, *demo)

	ctrl := session.New(svc, log.Named("session"),
		session.WithListener(func(s session.Snapshot) {
			log.Debug("state v%d: %s (%d ingredients)", s.Version, s.Status, len(s.Ingredients))
		}),
	)
	ui := display.NewUI(ctrl, ctrl.SetDraft)

	var notifier domain.Notifier = conversation.NewCLINotifier(log.Named("notify"), ui.PrintChat, ui.PrintUrgent)

	var mouth *speech.Mouth
	cfg := speech.ConfigFromEnv()
	cfg.CacheDir = *cacheDir
	cfg.DiskWrite = *diskCache
	switch {
	case *noSpeech:
	case !cfg.Enabled():
		log.Info("read-aloud disabled: set %s and %s to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
	default:
		mouth = newMouth(ctx, cfg, log.Named("speech"))
		if mouth != nil {
			notifier = speech.NewSpeakingNotifier(notifier, mouth)
		}
	}

	var voiceCh <-chan string
	if *voice {
		if _, err := os.Stat(*whisperModel); err != nil {
			fmt.Fprintf(os.Stderr, "error: whisper model not found at %s\n", *whisperModel)
			os.Exit(1)
		}
		opts := []speech.EarOption{
			speech.WithRecordDuration(time.Duration(*recordSecs) * time.Second),
		}
		if mouth != nil {
			opts = append(opts, speech.WithBusy(mouth.Speaking))
		}
		ear := speech.NewEar(*whisperBin, *whisperModel, log.Named("ear"), opts...)
		go ear.Run(ctx)
		voiceCh = ear.C()
	}

	app := &cliApp{
		ctrl:     ctrl,
		parser:   conversation.NewKeywordParser(log.Named("parser")),
		notifier: notifier,
		mouth:    mouth,
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	if *voice {
		fmt.Println(display.BannerStyle.Render("  Voice mode ON: say an ingredient or \"cook\", or type."))
	}
	fmt.Println(display.BannerStyle.Render("  Type an ingredient and press Enter. 'help' for commands, 'quit' to exit."))
	fmt.Println()

	log.Info("session %s started", ctrl.ID())

	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan(), voiceCh)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	app.cooking.Wait()
}

// openLog returns the log destination. Logs go to a file by default so
// the prompt stays clean.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

// newRecipeService picks the remote endpoint or the built-in demo recipe book.
func newRecipeService(log *logger.Logger, endpoint string, timeout time.Duration, demo bool) domain.RecipeService {
	if demo {
		log.Info("demo mode: using the built-in recipe book")
		return recipe.NewMemoryService(log.Named("recipe"), recipe.WithDelay(1200*time.Millisecond))
	}
	if endpoint == "" {
		endpoint = os.Getenv(EnvEndpoint)
	}
	if endpoint == "" {
		endpoint = recipeapi.DefaultEndpoint
	}
	log.Info("recipe service: %s (timeout %s)", endpoint, timeout)
	return recipeapi.NewClient(endpoint, log.Named("recipeapi"), recipeapi.WithHTTPTimeout(timeout))
}

// newMouth starts read-aloud, or returns nil when no audio device is
// available.
func newMouth(ctx context.Context, cfg speech.Config, log *logger.Logger) *speech.Mouth {
	player, err := speech.NewPlayer(log)
	if err != nil {
		log.Error("audio player init failed, read-aloud disabled: %v", err)
		return nil
	}
	tts := speech.NewAzureClient(cfg.Key, cfg.Region, log, speech.WithVoice(cfg.Voice))
	mouth := speech.NewMouth(tts, player, log,
		speech.WithCache(speech.NewAudioCache(tts.Voice(), cfg.CacheDir, cfg.DiskWrite, log)),
	)
	mouth.Start(ctx)
	mouth.Prefetch(ctx, speech.CookingFillers()...)
	log.Info("read-aloud enabled (voice=%s, region=%s)", tts.Voice(), cfg.Region)
	return mouth
}

package main

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
	"github.com/hammamikhairi/redchef/internal/session"
	"github.com/hammamikhairi/redchef/internal/speech"
)

// screen is the part of display.UI the app writes to.
type screen interface {
	Println(a ...interface{})
	PrintHeading(text string)
	PrintInstruction(text string)
	PrintHint(text string)
	PrintVoice(text string)
	PrintIngredients(ingredients []string)
	PrintRecipe(r *domain.Recipe)
	Quit()
}

type cliApp struct {
	ctrl     *session.Controller
	parser   domain.IntentParser
	notifier domain.Notifier
	mouth    *speech.Mouth // nil when read-aloud is disabled
	log      *logger.Logger
	ui       screen

	cooking sync.WaitGroup
}

// run reads typed and dictated lines until ctx ends, input closes, or
// the user quits.
func (a *cliApp) run(ctx context.Context, input <-chan string, voice <-chan string) {
	a.say(ctx, speech.LineWelcome())

	for {
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-input:
			if !ok {
				return
			}
			line = l
		case line = <-voice:
			a.ui.PrintVoice(line)
		}

		if !a.handleLine(ctx, line) {
			return
		}
	}
}

// handleLine parses and executes one input line. It returns false when
// the app should exit.
func (a *cliApp) handleLine(ctx context.Context, line string) bool {
	intent, err := a.parser.Parse(ctx, line)
	if err != nil {
		a.log.Error("parsing input: %v", err)
		return true
	}
	a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)

	// Anything that changes what RedChef would be reading out cuts the
	// current narration short.
	switch intent.Type {
	case domain.IntentCook, domain.IntentClearIngredients, domain.IntentReadAloud, domain.IntentQuit:
		if a.mouth != nil {
			a.mouth.Interrupt()
		}
	}

	switch intent.Type {
	case domain.IntentAddIngredient:
		a.add(ctx, intent.Payload)
	case domain.IntentRemoveIngredient:
		a.remove(ctx, intent.Payload)
	case domain.IntentClearIngredients:
		a.ctrl.ClearIngredients()
		a.say(ctx, speech.LineCleared())
	case domain.IntentListIngredients:
		a.ui.PrintIngredients(a.ctrl.Snapshot().Ingredients)
	case domain.IntentCook:
		a.cook(ctx)
	case domain.IntentShowRecipe:
		a.show(ctx)
	case domain.IntentReadAloud:
		a.readAloud(ctx)
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		a.quit(ctx)
		return false
	}
	return true
}

func (a *cliApp) say(ctx context.Context, text string) {
	if err := a.notifier.Notify(ctx, text); err != nil {
		a.log.Error("notify: %v", err)
	}
}

func (a *cliApp) sayUrgent(ctx context.Context, text string) {
	if err := a.notifier.NotifyUrgent(ctx, text); err != nil {
		a.log.Error("notify: %v", err)
	}
}

func (a *cliApp) add(ctx context.Context, text string) {
	before := len(a.ctrl.Snapshot().Ingredients)
	snap := a.ctrl.AddIngredient(text)
	if len(snap.Ingredients) == before {
		return
	}
	a.say(ctx, speech.LineAdded(snap.Ingredients[len(snap.Ingredients)-1], len(snap.Ingredients)))
}

// remove takes the 1-based position shown by "list".
func (a *cliApp) remove(ctx context.Context, payload string) {
	current := a.ctrl.Snapshot().Ingredients
	n, err := strconv.Atoi(payload)
	if err != nil {
		a.sayUrgent(ctx, speech.LineInvalidIndex(payload, len(current)))
		return
	}

	if _, err := a.ctrl.RemoveIngredient(n - 1); err != nil {
		if errors.Is(err, domain.ErrInvalidIndex) {
			a.sayUrgent(ctx, speech.LineInvalidIndex(payload, len(current)))
			return
		}
		a.log.Error("remove ingredient: %v", err)
		return
	}
	a.say(ctx, speech.LineRemoved(current[n-1]))
}

// cook submits in the background so the prompt stays live; the status
// bar shows the spinner meanwhile.
func (a *cliApp) cook(ctx context.Context) {
	snap := a.ctrl.Snapshot()
	if snap.Loading() {
		a.ui.PrintHint(speech.LineStillCooking())
		return
	}
	if snap.CanSubmit() {
		filler := speech.LineCooking()
		a.ui.PrintHint(filler)
		if a.mouth != nil {
			a.mouth.Say(filler, speech.PriorityNormal)
		}
	}

	a.cooking.Add(1)
	go func() {
		defer a.cooking.Done()
		final, err := a.ctrl.Submit(ctx)
		if errors.Is(err, domain.ErrSubmitInFlight) {
			a.ui.PrintHint(speech.LineStillCooking())
			return
		}
		a.report(ctx, final)
	}()
}

// report announces how a submission settled.
func (a *cliApp) report(ctx context.Context, snap session.Snapshot) {
	switch snap.Status {
	case domain.StatusError:
		a.sayUrgent(ctx, snap.Message)
	case domain.StatusResult:
		a.ui.PrintRecipe(snap.Recipe)
		a.say(ctx, speech.LineRecipeReady(snap.Recipe.Name))
		if a.mouth != nil {
			a.mouth.SayAll(speech.PriorityNormal, speech.RecipeScript(snap.Recipe)...)
		}
	}
}

// show re-prints whatever the last submission produced.
func (a *cliApp) show(ctx context.Context) {
	snap := a.ctrl.Snapshot()
	switch snap.Status {
	case domain.StatusLoading:
		a.ui.PrintHint(speech.LineStillCooking())
	case domain.StatusError:
		a.sayUrgent(ctx, snap.Message)
	case domain.StatusResult:
		a.ui.PrintRecipe(snap.Recipe)
	default:
		a.ui.PrintHint(speech.LineNoRecipe())
	}
}

func (a *cliApp) readAloud(ctx context.Context) {
	if a.mouth == nil {
		a.ui.PrintHint(speech.LineSpeechDisabled())
		return
	}
	snap := a.ctrl.Snapshot()
	if snap.Status != domain.StatusResult {
		a.say(ctx, speech.LineNoRecipe())
		return
	}
	a.mouth.SayAll(speech.PriorityNormal, speech.RecipeScript(snap.Recipe)...)
}

func (a *cliApp) quit(ctx context.Context) {
	a.say(ctx, speech.LineBye())
	if a.mouth != nil {
		// Give TTS a moment to start the goodbye line.
		time.Sleep(300 * time.Millisecond)
	}
	a.ui.Quit()
}

var helpRows = [][2]string{
	{"<ingredient>", "Add an ingredient (e.g. \"2 eggs\")"},
	{"add <text>", "Add text even if it looks like a command"},
	{"rm <n>", "Remove ingredient number n (see list)"},
	{"clear", "Remove every ingredient"},
	{"list / ls", "Show the ingredient list"},
	{"cook / go", "Cook with RedChef"},
	{"recipe / show", "Show the last recipe or error again"},
	{"read / speak", "Read the recipe aloud"},
	{"help / ?", "Show this message"},
	{"quit / exit", "Exit"},
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Commands:")
	for _, row := range helpRows {
		a.ui.PrintInstruction("  " + row[0] + strings.Repeat(" ", max(1, 16-len(row[0]))) + row[1])
	}
}

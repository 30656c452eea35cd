package conversation

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// PrintFunc prints one styled line. display.UI.PrintChat and
// display.UI.PrintUrgent both match it.
type PrintFunc func(text string)

// CLINotifier writes notifications to the terminal.
type CLINotifier struct {
	log      *logger.Logger
	normalFn PrintFunc
	urgentFn PrintFunc
}

// NewCLINotifier creates a terminal notifier. Nil print functions fall
// back to fmt.Println.
func NewCLINotifier(log *logger.Logger, normalFn, urgentFn PrintFunc) *CLINotifier {
	plain := func(text string) { fmt.Println(text) }
	if normalFn == nil {
		normalFn = plain
	}
	if urgentFn == nil {
		urgentFn = plain
	}
	return &CLINotifier{log: log, normalFn: normalFn, urgentFn: urgentFn}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.normalFn(message)
	return nil
}

// NotifyUrgent prints an urgent notification (errors, validation).
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.urgentFn(message)
	return nil
}

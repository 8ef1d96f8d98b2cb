package conversation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes, only written when WithANSI is set.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// NotifierOption configures a CLINotifier.
type NotifierOption func(*CLINotifier)

// WithWriter sends plain output to w instead of stdout.
func WithWriter(w io.Writer) NotifierOption {
	return func(n *CLINotifier) { n.w = w }
}

// WithANSI colours notices written to the writer.
func WithANSI() NotifierOption {
	return func(n *CLINotifier) { n.ansi = true }
}

// WithOutput hands notices to normal and urgent instead of the writer.
// The TUI uses this to render them in its own styles.
func WithOutput(normal, urgent func(string)) NotifierOption {
	return func(n *CLINotifier) {
		n.normal = normal
		n.urgent = urgent
	}
}

// CLINotifier shows delivery notices to the customer.
type CLINotifier struct {
	log    *logger.Logger
	w      io.Writer
	ansi   bool
	normal func(string)
	urgent func(string)
}

// NewCLINotifier creates a notifier that writes plain lines to stdout
// unless configured otherwise.
func NewCLINotifier(log *logger.Logger, opts ...NotifierOption) *CLINotifier {
	n := &CLINotifier{log: log, w: os.Stdout}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Notify shows a normal notice.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	if n.normal != nil {
		n.normal(message)
		return nil
	}
	return n.write(cyan, message)
}

// NotifyUrgent shows an urgent notice, bold red when colour is on.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	if n.urgent != nil {
		n.urgent(message)
		return nil
	}
	return n.write(red, message)
}

func (n *CLINotifier) write(colour, message string) error {
	var err error
	if n.ansi {
		_, err = fmt.Fprintf(n.w, "%s%s%s%s\n", colour, bold, message, reset)
	} else {
		_, err = fmt.Fprintln(n.w, message)
	}
	if err != nil {
		return fmt.Errorf("notifier: %w", err)
	}
	return nil
}

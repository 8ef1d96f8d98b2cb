package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/crunchyorder/internal/conversation"
	"github.com/hammamikhairi/crunchyorder/internal/delivery"
	"github.com/hammamikhairi/crunchyorder/internal/dialog"
	"github.com/hammamikhairi/crunchyorder/internal/display"
	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// output renders dialog lines on one front end.
type output interface {
	show(l dialog.Line)
	setCart(units, total int)
}

type cliApp struct {
	machine   *dialog.Machine
	scheduler *delivery.Scheduler
	out       output
	track     bool
	log       *logger.Logger
}

// run feeds input lines to the machine until it checks out, ctx is done
// or input ends. End of input checks out like "exit".
func (a *cliApp) run(ctx context.Context, inputs <-chan string) {
	a.showAll(a.machine.Greeting())

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-inputs:
			if !ok {
				a.log.Info("input closed, checking out")
				input = "exit"
			}
		}

		reply := a.machine.Handle(ctx, input)
		a.showAll(reply.Lines)
		a.out.setCart(a.machine.Cart().Units(), a.machine.Total())

		if reply.Done {
			a.afterCheckout(ctx, reply, inputs)
			return
		}
	}
}

// afterCheckout waits for deliveries when tracking is on. Typing "ok"
// meanwhile silences the ones that have arrived.
func (a *cliApp) afterCheckout(ctx context.Context, reply dialog.Reply, inputs <-chan string) {
	if !a.track || reply.Checkout == nil || len(reply.Checkout.Placed) == 0 {
		return
	}
	a.out.show(dialog.Line{Kind: dialog.KindSay, Text: conversation.LineTracking(len(reply.Checkout.Placed))})

	done := make(chan error, 1)
	go func() { done <- a.scheduler.Wait(ctx) }()

	for {
		select {
		case err := <-done:
			if err != nil {
				a.log.Info("stopped tracking: %v", err)
			}
			return
		case input, ok := <-inputs:
			if !ok {
				inputs = nil // Keep waiting without input.
				continue
			}
			if conversation.Normalize(input) == "ok" {
				n := a.acknowledgeDue(ctx)
				a.out.show(dialog.Line{Kind: dialog.KindSay, Text: conversation.LineAcknowledged(n)})
			}
		}
	}
}

// acknowledgeDue silences every delivery that has arrived.
func (a *cliApp) acknowledgeDue(ctx context.Context) int {
	list, err := a.scheduler.Pending(ctx)
	if err != nil {
		a.log.Error("listing deliveries: %v", err)
		return 0
	}
	n := 0
	for _, d := range list {
		if d.Status != domain.DeliveryDue {
			continue
		}
		if err := a.scheduler.Acknowledge(ctx, d.Order.OrderID); err != nil {
			a.log.Error("acknowledging %s: %v", d.Order.OrderID, err)
			continue
		}
		n++
	}
	return n
}

func (a *cliApp) showAll(lines []dialog.Line) {
	for _, l := range lines {
		a.out.show(l)
	}
}

// openLogFile opens path for appending, creating its directory first.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create log dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	return f, nil
}

// readLines streams r line by line. The channel closes at EOF.
func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

// ── Front ends ───────────────────────────────────────────────────

type plainOut struct{}

func (plainOut) show(l dialog.Line) {
	switch l.Kind {
	case dialog.KindWarn:
		fmt.Println("! " + l.Text)
	default:
		fmt.Println(l.Text)
	}
}

func (plainOut) setCart(int, int) {}

type tuiOut struct {
	ui *display.UI
}

func (t tuiOut) show(l dialog.Line) {
	switch l.Kind {
	case dialog.KindReceipt:
		t.ui.PrintReceipt(l.Text)
	case dialog.KindWarn:
		t.ui.PrintUrgent(l.Text)
	default:
		t.ui.PrintChat(l.Text)
	}
}

func (t tuiOut) setCart(units, total int) { t.ui.SetCart(units, total) }

// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar (cart and deliveries)
// and an input prompt at the bottom of the terminal. All application
// output is printed above the rendered area via Program.Println / Printf,
// ensuring concurrent writes never garble the display.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	etaRunStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	etaDueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	cartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// ── Output styles (soft palette) ──

	// BannerStyle: muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Chat: soft sky blue for assistant lines.
	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// Receipt: light zinc for the order summary.
	receiptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text: dimmed zinc for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Urgent: soft coral for errors/alerts.
	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// prompt is kept plain so the textinput width math stays correct.
const prompt = "order> "

// ── UI ───────────────────────────────────────────────────────────

// DeliveryLister reports deliveries still pending or due.
// *delivery.Scheduler satisfies it.
type DeliveryLister interface {
	Pending(ctx context.Context) ([]domain.Delivery, error)
}

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking).  Other goroutines may
// safely call [UI.Println], [UI.Printf], [UI.SetCart] and read from
// [UI.InputChan] at any time after [UI.WaitReady] returns.
type UI struct {
	program    *tea.Program
	inputCh    chan string
	readyCh    chan struct{}
	deliveries DeliveryLister
	done       atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(deliveries DeliveryLister) *UI {
	return &UI{
		deliveries: deliveries,
		inputCh:    make(chan string, 16),
		readyCh:    make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
// The output is printed on its own line.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// SetCart updates the cart summary in the status bar. Thread-safe.
func (u *UI) SetCart(units, total int) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(cartMsg{units: units, total: total})
	}
}

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a conversational assistant line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintReceipt prints one row of the order summary.
func (u *UI) PrintReceipt(text string) {
	u.Println(receiptStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed line into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("order") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the Bubble Tea event loop.  Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := newModel(u.deliveries, ti, u.inputCh, u.readyCh, u.PrintUserInput)

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	deliveries DeliveryLister
	input      textinput.Model
	inputCh    chan<- string
	readyCh    chan struct{}
	echoFn     func(string) // prints user input into scrollback
	etas       []etaInfo
	units      int
	total      int
	width      int
}

type etaInfo struct {
	label     string
	remaining time.Duration
	due       bool
}

// Messages.
type (
	tickMsg time.Time
	cartMsg struct{ units, total int }
)

func newModel(deliveries DeliveryLister, ti textinput.Model, inputCh chan<- string, readyCh chan struct{}, echo func(string)) model {
	return model{
		deliveries: deliveries,
		input:      ti,
		inputCh:    inputCh,
		readyCh:    readyCh,
		echoFn:     echo,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so it runs outside Update.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case cartMsg:
		m.units, m.total = msg.units, msg.total
		return m, nil

	case tickMsg:
		m.refreshDeliveries()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) refreshDeliveries() {
	if m.deliveries == nil {
		return
	}
	list, err := m.deliveries.Pending(context.Background())
	if err != nil {
		return
	}
	// The lister already orders by schedule time, so the bar doesn't shuffle.
	m.etas = m.etas[:0]
	for _, d := range list {
		m.etas = append(m.etas, etaInfo{
			label:     d.ItemName,
			remaining: d.Remaining,
			due:       d.Status == domain.DeliveryDue,
		})
	}
}

func (m model) titleStr() string {
	if len(m.etas) == 0 {
		return "Crunchy"
	}
	var p []string
	for _, e := range m.etas {
		if e.due {
			p = append(p, e.label+": arrived")
		} else {
			p = append(p, e.label+": "+fmtDuration(e.remaining))
		}
	}
	return "Crunchy | " + strings.Join(p, " | ")
}

func (m model) View() string {
	var b strings.Builder

	if m.units > 0 || len(m.etas) > 0 {
		b.WriteString(m.renderBar())
		b.WriteByte('\n')
	}

	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	var parts []string
	if m.units > 0 {
		parts = append(parts, labelStyle.Render("cart: ")+
			cartStyle.Render(fmt.Sprintf("%d item(s), ₹%d", m.units, m.total)))
	}
	for _, e := range m.etas {
		if e.due {
			parts = append(parts, etaDueStyle.Render(e.label+": arrived"))
		} else {
			parts = append(parts,
				labelStyle.Render(e.label+": ")+
					etaRunStyle.Render(fmtDuration(e.remaining)))
		}
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}

// ── Helpers ──────────────────────────────────────────────────────

func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

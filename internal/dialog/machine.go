// Package dialog implements the ordering conversation state machine.
package dialog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hammamikhairi/crunchyorder/internal/cart"
	"github.com/hammamikhairi/crunchyorder/internal/catalog"
	"github.com/hammamikhairi/crunchyorder/internal/checkout"
	"github.com/hammamikhairi/crunchyorder/internal/conversation"
	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/extract"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
	"github.com/hammamikhairi/crunchyorder/internal/metrics"
)

// State is the machine's position in the conversation.
type State int

const (
	StateAwaitingFlow State = iota
	StateAwaitingPizzaCategory
	StateAwaitingItems
	StateAwaitingQuantity
	StateCheckout
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateAwaitingFlow:
		return "awaiting_flow"
	case StateAwaitingPizzaCategory:
		return "awaiting_pizza_category"
	case StateAwaitingItems:
		return "awaiting_items"
	case StateAwaitingQuantity:
		return "awaiting_quantity"
	case StateCheckout:
		return "checkout"
	default:
		return "unknown"
	}
}

// LineKind tells a front end how to present a line.
type LineKind int

const (
	KindSay LineKind = iota
	KindReceipt
	KindWarn
)

// Line is one row of output.
type Line struct {
	Kind LineKind
	Text string
}

// Reply is what one turn produced.
type Reply struct {
	Lines []Line
	// Done is set once the machine has checked out.
	Done bool
	// Checkout is set on the turn that checked out a non-empty cart.
	Checkout *checkout.Result
}

// Checkouter places the cart's orders.
type Checkouter interface {
	Checkout(ctx context.Context, c *cart.Cart) checkout.Result
}

// Compile-time interface check.
var _ Checkouter = (*checkout.Coordinator)(nil)

// Option configures the machine.
type Option func(*Machine)

// WithMetrics records the running cart value.
func WithMetrics(m *metrics.Metrics) Option {
	return func(mc *Machine) {
		mc.metrics = m
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(mc *Machine) {
		mc.sessionID = id
	}
}

// Machine drives one ordering conversation. It is single-actor: Handle
// must not be called concurrently.
type Machine struct {
	index     *catalog.Index
	groups    catalog.Groups
	extractor extract.TextExtractor
	keywords  *conversation.KeywordClassifier
	checkout  Checkouter
	log       *logger.Logger
	metrics   *metrics.Metrics
	sessionID string

	cart   *cart.Cart
	state  State
	dialog domain.DialogState

	// Clarification: intents of the current turn and the one being asked about.
	pending domain.Intents
	asking  int
}

// New creates a machine with an empty cart, awaiting a menu section.
func New(index *catalog.Index, groups catalog.Groups, extractor extract.TextExtractor, co Checkouter, log *logger.Logger, opts ...Option) *Machine {
	m := &Machine{
		index:     index,
		groups:    groups.WithDefaults(),
		extractor: extractor,
		keywords:  conversation.NewKeywordClassifier(),
		checkout:  co,
		log:       log,
		cart:      cart.New(),
		state:     StateAwaitingFlow,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sessionID == "" {
		m.sessionID = generateID()
	}
	m.log.Info("session %s started", m.sessionID)
	return m
}

// SessionID returns the identifier of this conversation.
func (m *Machine) SessionID() string { return m.sessionID }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Dialog returns the current (flow, category) selection.
func (m *Machine) Dialog() domain.DialogState { return m.dialog }

// Cart returns the running cart. Callers must not mutate it.
func (m *Machine) Cart() *cart.Cart { return m.cart }

// Total returns the running cart total.
func (m *Machine) Total() int { return m.cart.Total(m.index) }

// Greeting returns the lines shown before the first input.
func (m *Machine) Greeting() []Line {
	return []Line{say(conversation.LineWelcome()), say(conversation.LineChooseFlow())}
}

// Handle processes one line of user input.
func (m *Machine) Handle(ctx context.Context, input string) Reply {
	if m.state == StateCheckout {
		return Reply{Done: true}
	}

	text := conversation.Normalize(input)
	m.log.Debug("session %s: state=%s input=%q", m.sessionID, m.state, text)

	if m.keywords.IsExit(text) {
		return m.finish(ctx)
	}

	switch m.state {
	case StateAwaitingFlow:
		return m.handleFlow(text)
	case StateAwaitingPizzaCategory:
		return m.handleCategory(text)
	case StateAwaitingItems:
		return m.handleItems(ctx, text)
	case StateAwaitingQuantity:
		return m.handleQuantity(text)
	default:
		m.log.Error("session %s: unexpected state %s", m.sessionID, m.state)
		return reply(say(conversation.LineChooseFlow()))
	}
}

func (m *Machine) handleFlow(text string) Reply {
	flow := m.keywords.Flow(text)
	switch flow {
	case domain.FlowNone:
		return reply(say(conversation.LinePleaseChooseCategory()))
	case domain.FlowPizza:
		m.dialog = domain.DialogState{Flow: flow}
		m.transition(StateAwaitingPizzaCategory)
		return reply(say(conversation.LineVegOrNonVeg()))
	default:
		m.dialog = domain.DialogState{Flow: flow}
		m.transition(StateAwaitingItems)
		names := m.index.Names(m.groups.Candidates(m.dialog))
		return reply(say(conversation.LineAvailable(names)))
	}
}

func (m *Machine) handleCategory(text string) Reply {
	cat := m.keywords.Category(text)
	if cat == domain.CategoryNone {
		return reply(say(conversation.LineVegOrNonVeg()))
	}
	m.dialog.Category = cat
	m.transition(StateAwaitingItems)
	names := m.index.Names(m.groups.Candidates(m.dialog))
	return reply(say(conversation.LineChoose(names)))
}

func (m *Machine) handleItems(ctx context.Context, text string) Reply {
	candidates := m.groups.Candidates(m.dialog)
	intents := m.extractor.Extract(ctx, text, candidates)
	if len(intents) == 0 {
		return reply(say(conversation.LineInvalidItems()))
	}
	m.log.Debug("session %s: extracted %v", m.sessionID, intents)

	if open := intents.Unresolved(); len(open) > 0 {
		m.pending = append(domain.Intents(nil), intents...)
		m.asking = open[0]
		m.transition(StateAwaitingQuantity)
		return reply(say(conversation.LineHowMany(m.index.Name(intents[m.asking].ItemID))))
	}
	return m.commit(intents)
}

// parseQuantity accepts a positive whole number.
func parseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("dialog: quantity %q: %w", text, domain.ErrBadQuantity)
	}
	return n, nil
}

func (m *Machine) handleQuantity(text string) Reply {
	name := m.index.Name(m.pending[m.asking].ItemID)

	n, err := parseQuantity(text)
	if err != nil {
		m.log.Debug("session %s: %s: %v", m.sessionID, name, err)
		return reply(say(conversation.LineNotANumber(name)))
	}
	m.pending[m.asking].Quantity = n

	if open := m.pending.Unresolved(); len(open) > 0 {
		m.asking = open[0]
		return reply(say(conversation.LineHowMany(m.index.Name(m.pending[m.asking].ItemID))))
	}
	return m.commit(m.pending)
}

// commit merges a fully resolved turn into the cart and loops back.
func (m *Machine) commit(intents domain.Intents) Reply {
	m.cart.Merge(intents)
	total := m.cart.Total(m.index)
	m.metrics.SetCartValue(total)
	m.log.Info("session %s: cart now %d item(s), total %d", m.sessionID, m.cart.Len(), total)

	m.reset()
	return reply(say(conversation.LineCurrentTotal(total)), say(conversation.LineAnythingElse()))
}

// finish checks out. Pending selections and clarifications are dropped.
func (m *Machine) finish(ctx context.Context) Reply {
	if len(m.pending) > 0 {
		m.log.Info("session %s: discarding %d unresolved intent(s)", m.sessionID, len(m.pending))
	}
	m.reset()
	m.transition(StateCheckout)

	if m.cart.Empty() {
		return Reply{Lines: []Line{say(conversation.LineBye())}, Done: true}
	}

	lines := make([]Line, 0, 16)
	res := m.checkout.Checkout(ctx, m.cart)
	for _, row := range conversation.LineReceipt(res.Receipt.Lines, res.Receipt.Total) {
		lines = append(lines, Line{Kind: KindReceipt, Text: row})
	}
	lines = append(lines, say(conversation.LinePlacingOrders()))
	if res.Failed > 0 {
		lines = append(lines, Line{Kind: KindWarn, Text: conversation.LineFailedOrders(res.Failed)})
	}
	if res.HasETA() {
		lines = append(lines, say(conversation.LineEstimatedDelivery(res.MaxETA)))
	}
	lines = append(lines, say(conversation.LineBye()))

	m.log.Info("session %s: checked out, %d placed, %d failed", m.sessionID, len(res.Placed), res.Failed)
	return Reply{Lines: lines, Done: true, Checkout: &res}
}

func (m *Machine) reset() {
	m.dialog = domain.DialogState{}
	m.pending = nil
	m.asking = 0
	if m.state != StateCheckout {
		m.transition(StateAwaitingFlow)
	}
}

func (m *Machine) transition(to State) {
	if m.state == to {
		return
	}
	m.log.Debug("session %s: %s -> %s", m.sessionID, m.state, to)
	m.state = to
}

func say(text string) Line { return Line{Kind: KindSay, Text: text} }

func reply(lines ...Line) Reply { return Reply{Lines: lines} }

package chat

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/kochabx/dashkit/core/breaker"
	"github.com/kochabx/dashkit/errors"
	"github.com/kochabx/dashkit/log"
	"github.com/kochabx/dashkit/transport"
)

var _ transport.Server = (*Poller)(nil)

// Handler receives each new message, oldest first
type Handler func(ctx context.Context, chatID int64, msg Message)

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithChats watches these chat ids
func WithChats(ids ...int64) PollerOption {
	return func(p *Poller) {
		p.chatIDs = append(p.chatIDs, ids...)
	}
}

// WithLocation also watches every chat listed for the location
func WithLocation(locationID string) PollerOption {
	return func(p *Poller) {
		p.locationID = locationID
	}
}

// WithSync toggles the provider sync before each poll
func WithSync(enabled bool) PollerOption {
	return func(p *Poller) {
		p.sync = enabled
	}
}

// WithBackfill delivers the history found on the first poll of a chat
// instead of only marking it seen
func WithBackfill(enabled bool) PollerOption {
	return func(p *Poller) {
		p.backfill = enabled
	}
}

func WithHandler(h Handler) PollerOption {
	return func(p *Poller) {
		if h != nil {
			p.handler = h
		}
	}
}

// WithBreaker skips polls while b is open. Polls that hit a transport
// failure count against it.
func WithBreaker(b *breaker.Breaker) PollerOption {
	return func(p *Poller) {
		p.breaker = b
	}
}

func WithPollerLogger(logger *log.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Poller checks chats on a cron schedule and hands new messages to a handler
type Poller struct {
	service    *Service
	spec       string
	chatIDs    []int64
	locationID string
	sync       bool
	backfill   bool
	handler    Handler
	breaker    *breaker.Breaker
	logger     *log.Logger
	cron       *cron.Cron

	mu   sync.Mutex
	seen map[int64]map[string]struct{}

	ctx     context.Context
	cancel  context.CancelFunc
	stateMu sync.Mutex
	stopped bool
}

// NewPoller validates spec and builds a stopped poller
func NewPoller(service *Service, spec string, opts ...PollerOption) (*Poller, error) {
	p := &Poller{
		service: service,
		spec:    spec,
		sync:    true,
		logger:  log.G,
		seen:    make(map[int64]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.handler == nil {
		p.handler = p.logMessage
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())

	cl := cronLogger{logger: p.logger}
	p.cron = cron.New(
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := p.cron.AddFunc(spec, func() { p.Poll(p.ctx) }); err != nil {
		return nil, fmt.Errorf("invalid chat poll schedule %q: %w", spec, err)
	}
	return p, nil
}

// Run starts the schedule and blocks until Shutdown
func (p *Poller) Run() error {
	p.stateMu.Lock()
	if p.stopped {
		p.stateMu.Unlock()
		return nil
	}
	p.cron.Start()
	p.stateMu.Unlock()

	p.logger.Info().Str("spec", p.spec).Ints64("chats", p.chatIDs).Str("location", p.locationID).Msg("chat poller started")
	<-p.ctx.Done()
	return nil
}

// Shutdown stops the schedule and waits for a running poll. When ctx expires
// first the poll is abandoned.
func (p *Poller) Shutdown(ctx context.Context) error {
	p.stateMu.Lock()
	p.stopped = true
	p.stateMu.Unlock()

	done := p.cron.Stop().Done()
	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

// Poll runs one check synchronously. Every poll the breaker allows records
// exactly one outcome; a poll cut short by ctx counts as a failure.
func (p *Poller) Poll(ctx context.Context) {
	if !p.breaker.Allow() {
		p.logger.Debug().Msg("chat backend unavailable, poll skipped")
		return
	}

	var unreachable bool
	check := func(err error) {
		if errors.IsTransport(err) {
			unreachable = true
		}
	}

	if p.sync {
		if err := p.service.Sync(ctx); err != nil {
			check(err)
			p.logger.Warn().Err(err).Msg("chat sync failed")
		}
	}

	for _, id := range p.targets(ctx, check) {
		if ctx.Err() != nil {
			break
		}
		msgs, err := p.service.Messages(ctx, id)
		if err != nil {
			check(err)
			p.logger.Warn().Err(err).Int64("chat_id", id).Msg("chat messages failed")
			continue
		}
		for _, msg := range p.fresh(id, msgs) {
			p.deliver(ctx, id, msg)
		}
	}

	if ctx.Err() != nil {
		unreachable = true
	}
	if unreachable {
		p.breaker.Failure()
		if p.breaker.State() == breaker.StateOpen {
			p.logger.Warn().Any("breaker", p.breaker.Stats()).Msg("chat backend unreachable, pausing polls")
		}
		return
	}
	p.breaker.Success()
}

func (p *Poller) targets(ctx context.Context, check func(error)) []int64 {
	ids := slices.Clone(p.chatIDs)
	if p.locationID == "" {
		return ids
	}

	chats, err := p.service.Chats(ctx, p.locationID)
	if err != nil {
		check(err)
		p.logger.Warn().Err(err).Str("location", p.locationID).Msg("chat list failed")
		return ids
	}
	for _, c := range chats {
		if !slices.Contains(ids, c.ChatID) {
			ids = append(ids, c.ChatID)
		}
	}
	return ids
}

// fresh returns the messages missing from the previous poll of the chat,
// oldest first, and remembers the current set
func (p *Poller) fresh(chatID int64, newestFirst []Message) []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev, known := p.seen[chatID]
	current := make(map[string]struct{}, len(newestFirst))
	var out []Message
	for i := len(newestFirst) - 1; i >= 0; i-- {
		msg := newestFirst[i]
		current[msg.MessageID] = struct{}{}
		if _, ok := prev[msg.MessageID]; ok {
			continue
		}
		if known || p.backfill {
			out = append(out, msg)
		}
	}
	p.seen[chatID] = current
	return out
}

func (p *Poller) deliver(ctx context.Context, chatID int64, msg Message) {
	p.handler(ctx, chatID, msg)
	if msg.Inbound {
		p.service.client.Notifier().Info(fmt.Sprintf("New message in chat %d", chatID))
	}
}

func (p *Poller) logMessage(_ context.Context, chatID int64, msg Message) {
	p.logger.Info().
		Int64("chat_id", chatID).
		Str("message_id", msg.MessageID).
		Bool("inbound", msg.Inbound).
		Str("manager", msg.ManagerName).
		Time("date", msg.Date).
		Msg(msg.Text)
}

// cronLogger routes cron's own logging through zerolog
type cronLogger struct {
	logger *log.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/tictac-client/internal/msgcat"
	"github.com/kapu/tictac-client/internal/obslog"
	"github.com/kapu/tictac-client/internal/transport"
	"github.com/kapu/tictac-client/internal/wire"
)

// Recorder persists a finished match. Attached optionally; recording runs
// off the event loop and never blocks dispatch.
type Recorder interface {
	RecordResult(ctx context.Context, rec MatchRecord) error
}

// ProfileSaver persists autofill convenience state across client runs.
// Attached optionally; saves run off the event loop and never block
// dispatch.
type ProfileSaver interface {
	SaveAccounts(ctx context.Context, entries []wire.AccountEntry) error
	SaveLastRoom(ctx context.Context, room string) error
}

// MatchRecord is everything the archive needs about one concluded match.
type MatchRecord struct {
	ClientID  string
	Room      string
	LocalRole Role
	Observer  bool
	Outcome   string
	Moves     []MoveRecord
	StartedAt time.Time
	Duration  time.Duration
}

// Core owns the session state machine, the projections, and the protocol
// dispatch. It is not safe for concurrent use: every entry point must be
// called from one goroutine. Loop provides that serialization.
type Core struct {
	ui  UI
	out transport.Sender
	cat *msgcat.Catalog

	clientID string

	phase     Phase
	roomName  string
	localRole Role
	localTurn bool
	observer  bool

	board    Board
	chat     ChatLog
	accounts *AccountCache

	// set after GameResult; freezes the board until teardown or a new game
	resultShown bool
	matchStart  time.Time
	moves       []MoveRecord

	timer    *matchTimer
	post     func(func()) // marshals timer ticks onto the event loop
	recorder Recorder
	profile  ProfileSaver

	handlers map[int]handler
}

type Option func(*Core)

func WithClientID(id string) Option {
	return func(c *Core) { c.clientID = id }
}

func WithRecorder(r Recorder) Option {
	return func(c *Core) { c.recorder = r }
}

func WithProfile(p ProfileSaver) Option {
	return func(c *Core) { c.profile = p }
}

func New(ui UI, out transport.Sender, cat *msgcat.Catalog, opts ...Option) *Core {
	if ui == nil {
		ui = NopUI{}
	}
	c := &Core{
		ui:       ui,
		out:      out,
		cat:      cat,
		phase:    PhaseLogin,
		accounts: NewAccountCache(),
	}
	c.handlers = inboundHandlers()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPost installs the function used to marshal asynchronous work (the
// match clock) onto the session event loop. Without it the clock stays off.
func (c *Core) SetPost(post func(func())) { c.post = post }

func (c *Core) Phase() Phase        { return c.phase }
func (c *Core) RoomName() string    { return c.roomName }
func (c *Core) LocalRole() Role     { return c.localRole }
func (c *Core) LocalTurn() bool     { return c.localTurn }
func (c *Core) Observer() bool      { return c.observer }
func (c *Core) Board() *Board       { return &c.board }
func (c *Core) Chat() *ChatLog      { return &c.chat }
func (c *Core) Accounts() *AccountCache { return c.accounts }

// Snapshot copies the current session view. Must run on the event loop like
// every other entry point.
func (c *Core) Snapshot() Snapshot {
	return Snapshot{
		ClientID:   c.clientID,
		Phase:      c.phase,
		RoomName:   c.roomName,
		LocalRole:  c.localRole,
		LocalTurn:  c.localTurn,
		Observer:   c.observer,
		Board:      c.board.Cells(),
		Chat:       c.chat.Entries(),
		Accounts:   c.accounts.Names(),
		MatchStart: c.matchStart,
	}
}

func (c *Core) send(raw string) {
	if c.out == nil {
		return
	}
	if err := c.out.Send(raw, transport.ReliableOrdered); err != nil {
		obslog.L().Warn("send_failed", zap.String("raw", raw), zap.Error(err))
	}
}

// text renders a catalog key, falling back to the key itself so a missing
// template never hides a state transition.
func (c *Core) text(key string, data map[string]any) string {
	if c.cat == nil {
		return key
	}
	s, err := c.cat.Render(key, data)
	if err != nil {
		obslog.L().Warn("msgcat_render_failed", zap.String("key", key), zap.Error(err))
		return key
	}
	return s
}

func (c *Core) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	c.phase = p
	c.ui.PhaseChanged(p)
}

func (c *Core) emitTurn() {
	c.ui.TurnChanged(c.localTurn, c.observer)
}

// accountDisplayList is the selectable account list with the synthetic
// "none selected" sentinel at index 0.
func (c *Core) accountDisplayList() []string {
	names := c.accounts.Names()
	out := make([]string, 0, len(names)+1)
	out = append(out, c.text("account.none_selected", nil))
	return append(out, names...)
}

// AutofillFor resolves a display-list selection into login field values.
// The sentinel (or an unknown name) clears both fields.
func (c *Core) AutofillFor(selection string) (username, password string) {
	if selection == "" || selection == c.text("account.none_selected", nil) {
		return "", ""
	}
	p, ok := c.accounts.Password(selection)
	if !ok {
		return "", ""
	}
	return selection, p
}

// resetRoomState clears everything scoped to one room occupancy.
func (c *Core) resetRoomState() {
	c.stopMatchClock()
	c.roomName = ""
	c.localRole = ""
	c.localTurn = false
	c.observer = false
	c.resultShown = false
	c.matchStart = time.Time{}
	c.moves = nil
	c.board.Reset()
	c.chat.Reset()
}

// leaveRoom tears the room down and returns to the lobby.
func (c *Core) leaveRoom() {
	c.resetRoomState()
	c.setPhase(PhaseRoomWaiting)
	c.emitTurn()
}

func (c *Core) startMatchClock() {
	c.stopMatchClock()
	if c.post == nil {
		return
	}
	c.matchStart = time.Now()
	start := c.matchStart
	c.timer = newMatchTimer(time.Second, func(now time.Time) {
		c.post(func() { c.ui.MatchClock(now.Sub(start)) })
	})
}

func (c *Core) stopMatchClock() {
	if c.timer != nil {
		c.timer.stop()
		c.timer = nil
	}
}

// SeedAccounts preloads the account cache from a persisted profile before
// the first server AccountList arrives. The server list replaces it.
func (c *Core) SeedAccounts(entries []wire.AccountEntry) {
	if len(entries) == 0 {
		return
	}
	c.accounts.Replace(entries)
	c.ui.AccountListChanged(c.accountDisplayList())
}

func (c *Core) saveProfileAccounts() {
	if c.profile == nil {
		return
	}
	entries := c.accounts.Entries()
	p := c.profile
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.SaveAccounts(ctx, entries); err != nil {
			obslog.L().Warn("profile_save_accounts_failed", zap.Error(err))
		}
	}()
}

func (c *Core) saveLastRoom(room string) {
	if c.profile == nil {
		return
	}
	p := c.profile
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.SaveLastRoom(ctx, room); err != nil {
			obslog.L().Warn("profile_save_room_failed", zap.Error(err))
		}
	}()
}

func (c *Core) recordResult(outcome string) {
	if c.recorder == nil {
		return
	}
	rec := MatchRecord{
		ClientID:  c.clientID,
		Room:      c.roomName,
		LocalRole: c.localRole,
		Observer:  c.observer,
		Outcome:   outcome,
		Moves:     append([]MoveRecord(nil), c.moves...),
		StartedAt: c.matchStart,
	}
	if !c.matchStart.IsZero() {
		rec.Duration = time.Since(c.matchStart)
	}
	r := c.recorder
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.RecordResult(ctx, rec); err != nil {
			obslog.L().Warn("archive_record_failed", zap.String("room", rec.Room), zap.Error(err))
		}
	}()
}

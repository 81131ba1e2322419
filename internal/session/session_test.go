package session

import (
	"testing"
	"time"

	"github.com/kapu/tictac-client/internal/msgcat"
	"github.com/kapu/tictac-client/internal/transport"
)

// fakeUI records every render intent in arrival order.
type fakeUI struct {
	phases       []Phase
	cellWrites   []cellWrite
	chat         []ChatEntry
	feedback     []string
	roomStatus   []string
	accountLists [][]string
	turns        []turnChange
	results      []string
}

type cellWrite struct {
	x, y int
	cell Cell
}

type turnChange struct {
	localTurn, observer bool
}

func (u *fakeUI) PhaseChanged(p Phase)            { u.phases = append(u.phases, p) }
func (u *fakeUI) BoardCellChanged(x, y int, c Cell) {
	u.cellWrites = append(u.cellWrites, cellWrite{x, y, c})
}
func (u *fakeUI) ChatAppended(e ChatEntry)      { u.chat = append(u.chat, e) }
func (u *fakeUI) Feedback(t string)             { u.feedback = append(u.feedback, t) }
func (u *fakeUI) RoomStatusChanged(t string)    { u.roomStatus = append(u.roomStatus, t) }
func (u *fakeUI) AccountListChanged(e []string) { u.accountLists = append(u.accountLists, e) }
func (u *fakeUI) TurnChanged(lt, ob bool)       { u.turns = append(u.turns, turnChange{lt, ob}) }
func (u *fakeUI) MatchClock(time.Duration)      {}
func (u *fakeUI) Result(o string)               { u.results = append(u.results, o) }

func (u *fakeUI) lastRoomStatus() string {
	if len(u.roomStatus) == 0 {
		return ""
	}
	return u.roomStatus[len(u.roomStatus)-1]
}

// fakeSender records outbound frames.
type fakeSender struct {
	sent []string
}

func (s *fakeSender) Send(raw string, mode transport.DeliveryMode) error {
	if mode != transport.ReliableOrdered {
		panic("unexpected delivery mode: " + string(mode))
	}
	s.sent = append(s.sent, raw)
	return nil
}

func (s *fakeSender) last() string {
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1]
}

func newTestCore(t *testing.T) (*Core, *fakeUI, *fakeSender) {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	ui := &fakeUI{}
	out := &fakeSender{}
	return New(ui, out, cat), ui, out
}

// loginAndJoin drives the core into a room, ready for StartGame.
func loginAndJoin(t *testing.T, c *Core, room string) {
	t.Helper()
	c.HandleRaw("3") // LoginSuccessful
	if c.Phase() != PhaseRoomWaiting {
		t.Fatalf("expected ROOM_WAITING after login, got %s", c.Phase())
	}
	c.SubmitJoinOrCreateRoom(room)
}

// startMatch brings a participant into a playing match.
func startMatch(t *testing.T, c *Core, room, role, turn string) {
	t.Helper()
	loginAndJoin(t, c, room)
	c.HandleRaw("9," + room + "," + role + "," + turn)
	if c.Phase() != PhaseRoomPlaying {
		t.Fatalf("expected ROOM_PLAYING, got %s", c.Phase())
	}
}

package session

import "time"

// UI receives render intents from the core. The widget layer behind it is an
// external collaborator; implementations must be cheap and non-blocking
// since they run on the session event loop.
type UI interface {
	PhaseChanged(phase Phase)
	BoardCellChanged(x, y int, cell Cell)
	ChatAppended(entry ChatEntry)
	Feedback(text string)
	RoomStatusChanged(text string)
	AccountListChanged(entries []string)
	TurnChanged(localTurn, observer bool)
	MatchClock(elapsed time.Duration)
	Result(outcome string)
}

// NopUI discards every render intent. Useful for headless runs and tests.
type NopUI struct{}

func (NopUI) PhaseChanged(Phase)            {}
func (NopUI) BoardCellChanged(int, int, Cell) {}
func (NopUI) ChatAppended(ChatEntry)        {}
func (NopUI) Feedback(string)               {}
func (NopUI) RoomStatusChanged(string)      {}
func (NopUI) AccountListChanged([]string)   {}
func (NopUI) TurnChanged(bool, bool)        {}
func (NopUI) MatchClock(time.Duration)      {}
func (NopUI) Result(string)                 {}

var _ UI = NopUI{}

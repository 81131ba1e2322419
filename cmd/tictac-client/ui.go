package main

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/tictac-client/internal/obslog"
	"github.com/kapu/tictac-client/internal/session"
)

// consoleUI is a headless stand-in for the widget layer: it turns render
// intents into log lines so the client can run without a graphical frontend.
type consoleUI struct {
	cells [3][3]session.Cell
}

var _ session.UI = (*consoleUI)(nil)

func (u *consoleUI) PhaseChanged(phase session.Phase) {
	obslog.L().Info("ui_phase", zap.String("phase", string(phase)))
}

func (u *consoleUI) BoardCellChanged(x, y int, cell session.Cell) {
	if x >= 0 && x < 3 && y >= 0 && y < 3 {
		u.cells[x][y] = cell
	}
	obslog.L().Info("ui_board", zap.String("grid", renderGrid(u.cells)))
}

func (u *consoleUI) ChatAppended(entry session.ChatEntry) {
	obslog.L().Info("ui_chat", zap.String("origin", string(entry.Origin)), zap.String("text", entry.Text))
}

func (u *consoleUI) Feedback(text string) {
	obslog.L().Info("ui_feedback", zap.String("text", text))
}

func (u *consoleUI) RoomStatusChanged(text string) {
	obslog.L().Info("ui_room_status", zap.String("text", text))
}

func (u *consoleUI) AccountListChanged(entries []string) {
	obslog.L().Info("ui_accounts", zap.Strings("entries", entries))
}

func (u *consoleUI) TurnChanged(localTurn, observer bool) {
	obslog.L().Info("ui_turn", zap.Bool("local_turn", localTurn), zap.Bool("observer", observer))
}

func (u *consoleUI) MatchClock(elapsed time.Duration) {
	obslog.L().Debug("ui_clock", zap.Duration("elapsed", elapsed))
}

func (u *consoleUI) Result(outcome string) {
	obslog.L().Info("ui_result", zap.String("outcome", outcome))
}

func renderGrid(cells [3][3]session.Cell) string {
	rows := make([]string, 0, 3)
	for x := 0; x < 3; x++ {
		cols := make([]string, 0, 3)
		for y := 0; y < 3; y++ {
			c := string(cells[x][y])
			if c == "" {
				c = "."
			}
			cols = append(cols, c)
		}
		rows = append(rows, strings.Join(cols, ""))
	}
	return strings.Join(rows, "/")
}

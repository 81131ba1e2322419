package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/kapu/tictac-client/internal/wire"
)

// User intents. Each encodes an outbound message and applies whatever local
// state the protocol allows ahead of server confirmation.

func (c *Core) SubmitLogin(username, password string) {
	if strings.TrimSpace(username) == "" {
		c.ui.Feedback(c.text("login.missing_username", nil))
		return
	}
	c.send(wire.Encode(wire.Login, username, password))
}

func (c *Core) SubmitCreateAccount(username, password string) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		c.ui.Feedback(c.text("login.missing_fields", nil))
		return
	}
	c.send(wire.Encode(wire.CreateAccount, username, password))
}

// SubmitDeleteAccount asks the server to delete an account. The cached
// password rides along when known; the server decides validity either way.
func (c *Core) SubmitDeleteAccount(username string) {
	if strings.TrimSpace(username) == "" || username == c.text("account.none_selected", nil) {
		c.ui.Feedback(c.text("account.select_prompt", nil))
		return
	}
	if pass, ok := c.accounts.Password(username); ok {
		c.send(wire.Encode(wire.DeleteAccount, username, pass))
		return
	}
	c.send(wire.Encode(wire.DeleteAccount, username))
}

func (c *Core) RequestAccountList() {
	c.send(wire.Encode(wire.RequestAccountList))
}

// SubmitJoinOrCreateRoom is reachable only from the lobby: joining while
// logged out or already in a match is ignored.
func (c *Core) SubmitJoinOrCreateRoom(roomName string) {
	if c.phase != PhaseRoomWaiting {
		return
	}
	if strings.TrimSpace(roomName) == "" {
		c.ui.RoomStatusChanged(c.text("room.empty_name", nil))
		return
	}
	c.roomName = roomName
	c.send(wire.Encode(wire.CreateOrJoinGameRoom, roomName))
	c.ui.RoomStatusChanged(c.text("room.attempting", map[string]any{"Room": roomName}))
	c.setPhase(PhaseRoomWaiting)
}

func (c *Core) SubmitLeaveRoom() {
	if c.roomName == "" {
		return
	}
	room := c.roomName
	c.send(wire.Encode(wire.LeaveGameRoom, room))
	c.leaveRoom()
	c.ui.RoomStatusChanged(c.text("room.left", map[string]any{"Room": room}))
}

// SubmitLogout leaves any current room and returns to the login phase.
func (c *Core) SubmitLogout() {
	if c.roomName != "" {
		c.send(wire.Encode(wire.LeaveGameRoom, c.roomName))
	}
	c.resetRoomState()
	c.setPhase(PhaseLogin)
	c.emitTurn()
}

func (c *Core) SubmitChatMessage(text string) {
	if c.roomName == "" || strings.TrimSpace(text) == "" {
		return
	}
	c.send(wire.Encode(wire.SendMessageToOpponent, c.roomName, text))
	entry := ChatEntry{Origin: OriginLocal, Text: text}
	c.chat.Append(entry)
	c.ui.ChatAppended(entry)
}

// SubmitMove applies the optimistic local mark and sends the move. The cell
// is marked and the turn surrendered immediately; the server's own move
// confirmation re-derives the same state. There is no rollback path: the
// server never contradicts a move it accepted.
func (c *Core) SubmitMove(x, y int) {
	if c.phase != PhaseRoomPlaying || c.observer || c.resultShown || !c.localTurn {
		return
	}
	if c.board.Cell(x, y) != CellEmpty {
		return
	}
	changed, err := c.board.Apply(x, y, c.localRole)
	if err != nil || !changed {
		return
	}
	c.moves = append(c.moves, MoveRecord{X: x, Y: y, Role: c.localRole})
	c.ui.BoardCellChanged(x, y, Cell(c.localRole))
	c.localTurn = false
	c.emitTurn()
	c.ui.RoomStatusChanged(c.text("turn.waiting", nil))
	c.send(wire.Encode(wire.PlayerMove, c.roomName,
		strconv.Itoa(x), strconv.Itoa(y), string(c.localRole)))
}

// StartNewGame resets the board view for a fresh match in the same room.
func (c *Core) StartNewGame() {
	if c.phase != PhaseRoomPlaying && c.phase != PhaseObserving {
		return
	}
	c.stopMatchClock()
	c.resultShown = false
	c.matchStart = time.Time{}
	c.moves = nil
	c.board.Reset()
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			c.ui.BoardCellChanged(x, y, CellEmpty)
		}
	}
	c.ui.RoomStatusChanged(c.text("turn.waiting", nil))
}

package session

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/tictac-client/internal/obslog"
	"github.com/kapu/tictac-client/internal/wire"
)

// handler mutates the session in response to one inbound message. Handlers
// never fail the session: malformed or stale frames are logged and dropped,
// and the server's next consistent snapshot repairs the view.
type handler func(c *Core, fields []string)

func inboundHandlers() map[int]handler {
	return map[int]handler{
		wire.AccountCreated:          (*Core).handleAccountCreated,
		wire.AccountCreationFailed:   (*Core).handleAccountCreationFailed,
		wire.LoginSuccessful:         (*Core).handleLoginSuccessful,
		wire.LoginFailed:             (*Core).handleLoginFailed,
		wire.AccountList:             (*Core).handleAccountList,
		wire.AccountDeleted:          (*Core).handleAccountDeleted,
		wire.AccountDeletionFailed:   (*Core).handleAccountDeletionFailed,
		wire.GameRoomCreatedOrJoined: (*Core).handleRoomCreatedOrJoined,
		wire.StartGame:               (*Core).handleStartGame,
		wire.OpponentMessage:         (*Core).handleOpponentMessage,
		wire.OpponentMove:            (*Core).handleMove,
		wire.GameResult:              (*Core).handleGameResult,
		wire.TurnUpdate:              (*Core).handleTurnUpdate,
		wire.ObserverJoined:          (*Core).handleObserverJoined,
		wire.BoardStateUpdate:        (*Core).handleMove,
		wire.GameRoomDestroyed:       (*Core).handleRoomDestroyed,
	}
}

// HandleRaw decodes one inbound frame and routes it by signifier. Unknown
// signifiers are reported and ignored so additive protocol changes never
// break the client.
func (c *Core) HandleRaw(raw string) {
	signifier, fields, err := wire.Decode(raw)
	if err != nil {
		obslog.L().Warn("malformed_message", zap.Error(err))
		return
	}
	h, ok := c.handlers[signifier]
	if !ok {
		obslog.L().Warn("unknown_signifier", zap.Int("signifier", signifier))
		return
	}
	h(c, fields)
}

func (c *Core) handleAccountCreated(_ []string) {
	c.ui.Feedback(c.text("account.created", nil))
	c.RequestAccountList()
}

func (c *Core) handleAccountCreationFailed(_ []string) {
	c.ui.Feedback(c.text("account.create_failed", nil))
}

func (c *Core) handleLoginSuccessful(_ []string) {
	c.ui.Feedback(c.text("login.success", nil))
	c.setPhase(PhaseRoomWaiting)
}

func (c *Core) handleLoginFailed(_ []string) {
	c.ui.Feedback(c.text("login.failed", nil))
}

func (c *Core) handleAccountList(fields []string) {
	entries, errs := wire.DecodeAccountEntries(fields)
	for _, err := range errs {
		obslog.L().Warn("malformed_account_entry", zap.Error(err))
	}
	c.accounts.Replace(entries)
	c.ui.AccountListChanged(c.accountDisplayList())
	c.saveProfileAccounts()
}

func (c *Core) handleAccountDeleted(fields []string) {
	if len(fields) < 1 {
		obslog.L().Warn("malformed_message", zap.String("reason", "account deleted without username"))
		return
	}
	username := fields[0]
	c.accounts.Remove(username)
	c.ui.Feedback(c.text("account.deleted", map[string]any{"Username": username}))
	c.ui.AccountListChanged(c.accountDisplayList())
	c.saveProfileAccounts()
}

func (c *Core) handleAccountDeletionFailed(fields []string) {
	username := ""
	if len(fields) > 0 {
		username = fields[0]
	}
	c.ui.Feedback(c.text("account.delete_failed", map[string]any{"Username": username}))
}

func (c *Core) handleRoomCreatedOrJoined(fields []string) {
	if len(fields) < 2 {
		obslog.L().Warn("malformed_message", zap.String("reason", "room join without room/count"))
		return
	}
	room := fields[0]
	count, err := strconv.Atoi(fields[1])
	if err != nil {
		obslog.L().Warn("malformed_message", zap.String("reason", "room join count"), zap.Error(err))
		return
	}
	if c.roomName != "" && room != c.roomName {
		c.logStaleRoom("room_created_or_joined", room)
		return
	}
	if c.phase == PhaseRoomPlaying || c.phase == PhaseObserving {
		// occupancy count changed mid-match: the status line updates but
		// the match view stays as it is
		c.ui.RoomStatusChanged(c.text("room.joined", map[string]any{"Room": room, "Count": count}))
		return
	}
	// new occupancy: adopt the room and start the chat log fresh
	c.roomName = room
	c.chat.Reset()
	c.setPhase(PhaseRoomWaiting)
	c.ui.RoomStatusChanged(c.text("room.joined", map[string]any{"Room": room, "Count": count}))
	c.saveLastRoom(room)
}

func (c *Core) handleStartGame(fields []string) {
	if len(fields) < 3 {
		obslog.L().Warn("malformed_message", zap.String("reason", "start game fields"))
		return
	}
	room := fields[0]
	role, ok := parseRole(fields[1])
	if !ok {
		obslog.L().Warn("malformed_message", zap.String("reason", "start game role"), zap.String("role", fields[1]))
		return
	}
	turn, err := strconv.Atoi(fields[2])
	if err != nil {
		obslog.L().Warn("malformed_message", zap.String("reason", "start game turn flag"), zap.Error(err))
		return
	}
	if c.observer {
		// observer status is one-way for the occupancy: only leaving the
		// room clears it, never an in-place flip
		obslog.L().Warn("invariant_violation", zap.String("reason", "start game while observing"), zap.String("room", room))
		return
	}

	c.roomName = room
	c.localRole = role
	c.localTurn = turn == 1
	c.observer = false
	c.resultShown = false
	c.moves = nil
	c.board.Reset()
	c.setPhase(PhaseRoomPlaying)
	c.emitTurn()
	c.ui.RoomStatusChanged(c.text("room.started", nil))
	c.startMatchClock()
	obslog.L().Info("game_start",
		zap.String("room", room),
		zap.String("role", string(role)),
		zap.Bool("local_turn", c.localTurn),
	)
}

func (c *Core) handleObserverJoined(fields []string) {
	if len(fields) < 1 {
		obslog.L().Warn("malformed_message", zap.String("reason", "observer join without room"))
		return
	}
	room := fields[0]
	if c.phase == PhaseRoomPlaying {
		// a participant never becomes an observer in place
		obslog.L().Warn("invariant_violation", zap.String("reason", "observer join while playing"), zap.String("room", room))
		return
	}
	c.roomName = room
	c.localRole = ""
	c.localTurn = false
	c.observer = true
	c.resultShown = false
	c.moves = nil
	c.board.Reset()
	c.chat.Reset()
	c.setPhase(PhaseObserving)
	c.emitTurn()
	c.ui.RoomStatusChanged(c.text("observer.joined", map[string]any{"Room": room}))
	c.startMatchClock()
	obslog.L().Info("observer_join", zap.String("room", room))
}

// handleMove applies an authoritative cell write (PlayerMove or
// BoardStateUpdate; both carry roomName,x,y,role). Participants flip their
// turn off the mover; observers apply the write without touching turn state.
func (c *Core) handleMove(fields []string) {
	if len(fields) < 4 {
		obslog.L().Warn("malformed_message", zap.String("reason", "move fields"))
		return
	}
	room := fields[0]
	if room != c.roomName {
		c.logStaleRoom("move", room)
		return
	}
	if c.phase != PhaseRoomPlaying && c.phase != PhaseObserving {
		obslog.L().Warn("invariant_violation", zap.String("reason", "move outside a match"), zap.String("phase", string(c.phase)))
		return
	}
	x, errX := strconv.Atoi(fields[1])
	y, errY := strconv.Atoi(fields[2])
	if errX != nil || errY != nil {
		obslog.L().Warn("malformed_message", zap.String("reason", "move coordinates"))
		return
	}
	role, ok := parseRole(fields[3])
	if !ok {
		obslog.L().Warn("malformed_message", zap.String("reason", "move role"), zap.String("role", fields[3]))
		return
	}

	changed, err := c.board.Apply(x, y, role)
	if err != nil {
		obslog.L().Warn("invariant_violation", zap.String("reason", "conflicting cell write"), zap.Error(err))
		return
	}
	if changed {
		c.moves = append(c.moves, MoveRecord{X: x, Y: y, Role: role})
		c.ui.BoardCellChanged(x, y, Cell(role))
	}
	if c.observer || c.resultShown {
		return
	}
	c.localTurn = role != c.localRole
	c.emitTurn()
}

// handleTurnUpdate sets the turn flag directly. Ignored while observing; an
// observer never gains turn rights.
func (c *Core) handleTurnUpdate(fields []string) {
	if len(fields) < 1 {
		obslog.L().Warn("malformed_message", zap.String("reason", "turn update flag"))
		return
	}
	if c.observer || c.phase != PhaseRoomPlaying {
		obslog.L().Debug("turn_update_ignored", zap.String("phase", string(c.phase)), zap.Bool("observer", c.observer))
		return
	}
	c.localTurn = fields[0] == "1"
	c.emitTurn()
}

func (c *Core) handleGameResult(fields []string) {
	if len(fields) < 1 {
		obslog.L().Warn("malformed_message", zap.String("reason", "game result outcome"))
		return
	}
	if c.phase != PhaseRoomPlaying && c.phase != PhaseObserving {
		obslog.L().Warn("invariant_violation", zap.String("reason", "result outside a match"), zap.String("phase", string(c.phase)))
		return
	}
	outcome, err := strconv.Atoi(fields[0])
	if err != nil {
		obslog.L().Warn("malformed_message", zap.String("reason", "game result outcome"), zap.Error(err))
		return
	}
	var text string
	switch outcome {
	case 1:
		text = c.text("result.x", nil)
	case 2:
		text = c.text("result.o", nil)
	default:
		text = c.text("result.draw", nil)
	}
	c.resultShown = true
	c.localTurn = false
	c.stopMatchClock()
	c.emitTurn()
	c.ui.Result(text)
	c.recordResult(text)
	obslog.L().Info("game_result", zap.String("room", c.roomName), zap.Int("outcome", outcome))
}

func (c *Core) handleOpponentMessage(fields []string) {
	if len(fields) < 1 {
		return
	}
	if c.roomName == "" {
		c.logStaleRoom("opponent_message", "")
		return
	}
	// chat text was split on ','; reassemble the original payload
	entry := ChatEntry{Origin: OriginRemote, Text: strings.Join(fields, ",")}
	c.chat.Append(entry)
	c.ui.ChatAppended(entry)
}

func (c *Core) handleRoomDestroyed(fields []string) {
	if len(fields) > 0 && fields[0] != "" && fields[0] != c.roomName {
		c.logStaleRoom("room_destroyed", fields[0])
		return
	}
	if c.roomName == "" {
		return
	}
	room := c.roomName
	c.leaveRoom()
	c.ui.RoomStatusChanged(c.text("room.destroyed", nil))
	obslog.L().Info("room_destroyed", zap.String("room", room))
}

// logStaleRoom records an InvariantViolation for a message referencing a
// room the client is not in. Stale frames from a room already left are
// expected and never fatal.
func (c *Core) logStaleRoom(kind, room string) {
	obslog.L().Warn("invariant_violation",
		zap.String("kind", kind),
		zap.String("message_room", room),
		zap.String("current_room", c.roomName),
	)
}

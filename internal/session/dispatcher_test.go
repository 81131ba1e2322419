package session

import (
	"testing"
)

func TestLoginSuccessfulEntersLobby(t *testing.T) {
	c, ui, _ := newTestCore(t)

	c.HandleRaw("3")

	if c.Phase() != PhaseRoomWaiting {
		t.Fatalf("expected ROOM_WAITING, got %s", c.Phase())
	}
	if len(ui.phases) != 1 || ui.phases[0] != PhaseRoomWaiting {
		t.Fatalf("unexpected phase events: %v", ui.phases)
	}
	if len(ui.feedback) != 1 || ui.feedback[0] != "Login successful!" {
		t.Fatalf("unexpected feedback: %v", ui.feedback)
	}
}

func TestJoinRoomThenStartGame(t *testing.T) {
	c, ui, out := newTestCore(t)
	c.HandleRaw("3")

	c.SubmitJoinOrCreateRoom("room1")
	if out.last() != "4,room1" {
		t.Fatalf("unexpected join frame: %q", out.last())
	}

	c.HandleRaw("8,room1,1")
	want := "Joined room: room1. Waiting for players... (1/2)"
	if ui.lastRoomStatus() != want {
		t.Fatalf("room status = %q, want %q", ui.lastRoomStatus(), want)
	}
	if c.Phase() != PhaseRoomWaiting {
		t.Fatalf("expected ROOM_WAITING, got %s", c.Phase())
	}

	c.HandleRaw("9,room1,X,1")
	if c.Phase() != PhaseRoomPlaying {
		t.Fatalf("expected ROOM_PLAYING, got %s", c.Phase())
	}
	if c.LocalRole() != RoleX {
		t.Fatalf("expected role X, got %q", c.LocalRole())
	}
	if !c.LocalTurn() {
		t.Fatal("expected local turn after StartGame with turn flag 1")
	}
	last := ui.turns[len(ui.turns)-1]
	if !last.localTurn || last.observer {
		t.Fatalf("unexpected turn event: %+v", last)
	}
}

func TestStartGameSecondPlayerWaits(t *testing.T) {
	c, _, _ := newTestCore(t)
	loginAndJoin(t, c, "room1")

	c.HandleRaw("9,room1,O,0")

	if c.LocalRole() != RoleO {
		t.Fatalf("expected role O, got %q", c.LocalRole())
	}
	if c.LocalTurn() {
		t.Fatal("second player must start without the turn")
	}
}

func TestObserverNeverGainsTurn(t *testing.T) {
	c, ui, _ := newTestCore(t)
	loginAndJoin(t, c, "room1")

	c.HandleRaw("14,room1")
	if c.Phase() != PhaseObserving {
		t.Fatalf("expected OBSERVING, got %s", c.Phase())
	}
	if !c.Observer() {
		t.Fatal("expected observer flag set")
	}

	c.HandleRaw("13,1")
	if c.LocalTurn() {
		t.Fatal("TurnUpdate must not grant an observer the turn")
	}

	c.HandleRaw("15,room1,0,0,X")
	if c.LocalTurn() {
		t.Fatal("a board write must not grant an observer the turn")
	}
	if got := c.Board().Cell(0, 0); got != Cell(RoleX) {
		t.Fatalf("observer board cell = %q, want X", got)
	}
	for _, tc := range ui.turns {
		if tc.localTurn {
			t.Fatalf("observer saw localTurn=true turn event: %+v", ui.turns)
		}
	}
}

func TestStartGameDroppedWhileObserving(t *testing.T) {
	c, ui, _ := newTestCore(t)
	loginAndJoin(t, c, "room1")
	c.HandleRaw("14,room1")

	c.HandleRaw("9,room1,X,1")

	if c.Phase() != PhaseObserving {
		t.Fatalf("observer flipped to participant: phase=%s", c.Phase())
	}
	if !c.Observer() {
		t.Fatal("observer flag cleared by StartGame")
	}
	if c.LocalTurn() || c.LocalRole() != "" {
		t.Fatalf("observer gained play state: turn=%v role=%q", c.LocalTurn(), c.LocalRole())
	}
	for _, tc := range ui.turns {
		if tc.localTurn {
			t.Fatalf("observer saw localTurn=true turn event: %+v", ui.turns)
		}
	}
}

func TestObserverJoinedDroppedWhilePlaying(t *testing.T) {
	c, _, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "1")
	c.SubmitChatMessage("hi")
	c.HandleRaw("11,room1,0,0,X")

	c.HandleRaw("14,room1")

	if c.Phase() != PhaseRoomPlaying {
		t.Fatalf("participant flipped to observer: phase=%s", c.Phase())
	}
	if c.Observer() {
		t.Fatal("observer flag set on a participant")
	}
	if c.LocalRole() != RoleX {
		t.Fatalf("role lost: %q", c.LocalRole())
	}
	if c.Board().Empty() {
		t.Fatal("board wiped by in-place observer join")
	}
	if c.Chat().Len() != 1 {
		t.Fatalf("chat wiped: len=%d", c.Chat().Len())
	}
}

func TestRoomJoinedMidMatchKeepsMatchView(t *testing.T) {
	c, ui, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "1")
	c.SubmitChatMessage("hello")

	c.HandleRaw("8,room1,2")

	if c.Phase() != PhaseRoomPlaying {
		t.Fatalf("mid-match occupancy update regressed phase: %s", c.Phase())
	}
	if c.Chat().Len() != 1 {
		t.Fatalf("mid-match occupancy update reset the chat: len=%d", c.Chat().Len())
	}
	want := "Joined room: room1. Waiting for players... (2/2)"
	if ui.lastRoomStatus() != want {
		t.Fatalf("room status = %q, want %q", ui.lastRoomStatus(), want)
	}
}

func TestBoardWriteIdempotent(t *testing.T) {
	c, ui, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "0")

	c.HandleRaw("15,room1,1,1,O")
	c.HandleRaw("15,room1,1,1,O")

	if len(ui.cellWrites) != 1 {
		t.Fatalf("expected one cell write, got %d", len(ui.cellWrites))
	}
	if got := c.Board().Cell(1, 1); got != Cell(RoleO) {
		t.Fatalf("cell = %q, want O", got)
	}
}

func TestMoveForWrongRoomDropped(t *testing.T) {
	c, ui, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "0")

	c.HandleRaw("11,other,0,0,O")

	if len(ui.cellWrites) != 0 {
		t.Fatalf("stale-room move reached the board: %v", ui.cellWrites)
	}
	if c.LocalTurn() {
		t.Fatal("stale-room move toggled the turn")
	}
}

func TestConflictingCellWriteDropped(t *testing.T) {
	c, _, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "0")

	c.HandleRaw("11,room1,2,2,O")
	c.HandleRaw("11,room1,2,2,X")

	if got := c.Board().Cell(2, 2); got != Cell(RoleO) {
		t.Fatalf("conflicting write overwrote the cell: got %q", got)
	}
}

func TestOpponentMoveFlipsTurn(t *testing.T) {
	c, _, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "0")

	c.HandleRaw("11,room1,0,0,O")

	if !c.LocalTurn() {
		t.Fatal("expected the turn after the opponent moved")
	}
}

func TestAccountListToleratesBadEntries(t *testing.T) {
	c, ui, _ := newTestCore(t)

	c.HandleRaw("5,alice:pw1,bob,carol:pw3")

	names := c.Accounts().Names()
	if len(names) != 2 || names[0] != "alice" || names[1] != "carol" {
		t.Fatalf("unexpected account names: %v", names)
	}
	if len(ui.accountLists) != 1 {
		t.Fatalf("expected one account list event, got %d", len(ui.accountLists))
	}
	list := ui.accountLists[0]
	if len(list) != 3 || list[0] != "Select Account" || list[1] != "alice" || list[2] != "carol" {
		t.Fatalf("unexpected display list: %v", list)
	}
}

func TestAccountCreatedRefreshesList(t *testing.T) {
	c, ui, out := newTestCore(t)

	c.HandleRaw("1")

	if out.last() != "13" {
		t.Fatalf("expected account list request, got %q", out.last())
	}
	if len(ui.feedback) != 1 || ui.feedback[0] != "Account created successfully!" {
		t.Fatalf("unexpected feedback: %v", ui.feedback)
	}
}

func TestAccountDeletedUpdatesCache(t *testing.T) {
	c, ui, _ := newTestCore(t)
	c.HandleRaw("5,alice:pw1,carol:pw3")

	c.HandleRaw("6,alice")

	names := c.Accounts().Names()
	if len(names) != 1 || names[0] != "carol" {
		t.Fatalf("unexpected names after delete: %v", names)
	}
	last := ui.feedback[len(ui.feedback)-1]
	if last != "Account 'alice' deleted successfully." {
		t.Fatalf("unexpected delete feedback: %q", last)
	}
}

func TestGameResultFreezesMatch(t *testing.T) {
	c, ui, out := newTestCore(t)
	startMatch(t, c, "room1", "X", "1")

	c.HandleRaw("12,1")

	if len(ui.results) != 1 || ui.results[0] != "Player 1 (X) Wins!" {
		t.Fatalf("unexpected result: %v", ui.results)
	}
	if c.LocalTurn() {
		t.Fatal("turn flag must clear on result")
	}

	sentBefore := len(out.sent)
	c.SubmitMove(0, 0)
	if len(out.sent) != sentBefore {
		t.Fatal("move sent after the result froze the board")
	}
}

func TestGameResultDrawText(t *testing.T) {
	c, ui, _ := newTestCore(t)
	startMatch(t, c, "room1", "O", "0")

	c.HandleRaw("12,0")

	if len(ui.results) != 1 || ui.results[0] != "It's a Draw!" {
		t.Fatalf("unexpected draw result: %v", ui.results)
	}
}

func TestRoomDestroyedTearsDown(t *testing.T) {
	c, ui, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "1")
	c.SubmitChatMessage("hello")
	c.HandleRaw("11,room1,0,0,X")

	c.HandleRaw("16")

	if c.RoomName() != "" {
		t.Fatalf("room name not cleared: %q", c.RoomName())
	}
	if c.Phase() != PhaseRoomWaiting {
		t.Fatalf("expected ROOM_WAITING after teardown, got %s", c.Phase())
	}
	if !c.Board().Empty() {
		t.Fatal("board not cleared on teardown")
	}
	if c.Chat().Len() != 0 {
		t.Fatal("chat not cleared on teardown")
	}
	if ui.lastRoomStatus() != "The room was closed. Back to the lobby." {
		t.Fatalf("unexpected teardown status: %q", ui.lastRoomStatus())
	}
}

func TestRoomDestroyedForOtherRoomIgnored(t *testing.T) {
	c, _, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "1")

	c.HandleRaw("16,other")

	if c.RoomName() != "room1" {
		t.Fatalf("teardown for another room was applied: %q", c.RoomName())
	}
	if c.Phase() != PhaseRoomPlaying {
		t.Fatalf("phase changed: %s", c.Phase())
	}
}

func TestOpponentMessageKeepsCommas(t *testing.T) {
	c, ui, _ := newTestCore(t)
	startMatch(t, c, "room1", "X", "1")

	c.HandleRaw("10,nice move, well played")

	if len(ui.chat) != 1 {
		t.Fatalf("expected one chat entry, got %d", len(ui.chat))
	}
	e := ui.chat[0]
	if e.Origin != OriginRemote || e.Text != "nice move, well played" {
		t.Fatalf("unexpected chat entry: %+v", e)
	}
}

func TestUnknownSignifierIgnored(t *testing.T) {
	c, ui, out := newTestCore(t)
	c.HandleRaw("3")
	phases := len(ui.phases)

	c.HandleRaw("99,whatever")
	c.HandleRaw("not-a-number,x")
	c.HandleRaw("")

	if len(ui.phases) != phases || len(out.sent) != 0 {
		t.Fatal("unknown or malformed frames mutated the session")
	}
	if c.Phase() != PhaseRoomWaiting {
		t.Fatalf("phase changed: %s", c.Phase())
	}
}

func TestMoveOutsideMatchDropped(t *testing.T) {
	c, ui, _ := newTestCore(t)
	c.HandleRaw("3")
	c.SubmitJoinOrCreateRoom("room1")

	// still waiting: no StartGame yet
	c.HandleRaw("11,room1,0,0,X")

	if len(ui.cellWrites) != 0 {
		t.Fatalf("move applied outside a match: %v", ui.cellWrites)
	}
}

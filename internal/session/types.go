package session

import "time"

// Phase is the single active UI/session phase. UI visibility is a pure
// function of the phase.
type Phase string

const (
	PhaseLogin       Phase = "LOGIN"
	PhaseRoomWaiting Phase = "ROOM_WAITING"
	PhaseRoomPlaying Phase = "ROOM_PLAYING"
	PhaseObserving   Phase = "OBSERVING"
)

// Role is a play symbol with turn rights. Observers hold no role.
type Role string

const (
	RoleX Role = "X"
	RoleO Role = "O"
)

func parseRole(s string) (Role, bool) {
	switch s {
	case "X":
		return RoleX, true
	case "O":
		return RoleO, true
	}
	return "", false
}

// Cell is one board square: empty, or marked with a role.
type Cell string

const CellEmpty Cell = ""

// Origin tags a chat entry by sender side.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// ChatEntry is one line of the room-scoped chat log.
type ChatEntry struct {
	Origin Origin `json:"origin"`
	Text   string `json:"text"`
}

// MoveRecord is one confirmed or optimistic cell write, kept for the match
// archive.
type MoveRecord struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Role Role `json:"role"`
}

// Snapshot is a point-in-time copy of the session for the status endpoint.
type Snapshot struct {
	ClientID   string      `json:"client_id,omitempty"`
	Phase      Phase       `json:"phase"`
	RoomName   string      `json:"room_name,omitempty"`
	LocalRole  Role        `json:"local_role,omitempty"`
	LocalTurn  bool        `json:"local_turn"`
	Observer   bool        `json:"observer"`
	Board      [3][3]Cell  `json:"board"`
	Chat       []ChatEntry `json:"chat,omitempty"`
	Accounts   []string    `json:"accounts,omitempty"`
	MatchStart time.Time   `json:"match_start,omitempty"`
}

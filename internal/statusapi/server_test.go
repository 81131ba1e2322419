package statusapi

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/kapu/tictac-client/internal/session"
)

func newTestServer(t *testing.T, snap session.Snapshot) (*Server, func()) {
	t.Helper()
	s := New("127.0.0.1:0", func() session.Snapshot { return snap })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s, func() { _ = s.Close() }
}

func TestStatusEndpoint(t *testing.T) {
	snap := session.Snapshot{
		Phase:     session.PhaseRoomPlaying,
		RoomName:  "room1",
		LocalRole: session.RoleX,
		LocalTurn: true,
	}
	snap.Board[0][0] = session.Cell(session.RoleX)
	s, cleanup := newTestServer(t, snap)
	defer cleanup()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + s.Addr() + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code: %d", resp.StatusCode)
	}

	var got session.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Phase != session.PhaseRoomPlaying || got.RoomName != "room1" || !got.LocalTurn {
		t.Fatalf("snapshot mismatch: %+v", got)
	}
	if got.Board[0][0] != session.Cell(session.RoleX) {
		t.Fatalf("board cell mismatch: %+v", got.Board)
	}
}

func TestBoardPNGEndpoint(t *testing.T) {
	var snap session.Snapshot
	snap.Board[1][1] = session.Cell(session.RoleO)
	s, cleanup := newTestServer(t, snap)
	defer cleanup()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + s.Addr() + "/board.png")
	if err != nil {
		t.Fatalf("GET /board.png: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type: %s", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(body) == 0 {
		t.Fatalf("empty png body")
	}
}

func TestUnknownPath(t *testing.T) {
	s, cleanup := newTestServer(t, session.Snapshot{})
	defer cleanup()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + s.Addr() + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestBoardCaption(t *testing.T) {
	cases := []struct {
		snap session.Snapshot
		want string
	}{
		{session.Snapshot{}, "no room"},
		{session.Snapshot{RoomName: "room1", LocalTurn: true}, "room1 - your turn"},
		{session.Snapshot{RoomName: "room1"}, "room1 - waiting"},
		{session.Snapshot{RoomName: "room1", Observer: true}, "room1 (observing)"},
	}
	for _, tc := range cases {
		if got := boardCaption(tc.snap); got != tc.want {
			t.Fatalf("caption for %+v = %q, want %q", tc.snap, got, tc.want)
		}
	}
}

// Package statusapi exposes a local debug view of the running client: the
// current session snapshot as JSON and the board projection as a PNG.
package statusapi

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kapu/tictac-client/internal/boardimg"
	"github.com/kapu/tictac-client/internal/obslog"
	"github.com/kapu/tictac-client/internal/session"
)

// SnapshotFunc returns a consistent session snapshot. It is expected to
// marshal onto the session event loop internally.
type SnapshotFunc func() session.Snapshot

type Server struct {
	addr     string
	snapshot SnapshotFunc
	srv      *fasthttp.Server
	ln       net.Listener
}

func New(addr string, snapshot SnapshotFunc) *Server {
	s := &Server{addr: addr, snapshot: snapshot}
	s.srv = &fasthttp.Server{
		Handler:      s.handle,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start begins serving in the background. The listener is bound before
// returning so address errors surface immediately.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	go func() {
		if err := s.srv.Serve(ln); err != nil {
			obslog.L().Warn("status_server_stopped", zap.Error(err))
		}
	}()
	obslog.L().Info("status_server_listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

func (s *Server) Close() error {
	if s == nil || s.srv == nil {
		return nil
	}
	return s.srv.Shutdown()
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/status":
		s.handleStatus(ctx)
	case "/board.png":
		s.handleBoard(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	snap := s.snapshot()
	body, err := json.Marshal(snap)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (s *Server) handleBoard(ctx *fasthttp.RequestCtx) {
	snap := s.snapshot()
	renderCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	data, err := boardimg.RenderPNG(renderCtx, snap.Board, boardimg.Options{Caption: boardCaption(snap)})
	if err != nil {
		obslog.L().Warn("board_render_failed", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("image/png")
	ctx.SetBody(data)
}

// boardCaption summarizes the snapshot for the rendered header band.
func boardCaption(snap session.Snapshot) string {
	if snap.RoomName == "" {
		return "no room"
	}
	switch {
	case snap.Observer:
		return snap.RoomName + " (observing)"
	case snap.LocalTurn:
		return snap.RoomName + " - your turn"
	default:
		return snap.RoomName + " - waiting"
	}
}

package wsmirror

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/zeusui/internal/config"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/observability/log"
	"github.com/zeusync/zeusui/internal/core/signal"
)

// Poster runs tasks on the UI goroutine.
type Poster interface {
	Post(t signal.Task)
}

// Dispatcher delivers an event to a node of the decorated document.
type Dispatcher interface {
	Dispatch(target dom.Node, ev *dom.Event) error
}

// Server upgrades HTTP requests to websocket mirror sessions.
type Server struct {
	cfg        config.Mirror
	doc        *Document
	poster     Poster
	dispatcher Dispatcher
	upgrader   websocket.Upgrader
	log        log.Log
}

func NewServer(cfg config.Mirror, doc *Document, poster Poster, dispatcher Dispatcher, logger log.Log) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Server{
		cfg:        cfg,
		doc:        doc,
		poster:     poster,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.Named("mirror"),
	}
}

// Handler serves the mirror endpoint at the configured path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.handleWebSocket)
	return mux
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("mirror listening", log.String("addr", s.cfg.Addr), log.String("path", s.cfg.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.doc.Hub().Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", log.String("remote", r.RemoteAddr), log.Error(err))
		return
	}

	hub := s.doc.Hub()
	c, err := hub.attach(conn)
	if err != nil {
		s.log.Warn("mirror replay failed", log.String("remote", r.RemoteAddr), log.Error(err))
		_ = conn.Close()
		return
	}
	defer hub.detach(c.id)

	for {
		var ev ClientEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("mirror client read failed", log.String("client", c.id), log.Error(err))
			}
			return
		}
		s.deliver(c.id, ev)
	}
}

// deliver hands a client event to the UI goroutine.
func (s *Server) deliver(clientID string, ev ClientEvent) {
	target, ok := s.doc.Resolve(ev.ID)
	if !ok {
		s.log.Warn("event for unknown node", log.String("client", clientID), log.String("id", ev.ID))
		return
	}
	s.poster.Post(func() {
		if err := s.dispatcher.Dispatch(target, dom.NewEvent(ev.Event, ev.Data)); err != nil {
			s.log.Error("event dispatch failed",
				log.String("client", clientID),
				log.String("event", ev.Event),
				log.Error(err),
			)
		}
	})
}

package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/bake"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Server exposes one model over HTTP for inspection: an asset summary, sampled poses and debug
// lines at any time, rendered stills, and a websocket that streams live playback.
type Server interface {
	// Handler returns the routed, logged and panic-recovering HTTP handler.
	//
	// Returns:
	//   - http.Handler: the handler
	Handler() http.Handler

	// Addr returns the listen address.
	//
	// Returns:
	//   - string: the address, e.g. ":8080"
	Addr() string

	// Sessions returns the number of open playback websockets.
	//
	// Returns:
	//   - int: the session count
	Sessions() int

	// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
	//
	// Parameters:
	//   - ctx: stops the server when done
	//
	// Returns:
	//   - error: a listen error, or nil after a clean shutdown
	ListenAndServe(ctx context.Context) error
}

type server struct {
	model    model.Model
	addr     string
	logOut   io.Writer
	resolver debug.Resolver
	baker    bake.Baker

	searchType  animator.KeyframeSearchType
	animOptions []animator.AnimatorBuilderOption
	streamRate  time.Duration

	upgrader websocket.Upgrader
	sessions atomic.Int64

	handler http.Handler
}

var _ Server = &server{}

// minStreamInterval bounds the playback ticker period from below.
const minStreamInterval = time.Millisecond

// NewServer creates a Server for m. NewServer panics if m is nil.
//
// Parameters:
//   - m: the model to serve
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the newly created server
func NewServer(m model.Model, options ...ServerBuilderOption) Server {
	if m == nil {
		panic("server: NewServer requires a non-nil Model")
	}
	s := &server{
		model:      m,
		addr:       ":8080",
		logOut:     os.Stdout,
		searchType: animator.SearchCached,
		streamRate: time.Second / 30,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, option := range options {
		option(s)
	}
	if s.resolver == nil {
		s.resolver = debug.NewResolver()
	}
	if s.baker == nil {
		s.baker = bake.NewBaker(bake.WithSize(640, 480), bake.WithResolver(s.resolver))
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/asset", s.handleAsset).Methods(http.MethodGet)
	r.HandleFunc("/api/pose", s.handlePose).Methods(http.MethodGet)
	r.HandleFunc("/api/lines", s.handleLines).Methods(http.MethodGet)
	r.HandleFunc("/api/snapshot.webp", s.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/ws/playback", s.handlePlayback)

	h := handlers.LoggingHandler(s.logOut, r)
	s.handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return s
}

func (s *server) Handler() http.Handler {
	return s.handler
}

func (s *server) Addr() string {
	return s.addr
}

func (s *server) Sessions() int {
	return int(s.sessions.Load())
}

func (s *server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[Server] Serving %q on %v", s.model.Name(), s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "server: listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server: shutdown")
	}
	log.Printf("[Server] Stopped")
	return nil
}

package server

import (
	"io"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/bake"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
)

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(s *server)

// WithAddr sets the listen address (default ":8080").
//
// Parameters:
//   - addr: the address
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAddr(addr string) ServerBuilderOption {
	return func(s *server) {
		s.addr = addr
	}
}

// WithLogOutput sets where request logs are written (default os.Stdout).
//
// Parameters:
//   - w: the log destination
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithLogOutput(w io.Writer) ServerBuilderOption {
	return func(s *server) {
		s.logOut = w
	}
}

// WithResolver sets the hierarchy resolver used for /api/lines and the playback stream.
//
// Parameters:
//   - r: the resolver
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithResolver(r debug.Resolver) ServerBuilderOption {
	return func(s *server) {
		s.resolver = r
	}
}

// WithBaker sets the baker that renders /api/snapshot.webp.
//
// Parameters:
//   - b: the baker
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithBaker(b bake.Baker) ServerBuilderOption {
	return func(s *server) {
		s.baker = b
	}
}

// WithStreamRate sets how many playback messages per second each websocket receives (default 30).
// Values <= 0 are ignored; rates above 1000 are capped at one message per millisecond.
//
// Parameters:
//   - hz: messages per second
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithStreamRate(hz float64) ServerBuilderOption {
	return func(s *server) {
		if hz > 0 {
			s.streamRate = max(time.Duration(float64(time.Second)/hz), minStreamInterval)
		}
	}
}

// WithPlayback sets the search strategy and options of the animator each playback session creates.
//
// Parameters:
//   - searchType: the keyframe search strategy
//   - options: animator options such as pause and wrap policies
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithPlayback(searchType animator.KeyframeSearchType, options ...animator.AnimatorBuilderOption) ServerBuilderOption {
	return func(s *server) {
		s.searchType = searchType
		s.animOptions = options
	}
}

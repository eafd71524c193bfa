package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	pongWait   = 40 * time.Second
)

// playbackMessage is pushed to the client once per stream tick.
type playbackMessage struct {
	Time       float64    `json:"time"`
	Enabled    bool       `json:"enabled"`
	Inspecting bool       `json:"inspecting"`
	Frame      int        `json:"frame"`
	Previous   int        `json:"previous"`
	Fraction   float64    `json:"fraction"`
	Lines      []lineJSON `json:"lines"`
}

type errorMessage struct {
	Error string `json:"error"`
}

// playbackSession streams one client's private animator. Only run touches the animator and
// writes to the connection; readPump forwards commands to it.
type playbackSession struct {
	conn     *websocket.Conn
	anim     animator.Animator
	resolver debug.Resolver
	rate     time.Duration

	segments []debug.Segment
}

func (s *server) handlePlayback(w http.ResponseWriter, r *http.Request) {
	track := s.model.Track()
	if track == nil {
		writeError(w, http.StatusNotFound, errNoTrack)
		return
	}

	options := append([]animator.AnimatorBuilderOption{}, s.animOptions...)
	options = append(options, animator.WithTrack(track))
	if v := r.URL.Query().Get("enabled"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		options = append(options, animator.WithEnabled(enabled))
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Server] ws upgrade error: %v", err)
		return
	}

	sess := &playbackSession{
		conn:     conn,
		anim:     animator.NewAnimator(s.searchType, options...),
		resolver: s.resolver,
		rate:     s.streamRate,
	}

	s.sessions.Add(1)
	log.Printf("[Server] playback session opened from %v", r.RemoteAddr)
	sess.run()
	s.sessions.Add(-1)
	log.Printf("[Server] playback session closed from %v", r.RemoteAddr)
}

// readPump forwards text messages to commands until the connection fails or quit closes,
// then closes done.
func (p *playbackSession) readPump(commands chan<- string, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	p.conn.SetReadLimit(512)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[Server] ws read error: %v", err)
			}
			return
		}
		select {
		case commands <- strings.TrimSpace(string(msg)):
		case <-quit:
			return
		}
	}
}

// run ticks the session's animator at the stream rate and applies client commands between ticks.
func (p *playbackSession) run() {
	defer p.conn.Close()

	commands := make(chan string, 16)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go p.readPump(commands, done, quit)

	ticker := time.NewTicker(p.rate)
	defer ticker.Stop()
	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()

	last := time.Now()
	if err := p.push(); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case cmd := <-commands:
			e, err := animator.ParseEvent(cmd)
			if err != nil {
				if err := p.write(errorMessage{Error: err.Error()}); err != nil {
					return
				}
				continue
			}
			animator.Apply(p.anim, e)
		case now := <-ticker.C:
			p.anim.Update(now.Sub(last).Seconds())
			last = now
			if err := p.push(); err != nil {
				return
			}
		case <-pinger.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[Server] ws write ping error: %v", err)
				return
			}
		}
	}
}

// push sends the animator's current state and pose lines.
func (p *playbackSession) push() error {
	state := p.anim.State()
	p.segments = p.resolver.Resolve(p.anim.Pose(), p.segments[:0])
	return p.write(playbackMessage{
		Time:       state.CurrentTime,
		Enabled:    state.Enabled,
		Inspecting: p.anim.Inspecting(),
		Frame:      state.CurrentFrameIndex,
		Previous:   p.anim.PreviousFrameIndex(),
		Fraction:   p.anim.Fraction(),
		Lines:      encodeSegments(p.segments),
	})
}

func (p *playbackSession) write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[Server] ws write msg error: %v", err)
		return err
	}
	return nil
}

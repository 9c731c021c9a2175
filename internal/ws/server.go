// Package ws serves the controller over HTTP: a JSON command socket and a
// health endpoint.
package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"

	"github.com/coreman2200/funtimes-flipdisc"
	"github.com/coreman2200/funtimes-flipdisc/model"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var ErrUnknownOp = errors.New("unknown op")

// Command is one message on the control socket. Which fields are read
// depends on Op.
type Command struct {
	Op         string              `json:"op"`
	Type       profile.Type        `json:"type,omitempty"` // name or numeric code
	Occurrence int                 `json:"occurrence,omitempty"`
	Disc       int                 `json:"disc,omitempty"` // 0-based
	On         bool                `json:"on,omitempty"`
	Row        int                 `json:"row,omitempty"`
	Col        int                 `json:"col,omitempty"`
	Code       int                 `json:"code,omitempty"`
	Codes      []int               `json:"codes,omitempty"`
	States     []flipdisc.DotState `json:"states,omitempty"`
	DelayMs    *uint8              `json:"delay_ms,omitempty"`
}

type ModuleState struct {
	Position   int    `json:"position"`
	Type       string `json:"type"`
	Occurrence int    `json:"occurrence"`
	Pattern    string `json:"pattern"`
}

// Reply answers every command with the board after it ran.
type Reply struct {
	Op      string        `json:"op"`
	Error   string        `json:"error,omitempty"`
	Driver  string        `json:"driver"`
	Modules []ModuleState `json:"modules"`
	Frames  int           `json:"frames"`
	Cycles  int           `json:"cycles"`
}

type Server struct {
	mu      sync.Mutex
	ctl     *flipdisc.Controller
	driver  string
	preview display.Drawer
	log     zerolog.Logger
	start   time.Time
	up      websocket.Upgrader
}

// NewServer serves ctl. preview, when not nil, is redrawn after every
// command.
func NewServer(ctl *flipdisc.Controller, driver string, preview display.Drawer, log zerolog.Logger) *Server {
	return &Server{
		ctl:     ctl,
		driver:  driver,
		preview: preview,
		log:     log,
		start:   time.Now(),
		up:      websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler routes /control and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return WithCORS(mux)
}

func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.log.Debug().Err(err).Msg("bad control message")
			s.reply(conn, Reply{Op: "", Error: err.Error()})
			continue
		}
		rep := Reply{Op: cmd.Op}
		if err := s.Apply(r, cmd); err != nil {
			s.log.Warn().Err(err).Str("op", cmd.Op).Msg("control")
			rep.Error = err.Error()
		}
		s.reply(conn, rep)
	}
}

// Apply runs one command against the controller.
func (s *Server) Apply(r *http.Request, cmd Command) error {
	c := s.ctl
	var err error
	switch cmd.Op {
	case "flip":
		err = c.Flip(flipdisc.FlipRequest{Type: cmd.Type, Occurrence: cmd.Occurrence, Disc: cmd.Disc, On: cmd.On})
	case "pixel":
		err = c.Matrix(cmd.Type, cmd.Occurrence).Pixel(cmd.Row, cmd.Col, cmd.On)
	case "show":
		switch cmd.Type {
		case profile.D7SEG:
			err = c.Seg7(cmd.Occurrence).Show(cmd.Code)
		default:
			err = c.Matrix(cmd.Type, cmd.Occurrence).Show(cmd.Code)
		}
	case "set":
		err = c.Line(cmd.Type, cmd.Occurrence).Set(cmd.States...)
	case "digits":
		err = c.Digits(cmd.Codes...)
	case "text":
		err = c.Text(cmd.Codes...)
	case "all":
		err = c.All()
	case "clear":
		err = c.Clear()
	case "test":
		err = c.Test()
	case "sweep":
		err = c.Sweep(r.Context())
	case "delay":
		if cmd.DelayMs == nil {
			return fmt.Errorf("delay needs delay_ms")
		}
		c.SetDelay(*cmd.DelayMs)
	default:
		return fmt.Errorf("%q: %w", cmd.Op, ErrUnknownOp)
	}
	s.draw()
	return err
}

func (s *Server) draw() {
	if s.preview == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctl.Board().Draw(s.preview); err != nil {
		s.log.Debug().Err(err).Msg("preview")
	}
}

func (s *Server) reply(conn *websocket.Conn, rep Reply) {
	frames, _ := s.ctl.Frames()
	rep.Driver = s.driver
	rep.Frames = frames
	rep.Cycles = s.ctl.Cycles()
	rep.Modules = Snapshot(s.ctl.Board())
	b, _ := json.Marshal(rep)
	conn.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		s.log.Debug().Err(err).Msg("write reply")
	}
}

// Snapshot lists the occupied modules of b.
func Snapshot(b *model.Board) []ModuleState {
	out := []ModuleState{}
	for _, m := range b.Modules() {
		if m == nil || len(m.Discs) == 0 {
			continue
		}
		out = append(out, ModuleState{
			Position:   m.Index(),
			Type:       m.Type.String(),
			Occurrence: m.Occurrence,
			Pattern:    m.Pattern(),
		})
	}
	return out
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	frames, clears := s.ctl.Frames()
	var chain []string
	for _, sl := range s.ctl.Chain() {
		chain = append(chain, sl.Type.String())
	}
	resp := map[string]any{
		"uptime_s": time.Since(s.start).Seconds(),
		"driver":   s.driver,
		"frames":   frames,
		"clears":   clears,
		"cycles":   s.ctl.Cycles(),
		"delay_ms": s.ctl.Delay(),
		"chain":    chain,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func WithCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}

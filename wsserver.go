package isoloot

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Frame types on the snapshot stream
const (
	FrameCommand  = "command"
	FrameSnapshot = "snapshot"
	FrameResult   = "result"
	FrameError    = "error"
)

// commandFrameSchema is what clients may send
const commandFrameSchema = `{
  "type": "object",
  "required": ["type", "text"],
  "properties": {
    "type": {"const": "command"},
    "text": {"type": "string", "minLength": 1, "maxLength": 512}
  },
  "additionalProperties": false
}`

// CommandFrame carries one prompt line from a client
type CommandFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SnapshotFrame is pushed to clients on every stream interval
type SnapshotFrame struct {
	Type     string   `json:"type"`
	Snapshot Snapshot `json:"snapshot"`
}

// ResultFrame answers a CommandFrame
type ResultFrame struct {
	Type  string   `json:"type"`
	OK    bool     `json:"ok"`
	Lines []string `json:"lines"`
	Error string   `json:"error,omitempty"`
}

// ErrorFrame answers a frame that could not be read
type ErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// defaultReadTimeout is how long a client may stay silent, pongs included,
// before it is dropped
const defaultReadTimeout = 60 * time.Second

// WSServer streams snapshots to browsers and takes commands back
type WSServer struct {
	game   *Game
	log    *log.Logger
	every  time.Duration
	schema *jsonschema.Schema

	readTimeout time.Duration
	pingEvery   time.Duration

	upgrader websocket.Upgrader
}

// NewWSServer makes a stream server pushing a snapshot every interval
func NewWSServer(game *Game, every time.Duration, logger *log.Logger) (*WSServer, error) {
	schema, err := jsonschema.CompileString("command.schema.json", commandFrameSchema)
	if err != nil {
		return nil, err
	}
	if every <= 0 {
		every = 250 * time.Millisecond
	}

	return &WSServer{
		game:   game,
		log:    logger,
		every:  every,
		schema: schema,

		readTimeout: defaultReadTimeout,
		pingEvery:   defaultReadTimeout * 9 / 10,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}, nil
}

// Handler upgrades /ws requests
func (s *WSServer) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID := uuid.New().String()
		s.log.Printf("[%s] stream connected from %v", sessionID, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan interface{}, 8)
		done := make(chan struct{})

		// Writer goroutine.
		go func() {
			defer close(done)
			ticker := time.NewTicker(s.every)
			defer ticker.Stop()
			ping := time.NewTicker(s.pingEvery)
			defer ping.Stop()

			if err := writeJSON(conn, SnapshotFrame{Type: FrameSnapshot, Snapshot: s.game.Snapshot()}); err != nil {
				cancel()
				return
			}

			for {
				var frame interface{}
				select {
				case <-ctx.Done():
					return
				case frame = <-out:
				case <-ticker.C:
					frame = SnapshotFrame{Type: FrameSnapshot, Snapshot: s.game.Snapshot()}
				case <-ping.C:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						cancel()
						return
					}
					continue
				}
				if err := writeJSON(conn, frame); err != nil {
					cancel()
					return
				}
			}
		}()

		// Reader loop. Pongs answer the writer's pings and keep watch-only
		// clients alive.
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		})
		for {
			_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}

			reply := s.handleFrame(sessionID, msg)
			select {
			case out <- reply:
			case <-ctx.Done():
			}
			if ctx.Err() != nil {
				break
			}
		}

		cancel()
		<-done
		s.log.Printf("[%s] stream closed", sessionID)
	}
}

func (s *WSServer) handleFrame(sessionID string, msg []byte) interface{} {
	var raw interface{}
	if err := json.Unmarshal(msg, &raw); err != nil {
		return ErrorFrame{Type: FrameError, Error: "malformed json"}
	}
	if err := s.schema.Validate(raw); err != nil {
		return ErrorFrame{Type: FrameError, Error: err.Error()}
	}

	var frame CommandFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		return ErrorFrame{Type: FrameError, Error: err.Error()}
	}

	items, err := s.game.Submit(frame.Text)
	result := ResultFrame{Type: FrameResult, OK: err == nil, Lines: make([]string, 0, len(items))}
	for _, item := range items {
		result.Lines = append(result.Lines, item.Message)
	}
	if err != nil {
		result.Error = err.Error()
		s.log.Printf("[%s] %q: %v", sessionID, frame.Text, err)
	}
	return result
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}

// ServeWS serves the stream on /ws until the listener fails
func ServeWS(server *WSServer, listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", server.Handler())

	server.log.Printf("Starting snapshot stream on %v", listen)
	return http.ListenAndServe(listen, mux)
}

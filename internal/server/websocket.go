package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zeusync/arena/internal/core/observability/log"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// viewer is one connected browser. Frames are queued on send and written by
// a dedicated goroutine; a slow viewer drops frames instead of stalling the host.
type viewer struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (v *viewer) close() {
	v.once.Do(func() {
		close(v.send)
	})
}

type room struct {
	mu      sync.Mutex
	viewers map[string]*viewer
	max     int
	buffer  int
	logger  log.Log
}

func newRoom(limit, buffer int, logger log.Log) *room {
	if buffer <= 0 {
		buffer = 1
	}
	return &room{viewers: make(map[string]*viewer), max: limit, buffer: buffer, logger: logger}
}

// join registers a viewer with the current frame already queued.
func (r *room) join(conn *websocket.Conn, current []byte) (*viewer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.viewers) >= r.max {
		return nil, ErrMaxViewersReached
	}
	v := &viewer{id: uuid.NewString(), conn: conn, send: make(chan []byte, r.buffer)}
	v.send <- current
	r.viewers[v.id] = v
	return v, nil
}

func (r *room) leave(v *viewer) {
	r.mu.Lock()
	delete(r.viewers, v.id)
	r.mu.Unlock()
	v.close()
}

func (r *room) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.viewers)
}

func (r *room) broadcast(frame []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.viewers {
		select {
		case v.send <- frame:
		default:
			r.logger.Debug("viewer lagging, frame dropped", log.String("viewer", v.id))
		}
	}
}

func (r *room) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.viewers {
		delete(r.viewers, id)
		v.close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	v, err := s.room.join(conn, s.frames.Bytes())
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()), time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	s.logger.Info("viewer joined", log.String("viewer", v.id))

	go s.writeLoop(v)
	s.readLoop(v)
}

// readLoop only watches for the viewer going away.
func (s *Server) readLoop(v *viewer) {
	defer func() {
		s.room.leave(v)
		s.logger.Info("viewer left", log.String("viewer", v.id))
	}()
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(v *viewer) {
	defer v.conn.Close()
	for frame := range v.send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	_ = v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
}

// Package stream pushes store snapshots, anomalies and root causes to
// websocket clients as they change.
package stream

import (
	"net/http"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Message types sent to clients.
const (
	TypeInit       = "init"
	TypeSnapshot   = "snapshot"
	TypeAnomalies  = "anomalies"
	TypeRootCauses = "rootCauses"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope written for every push.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Feed is the part of the monitor the stream reads from.
type Feed interface {
	Snapshot() domain.Snapshot
	WatchSnapshots() (<-chan domain.Snapshot, func())
	WatchAnomalies() (<-chan []domain.Anomaly, func())
	WatchRootCauses() (<-chan []domain.RootCause, func())
}

type Server struct {
	mux  *http.ServeMux
	feed Feed
}

func New(feed Feed) *Server {
	s := &Server{mux: http.NewServeMux(), feed: feed}
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Each client gets its own mailboxes; a slow client only ever sees the
	// latest value of each feed.
	snapshots, stopSnapshots := s.feed.WatchSnapshots()
	defer stopSnapshots()
	anomalies, stopAnomalies := s.feed.WatchAnomalies()
	defer stopAnomalies()
	causes, stopCauses := s.feed.WatchRootCauses()
	defer stopCauses()

	log.Debug().Str("remote", r.RemoteAddr).Msg("stream client connected")
	defer log.Debug().Str("remote", r.RemoteAddr).Msg("stream client disconnected")

	if err := write(conn, Message{Type: TypeInit, Data: s.feed.Snapshot()}); err != nil {
		return
	}

	closed := make(chan struct{})
	go readPump(conn, closed)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		var msg Message
		select {
		case <-closed:
			return
		case snap := <-snapshots:
			msg = Message{Type: TypeSnapshot, Data: snap}
		case list := <-anomalies:
			msg = Message{Type: TypeAnomalies, Data: list}
		case list := <-causes:
			msg = Message{Type: TypeRootCauses, Data: list}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}
		if err := write(conn, msg); err != nil {
			log.Debug().Err(err).Msg("stream write failed")
			return
		}
	}
}

func write(conn *websocket.Conn, msg Message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// readPump discards client frames and signals when the peer goes away.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("stream read error")
			}
			return
		}
	}
}

// internal/watch/hub.go
//
// WebSocket fan-out for game spectators.
// A watcher connects to GET /{id}/watch and receives the game's current
// snapshot immediately, then one snapshot per applied guess until the
// game ends or the watcher disconnects.
//
// Concurrency model:
//   - The watcher maps are owned exclusively by the Run loop; register,
//     unregister, and broadcast all arrive over channels, so no lock is
//     needed and handlers never touch the maps directly.
//   - Each watcher has a buffered send queue; a watcher too slow to
//     drain it is dropped rather than allowed to stall the loop.

package watch

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Spectator frames carry only what a plain GET of the game already
// shows, so connections are accepted from any origin.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// frame is one pre-encoded snapshot on its way to a game's watchers.
type frame struct {
	gameID string
	data   []byte
}

// watcher is one connected spectator.
type watcher struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

// Hub maintains the set of active watchers per game and fans snapshots
// out to them.
type Hub struct {
	log zerolog.Logger

	// Watchers keyed by game ID. Touched only by the Run loop.
	watchers map[string]map[*watcher]bool

	broadcast  chan frame
	register   chan *watcher
	unregister chan *watcher
}

// NewHub creates a hub. Call Run in its own goroutine before serving.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:        log,
		watchers:   make(map[string]map[*watcher]bool),
		broadcast:  make(chan frame),
		register:   make(chan *watcher),
		unregister: make(chan *watcher),
	}
}

// Run is the hub's event loop and sole owner of the watcher maps.
func (h *Hub) Run() {
	for {
		select {
		case w := <-h.register:
			h.addWatcher(w)

		case w := <-h.unregister:
			h.removeWatcher(w)

		case f := <-h.broadcast:
			h.fanOut(f)
		}
	}
}

// Broadcast queues a snapshot for every watcher of its game. Safe to
// call from any goroutine; encoding happens on the caller's side.
func (h *Hub) Broadcast(snap game.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		h.log.Error().Err(err).Str("game_id", snap.ID).Msg("marshal snapshot for watchers")
		return
	}
	h.broadcast <- frame{gameID: snap.ID, data: data}
}

// ServeWS upgrades the request and attaches the peer as a watcher of
// initial's game. The initial snapshot is queued before registration so
// it is always the first frame the watcher sees.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, initial game.Snapshot) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("game_id", initial.ID).Msg("websocket upgrade failed")
		return
	}

	data, err := json.Marshal(initial)
	if err != nil {
		h.log.Error().Err(err).Str("game_id", initial.ID).Msg("marshal initial snapshot")
		conn.Close()
		return
	}

	wt := &watcher{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 16),
		gameID: initial.ID,
	}
	wt.send <- data

	h.register <- wt

	go wt.writePump()
	go wt.readPump()
}

// addWatcher attaches a watcher to its game. Run loop only.
func (h *Hub) addWatcher(w *watcher) {
	if h.watchers[w.gameID] == nil {
		h.watchers[w.gameID] = make(map[*watcher]bool)
	}
	h.watchers[w.gameID][w] = true

	h.log.Debug().
		Str("game_id", w.gameID).
		Int("watchers", len(h.watchers[w.gameID])).
		Msg("watcher joined")
}

// removeWatcher detaches a watcher and drops empty games. Run loop only.
func (h *Hub) removeWatcher(w *watcher) {
	ws, ok := h.watchers[w.gameID]
	if !ok || !ws[w] {
		return
	}
	delete(ws, w)
	close(w.send)
	if len(ws) == 0 {
		delete(h.watchers, w.gameID)
	}

	h.log.Debug().
		Str("game_id", w.gameID).
		Int("watchers", len(ws)).
		Msg("watcher left")
}

// fanOut delivers a frame to every watcher of its game. Run loop only.
func (h *Hub) fanOut(f frame) {
	for w := range h.watchers[f.gameID] {
		select {
		case w.send <- f.data:
		default:
			// Queue full: the watcher is not keeping up.
			h.removeWatcher(w)
		}
	}
}

// readPump discards inbound traffic and keeps the connection alive.
// Spectators have nothing to say; the read side exists for close and
// pong handling.
func (w *watcher) readPump() {
	defer func() {
		w.hub.unregister <- w
		w.conn.Close()
	}()

	w.conn.SetReadLimit(maxMessageSize)
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				w.hub.log.Debug().Err(err).Str("game_id", w.gameID).Msg("watcher read error")
			}
			return
		}
	}
}

// writePump feeds queued frames and pings to the connection.
func (w *watcher) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case data, ok := <-w.send:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				w.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := w.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package watch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/game"
)

func testSnapshot(id, word string) game.Snapshot {
	return game.Snapshot{
		ID:      id,
		Word:    word,
		Guessed: []string{},
		Guesses: 7,
		Status:  game.StatusPlaying,
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.watchers == nil {
		t.Error("watchers map is nil")
	}
	if hub.broadcast == nil {
		t.Error("broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("unregister channel is nil")
	}
}

func TestAddRemoveWatcher(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	w1 := &watcher{hub: hub, gameID: "g1", send: make(chan []byte, 16)}
	w2 := &watcher{hub: hub, gameID: "g1", send: make(chan []byte, 16)}

	hub.addWatcher(w1)
	hub.addWatcher(w2)

	if len(hub.watchers["g1"]) != 2 {
		t.Errorf("expected 2 watchers, got %d", len(hub.watchers["g1"]))
	}

	hub.removeWatcher(w1)
	if len(hub.watchers["g1"]) != 1 {
		t.Errorf("expected 1 watcher after removal, got %d", len(hub.watchers["g1"]))
	}
	if !hub.watchers["g1"][w2] {
		t.Error("w2 should still be registered")
	}

	// Removing the last watcher drops the game entry entirely.
	hub.removeWatcher(w2)
	if _, exists := hub.watchers["g1"]; exists {
		t.Error("game entry should be cleaned up after last watcher leaves")
	}

	// Double removal is a no-op, not a panic on a closed channel.
	hub.removeWatcher(w2)
}

func TestFanOut(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	mine := &watcher{hub: hub, gameID: "g1", send: make(chan []byte, 16)}
	other := &watcher{hub: hub, gameID: "g2", send: make(chan []byte, 16)}
	hub.addWatcher(mine)
	hub.addWatcher(other)

	hub.fanOut(frame{gameID: "g1", data: []byte(`{"id":"g1"}`)})

	select {
	case data := <-mine.send:
		if string(data) != `{"id":"g1"}` {
			t.Errorf("unexpected frame: %s", data)
		}
	default:
		t.Fatal("watcher of g1 received nothing")
	}

	select {
	case data := <-other.send:
		t.Errorf("watcher of g2 received a g1 frame: %s", data)
	default:
	}
}

func TestSlowWatcherEvicted(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	slow := &watcher{hub: hub, gameID: "g1", send: make(chan []byte, 1)}
	slow.send <- []byte("stuck")
	hub.addWatcher(slow)

	hub.fanOut(frame{gameID: "g1", data: []byte("next")})

	if _, exists := hub.watchers["g1"]; exists {
		t.Error("watcher with a full queue should have been evicted")
	}
}

func TestServeWSDeliversSnapshots(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	initial := testSnapshot("ws-game", "***")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, initial)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	// The very first frame is the snapshot taken at connect time.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read initial frame: %v", err)
	}
	var got game.Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal frame: %v", err)
	}
	if got.ID != "ws-game" || got.Word != "***" {
		t.Errorf("unexpected initial snapshot: %+v", got)
	}

	// A broadcast after connect arrives as the next frame.
	update := testSnapshot("ws-game", "C**")
	update.Guessed = []string{"C"}
	hub.Broadcast(update)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read broadcast frame: %v", err)
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal frame: %v", err)
	}
	if got.Word != "C**" || len(got.Guessed) != 1 {
		t.Errorf("unexpected broadcast snapshot: %+v", got)
	}
}

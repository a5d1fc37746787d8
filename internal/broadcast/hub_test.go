package broadcast

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/star-dodge/internal/core"
)

var (
	_ core.Sinks = (*Feed)(nil)
	_ core.Hooks = (*Feed)(nil)
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestFeedStreamsEvents(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 1 })

	feed := hub.Feed("alice")
	feed.OnStart()
	feed.ScoreChanged(10)
	feed.LivesChanged(2)
	feed.OnGameOver(10)
	feed.Leave()

	want := []Event{
		{EventStart, "alice", 0},
		{EventScore, "alice", 10},
		{EventLives, "alice", 2},
		{EventGameOver, "alice", 10},
		{EventLeave, "alice", 0},
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i, w := range want {
		var got Event
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("ReadJSON() #%d failed: %v", i, err)
		}
		if got != w {
			t.Errorf("event %d = %+v, expected %+v", i, got, w)
		}
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 0 })

	// Publishing with no clients is a no-op
	hub.Publish(Event{Type: EventScore, Value: 1})
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	c := &client{send: make(chan []byte, 2)}
	hub.add(c)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Publish(Event{Type: EventScore, Value: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow client")
	}
	if hub.Dropped() != 8 {
		t.Errorf("Dropped() = %d, expected 8", hub.Dropped())
	}
}

func TestCloseRejectsNewClients(t *testing.T) {
	hub := NewHub(nil)
	hub.Close()
	hub.Close()

	if hub.add(&client{send: make(chan []byte, 1)}) {
		t.Error("closed hub accepted a client")
	}
}

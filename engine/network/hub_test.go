package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/1siamBot/fountain/engine/logger"
	"github.com/1siamBot/fountain/engine/metrics"
	"github.com/1siamBot/fountain/engine/particles"
	"github.com/gorilla/websocket"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startHub(t *testing.T) (*Hub, *metrics.Collector, *httptest.Server, context.CancelFunc) {
	t.Helper()
	m := metrics.New()
	hub := NewHub(logger.Discard(), m)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/info", hub.InfoHandler(NewServerInfo("test", 3, particles.DefaultConfig(), 50*time.Millisecond, 0)))
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, m, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub, m, srv, _ := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	waitFor(t, "two clients", func() bool { return hub.ClientCount() == 2 })

	snap := &particles.Snapshot{
		T:         1.5,
		Particles: []particles.Particle{{X: 1, Y: 2, Z: 3, Life: 0.5, Active: true}},
		Glow:      particles.Glow{Pos: [4]float64{0, 0, 4, 1}, Valid: true},
	}
	data, err := NewFrame(7, snap, 0).Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !hub.Broadcast(data) {
		t.Fatal("broadcast on a running hub failed")
	}

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var f Frame
		if err := json.Unmarshal(msg, &f); err != nil {
			t.Fatalf("decode %q: %v", msg, err)
		}
		if f.Seq != 7 || f.Active != 1 || f.Glow == nil || f.Glow[2] != 4 {
			t.Fatalf("frame = %+v", f)
		}
		if f.Particles[0] != [4]float32{1, 2, 3, 0.5} {
			t.Fatalf("particle = %v", f.Particles[0])
		}
	}
	waitFor(t, "message metrics", func() bool { return m.Snapshot()["websocket"].(map[string]interface{})["messages_out"].(int64) == 2 })
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub, m, srv, _ := startHub(t)
	conn := dial(t, srv)
	waitFor(t, "client", func() bool { return hub.ClientCount() == 1 })
	conn.Close()
	waitFor(t, "disconnect", func() bool { return hub.ClientCount() == 0 })
	if got := m.Snapshot()["websocket"].(map[string]interface{})["active_connections"].(int64); got != 0 {
		t.Fatalf("active connections gauge = %d", got)
	}
}

func TestHubStops(t *testing.T) {
	hub, _, srv, cancel := startHub(t)
	conn := dial(t, srv)
	waitFor(t, "client", func() bool { return hub.ClientCount() == 1 })
	cancel()
	waitFor(t, "hub stop", func() bool { return !hub.Broadcast([]byte("x")) })
	if hub.ClientCount() != 0 {
		t.Fatal("clients left after stop")
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to close")
	}
}

func TestInfoHandler(t *testing.T) {
	hub, _, srv, _ := startHub(t)
	dial(t, srv)
	waitFor(t, "client", func() bool { return hub.ClientCount() == 1 })

	resp, err := http.Get(srv.URL + "/info")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var info ServerInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Name != "test" || info.Seed != 3 || info.Capacity != 3000 || info.IntervalMS != 50 || info.Clients != 1 {
		t.Fatalf("info = %+v", info)
	}
}

func TestNewFrameStrides(t *testing.T) {
	snap := &particles.Snapshot{Particles: make([]particles.Particle, 10)}
	for i := range snap.Particles {
		snap.Particles[i] = particles.Particle{X: float64(i), Active: true}
	}
	f := NewFrame(0, snap, 4)
	if f.Active != 10 || len(f.Particles) != 4 {
		t.Fatalf("active=%d sent=%d", f.Active, len(f.Particles))
	}
	want := []float32{0, 2, 5, 7}
	for i, w := range want {
		if f.Particles[i][0] != w {
			t.Fatalf("particle %d x = %v, want %v", i, f.Particles[i][0], w)
		}
	}
	if f.Glow != nil {
		t.Fatal("glow sent before any spawn")
	}
	if all := NewFrame(0, snap, 0); len(all.Particles) != 10 {
		t.Fatalf("unlimited frame sent %d", len(all.Particles))
	}
}

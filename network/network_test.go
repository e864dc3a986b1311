package network

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/game"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.TickInterval = 5 * time.Millisecond
	cfg.FrameInterval = 20 * time.Millisecond
	cfg.AutosaveInterval = time.Hour
	return cfg
}

func startServer(t *testing.T, cfg *Config, store storage.Store) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(cfg, store, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Stop()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		code := 0
		if resp != nil {
			code = resp.StatusCode
		}
		t.Fatalf("dial %s: %v (status %d)", query, err, code)
	}
	return conn
}

// readUntil reads JSON messages until match accepts one
func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if match(m) {
			return m
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, cmd Command) Result {
	t.Helper()
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := readUntil(t, conn, func(m Message) bool { return m.Type == MsgResult && m.Seq == cmd.Seq })
	return *m.Result
}

func TestSessionOverWebsocket(t *testing.T) {
	mem := storage.NewMemoryStore()
	srv, ts := startServer(t, testConfig(), mem)

	conn := dial(t, ts, "?slot=alpha")
	hello := readUntil(t, conn, func(m Message) bool { return m.Type == MsgHello })
	if hello.Hello.Slot != "alpha" || hello.Hello.Resumed || hello.Hello.Session == "" {
		t.Fatalf("hello %+v", hello.Hello)
	}

	if res := send(t, conn, Command{Seq: 1, Op: "state"}); !res.OK || res.Data == nil {
		t.Errorf("state result %+v", res)
	}
	if res := send(t, conn, Command{Seq: 2, Op: "continue"}); res.OK || !strings.Contains(res.Error, game.ErrLevelInProgress.Error()) {
		t.Errorf("continue result %+v", res)
	}
	if res := send(t, conn, Command{Seq: 3, Op: "warp"}); res.OK || !strings.Contains(res.Error, "unknown command") {
		t.Errorf("unknown op result %+v", res)
	}
	if res := send(t, conn, Command{Seq: 4, Op: "jump", Index: 7}); !res.OK || res.Data != float64(1) {
		t.Errorf("jump result %+v", res)
	}

	frame := readUntil(t, conn, func(m Message) bool { return m.Type == MsgFrame })
	if frame.Frame.Field.W <= 0 || frame.Frame.HUD.Stage != 1 {
		t.Errorf("frame %+v", frame.Frame)
	}

	conn.Close()
	srv.Stop()

	data, err := mem.Load(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("no final save: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("saved document is not json: %s", data)
	}
}

func TestMalformedCommandGetsError(t *testing.T) {
	_, ts := startServer(t, testConfig(), storage.NewMemoryStore())
	conn := dial(t, ts, "")
	defer conn.Close()
	readUntil(t, conn, func(m Message) bool { return m.Type == MsgHello })

	conn.WriteMessage(websocket.TextMessage, []byte(`{"seq":9}`))
	m := readUntil(t, conn, func(m Message) bool { return m.Type == MsgResult })
	if m.Result.OK || !strings.Contains(m.Result.Error, "missing op") {
		t.Errorf("result %+v", m.Result)
	}
}

func TestResumeSlot(t *testing.T) {
	mem := storage.NewMemoryStore()
	p := state.NewPlayer()
	p.Bits = 777
	doc, _ := state.Marshal(&p)
	mem.Save(context.Background(), "beta", doc)

	_, ts := startServer(t, testConfig(), mem)
	conn := dial(t, ts, "?slot=beta")
	defer conn.Close()

	hello := readUntil(t, conn, func(m Message) bool { return m.Type == MsgHello })
	if !hello.Hello.Resumed {
		t.Fatal("slot not resumed")
	}
	res := send(t, conn, Command{Seq: 1, Op: "state"})
	player, ok := res.Data.(map[string]any)
	if !ok || player["bits"] != float64(777) {
		t.Errorf("state %+v", res.Data)
	}
}

func TestMsgpackCodec(t *testing.T) {
	_, ts := startServer(t, testConfig(), storage.NewMemoryStore())
	conn := dial(t, ts, "?codec=msgpack")
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	frameType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if frameType != websocket.BinaryMessage {
		t.Fatalf("frame type %d", frameType)
	}
	var m Message
	if err := msgpack.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Type != MsgHello || m.Hello == nil {
		t.Errorf("first message %+v", m)
	}

	// Binary commands are msgpack too
	cmd, _ := msgpack.Marshal(&Command{Seq: 5, Op: "stats"})
	conn.WriteMessage(websocket.BinaryMessage, cmd)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		var m Message
		msgpack.Unmarshal(data, &m)
		if m.Type == MsgResult && m.Seq == 5 {
			if !m.Result.OK {
				t.Errorf("stats result %+v", m.Result)
			}
			return
		}
	}
}

func TestRejectedUpgrades(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSessions = 1
	_, ts := startServer(t, cfg, storage.NewMemoryStore())

	tests := []struct {
		query string
		code  int
	}{
		{"?slot=../../etc", http.StatusBadRequest},
		{"?codec=xml", http.StatusBadRequest},
	}
	for _, tt := range tests {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + tt.query
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil || resp == nil || resp.StatusCode != tt.code {
			t.Errorf("%s: err %v resp %v", tt.query, err, resp)
		}
	}

	first := dial(t, ts, "")
	defer first.Close()
	readUntil(t, first, func(m Message) bool { return m.Type == MsgHello })

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil || resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("second session: err %v resp %v", err, resp)
	}
}

func TestHTTPEndpoints(t *testing.T) {
	mem := storage.NewMemoryStore()
	ctx := context.Background()
	mem.Save(ctx, "main", []byte(`{"bits":5}`))
	mem.AppendHistory(ctx, "main", storage.Snapshot{Stage: 3})
	_, ts := startServer(t, testConfig(), mem)

	get := func(path string) (*http.Response, []byte) {
		t.Helper()
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		return resp, body
	}

	resp, body := get("/status")
	var st struct {
		Peers   int            `json:"peers"`
		Metrics map[string]any `json:"metrics"`
	}
	if resp.StatusCode != http.StatusOK || json.Unmarshal(body, &st) != nil {
		t.Fatalf("status %d %s", resp.StatusCode, body)
	}

	if resp, body = get("/saves/main"); resp.StatusCode != http.StatusOK || string(body) != `{"bits":5}` {
		t.Errorf("save %d %s", resp.StatusCode, body)
	}
	if resp, _ = get("/saves/absent"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("absent save %d", resp.StatusCode)
	}

	resp, body = get("/saves")
	var slots []storage.Slot
	if json.Unmarshal(body, &slots) != nil || len(slots) != 1 || slots[0].Name != "main" {
		t.Errorf("slots %s", body)
	}

	resp, body = get("/saves/main/history")
	var hist []storage.Snapshot
	if json.Unmarshal(body, &hist) != nil || len(hist) != 1 || hist[0].Stage != 3 {
		t.Errorf("history %s", body)
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	s := game.New(game.Config{Seed: 3})

	tests := []struct {
		cmd     Command
		wantErr error
	}{
		{Command{Op: "pointer", X: 10, Y: 10, Inside: true}, nil},
		{Command{Op: "resolve"}, nil},
		{Command{Op: "claim", Kind: "everything"}, ErrBadArgument},
		{Command{Op: "deposit", Kind: "bank"}, ErrBadArgument},
		{Command{Op: "save"}, game.ErrNoStore},
		{Command{Op: "teleport"}, ErrUnknownCommand},
		{Command{Op: "catalog"}, nil},
		{Command{Op: "goals"}, nil},
		{Command{Op: "new-game"}, nil},
	}
	for _, tt := range tests {
		_, err := Apply(ctx, s, tt.cmd)
		if tt.wantErr == nil && err != nil {
			t.Errorf("%s: %v", tt.cmd.Op, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err %v, want %v", tt.cmd.Op, err, tt.wantErr)
		}
	}

	if got, _ := Apply(ctx, s, Command{Op: "resolve"}); got != "none" {
		t.Errorf("resolve without a check = %v", got)
	}
}

func TestDecodeCommand(t *testing.T) {
	cmd, err := DecodeCommand(websocket.TextMessage, []byte(`{"seq":2,"op":"purchase","id":"damage-v1"}`))
	if err != nil || cmd.Op != "purchase" || cmd.ID != "damage-v1" || cmd.Seq != 2 {
		t.Errorf("json: %+v %v", cmd, err)
	}
	if _, err := DecodeCommand(websocket.TextMessage, []byte(`not json`)); err == nil {
		t.Error("expected error for garbage")
	}
	if _, err := CodecFor("yaml"); !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("CodecFor(yaml) = %v", err)
	}
}

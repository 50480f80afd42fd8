package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/clab/engine"
	"github.com/minaorangina/clab/protocol"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const wsReadTimeout = 2 * time.Second

// wireMessage is an OutboundMessage as a client sees it
type wireMessage struct {
	Message protocol.Msg    `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestGameServer(t *testing.T, origins ...string) *GameServer {
	t.Helper()

	log := zaptest.NewLogger(t)
	return NewServer(Opts{
		Engine:         engine.New(engine.Opts{Logger: log}),
		AllowedOrigins: origins,
		Logger:         log,
	})
}

// newTestServer starts and returns a new server.
// The caller must call close to shut it down.
func newTestServer(t *testing.T) (*httptest.Server, *GameServer) {
	t.Helper()

	gs := newTestGameServer(t)
	return httptest.NewServer(gs), gs
}

func makeWSUrl(serverURL string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		var body []byte
		code := 0
		if resp != nil {
			body, _ = io.ReadAll(resp.Body)
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}
	if ws == nil {
		t.Fatal("unexpected nil websocket conn")
	}

	return ws
}

func mustReadMessage(t *testing.T, ws *websocket.Conn) wireMessage {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(wsReadTimeout))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)

	var msg wireMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func mustReadData(t *testing.T, ws *websocket.Conn, want protocol.Msg, into interface{}) {
	t.Helper()

	msg := mustReadMessage(t, ws)
	require.Equal(t, want, msg.Message)
	require.NoError(t, json.Unmarshal(msg.Data, into))
}

func mustSend(t *testing.T, ws *websocket.Conn, cmd protocol.Cmd, data protocol.ClientData) {
	t.Helper()

	msg, err := protocol.NewInboundMessage(cmd, data)
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(msg))
}

// mustConnect dials the server and returns the connection with its client id
func mustConnect(t *testing.T, serverURL string) (*websocket.Conn, string) {
	t.Helper()

	ws := mustDialWS(t, makeWSUrl(serverURL))
	var data protocol.ConnectionData
	mustReadData(t, ws, protocol.SuccessfulConnection, &data)
	require.NotEmpty(t, data.ID)
	return ws, data.ID
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func newGetRequest(path string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, path, nil)
	return request
}

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(enableCORS bool) (*httptest.Server, string) {
	handler := NewWebSocketHandler(enableCORS)
	server := httptest.NewServer(handler)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	return server, wsURL
}

func connectWebSocket(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "should connect to WebSocket")
	return conn
}

func sendJSONRPCRequest(t *testing.T, conn *websocket.Conn, req JSONRPCRequest) {
	err := conn.WriteJSON(req)
	require.NoError(t, err, "should send request")
}

func readJSONRPCResponse(t *testing.T, conn *websocket.Conn) JSONRPCResponse {
	var resp JSONRPCResponse
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	err := conn.ReadJSON(&resp)
	require.NoError(t, err, "should read response")
	return resp
}

func TestWebSocket_PointerStream(t *testing.T) {
	setupRegistry(t)

	server, wsURL := setupTestServer(false)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	sendJSONRPCRequest(t, conn, JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "overlay_start",
		Params:  json.RawMessage(`{"deviceId":"ws-dev","screenWidth":1000,"screenHeight":2000}`),
		ID:      1,
	})
	resp := readJSONRPCResponse(t, conn)
	require.Nil(t, resp.Error)
	assert.Equal(t, 1, int(resp.ID.(float64)))

	steps := []string{
		`{"deviceId":"ws-dev","action":"down","x":0,"y":0,"time":0}`,
		`{"deviceId":"ws-dev","action":"move","x":40,"y":0,"time":30}`,
		`{"deviceId":"ws-dev","action":"up","x":100,"y":-20,"time":90}`,
	}
	var last map[string]interface{}
	for i, params := range steps {
		sendJSONRPCRequest(t, conn, JSONRPCRequest{
			JSONRPC: "2.0",
			Method:  "io_pointer",
			Params:  json.RawMessage(params),
			ID:      i + 2,
		})
		resp := readJSONRPCResponse(t, conn)
		require.Nil(t, resp.Error, "step %d failed: %v", i, resp.Error)
		last = resp.Result.(map[string]interface{})
	}

	assert.Equal(t, "drag", last["gesture"])
	assert.Equal(t, false, last["toggled"])

	sendJSONRPCRequest(t, conn, JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "overlay_state",
		Params:  json.RawMessage(`{"deviceId":"ws-dev"}`),
		ID:      10,
	})
	state := readJSONRPCResponse(t, conn).Result.(map[string]interface{})
	icon := state["icon"].(map[string]interface{})
	assert.Equal(t, float64(100), icon["x"])
	assert.Equal(t, float64(-20), icon["y"])
	assert.Equal(t, false, state["dimmed"])
}

func TestWebSocket_MissingJSONRPCVersion(t *testing.T) {
	server, wsURL := setupTestServer(false)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	sendJSONRPCRequest(t, conn, JSONRPCRequest{Method: "overlay_list", ID: 1})
	resp := readJSONRPCResponse(t, conn)

	require.NotNil(t, resp.Error)
	errMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeInvalidRequest), errMap["code"])
	assert.Equal(t, "'jsonrpc' must be '2.0'", errMap["data"])
}

func TestWebSocket_MissingID(t *testing.T) {
	server, wsURL := setupTestServer(false)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	sendJSONRPCRequest(t, conn, JSONRPCRequest{JSONRPC: "2.0", Method: "overlay_list"})
	resp := readJSONRPCResponse(t, conn)

	require.NotNil(t, resp.Error)
	errMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeInvalidRequest), errMap["code"])
	assert.Equal(t, "'id' field is required", errMap["data"])
}

func TestWebSocket_ShutdownNotSupported(t *testing.T) {
	server, wsURL := setupTestServer(false)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	sendJSONRPCRequest(t, conn, JSONRPCRequest{JSONRPC: "2.0", Method: "server.shutdown", ID: 3})
	resp := readJSONRPCResponse(t, conn)

	require.NotNil(t, resp.Error)
	errMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeMethodNotFound), errMap["code"])
	assert.Equal(t, 3, int(resp.ID.(float64)))
}

func TestWebSocket_MethodNotFound(t *testing.T) {
	server, wsURL := setupTestServer(false)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	sendJSONRPCRequest(t, conn, JSONRPCRequest{JSONRPC: "2.0", Method: "nonexistent", ID: 5})
	resp := readJSONRPCResponse(t, conn)

	require.NotNil(t, resp.Error)
	errMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeMethodNotFound), errMap["code"])
}

func TestWebSocket_InvalidJSON(t *testing.T) {
	server, wsURL := setupTestServer(false)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{invalid`)))
	resp := readJSONRPCResponse(t, conn)

	require.NotNil(t, resp.Error)
	errMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeParseError), errMap["code"])
}

func TestWebSocket_BinaryMessageRejected(t *testing.T) {
	server, wsURL := setupTestServer(false)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte(`{}`)))
	resp := readJSONRPCResponse(t, conn)

	require.NotNil(t, resp.Error)
	errMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeInvalidRequest), errMap["code"])
}

func TestWebSocket_CrossOriginRejected(t *testing.T) {
	server, wsURL := setupTestServer(false)
	defer server.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocket_CrossOriginAllowedWithCORS(t *testing.T) {
	server, wsURL := setupTestServer(true)
	defer server.Close()

	header := http.Header{}
	header.Set("Origin", "http://other.example")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	conn.Close()
}

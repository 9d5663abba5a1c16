package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mobile-next/floatdim/commands"
	"github.com/mobile-next/floatdim/config"
	"github.com/mobile-next/floatdim/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T) {
	t.Helper()

	registry, err := overlay.NewRegistry(4)
	require.NoError(t, err)

	previous := commands.GetRegistry()
	previousConfig := commands.GetConfig()
	commands.SetRegistry(registry)
	commands.SetConfig(config.Default())

	t.Cleanup(func() {
		registry.CleanupAll()
		commands.SetRegistry(previous)
		commands.SetConfig(previousConfig)
	})
}

func postRPC(t *testing.T, url string, body string) JSONRPCResponse {
	t.Helper()

	resp, err := http.Post(url+"/rpc", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp JSONRPCResponse) int {
	t.Helper()
	require.NotNil(t, resp.Error, "expected an error response")
	errMap, ok := resp.Error.(map[string]interface{})
	require.True(t, ok)
	return int(errMap["code"].(float64))
}

func resultMap(t *testing.T, resp JSONRPCResponse) map[string]interface{} {
	t.Helper()
	require.Nil(t, resp.Error, "unexpected error: %v", resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "result should be an object")
	return result
}

// TestRootEndpoint tests that the root endpoint returns status "ok"
func TestRootEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))

	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "floatdim", data["name"])
}

// TestRPCEndpointMethods tests HTTP method handling for /rpc endpoint
func TestRPCEndpointMethods(t *testing.T) {
	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// TestJSONRPCValidation tests JSON-RPC request validation
func TestJSONRPCValidation(t *testing.T) {
	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	tests := []struct {
		name         string
		body         string
		expectedCode int
	}{
		{"invalid json", `{not json`, ErrCodeParseError},
		{"wrong version", `{"jsonrpc":"1.0","method":"overlay_list","id":1}`, ErrCodeInvalidRequest},
		{"missing id", `{"jsonrpc":"2.0","method":"overlay_list"}`, ErrCodeInvalidRequest},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, ErrCodeInvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","method":"nope","id":1}`, ErrCodeMethodNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postRPC(t, srv.URL, tt.body)
			assert.Equal(t, "2.0", resp.JSONRPC)
			assert.Equal(t, tt.expectedCode, errorCode(t, resp))
		})
	}
}

func TestRequiredParams(t *testing.T) {
	setupRegistry(t)

	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	for _, method := range []string{"overlay_start", "overlay_stop", "overlay_state", "io_pointer", "dim_tap", "close_activate", "place_close"} {
		t.Run(method, func(t *testing.T) {
			resp := postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"`+method+`","id":7}`)
			assert.Equal(t, ErrCodeServerError, errorCode(t, resp))
			assert.Equal(t, float64(7), resp.ID)
		})
	}
}

func TestPointerRequiresCoordinates(t *testing.T) {
	setupRegistry(t)

	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"overlay_start","params":{"deviceId":"dev"},"id":1}`)

	resp := postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"io_pointer","params":{"deviceId":"dev","action":"down","x":0,"y":0},"id":2}`)
	require.Equal(t, ErrCodeServerError, errorCode(t, resp))
	errMap := resp.Error.(map[string]interface{})
	assert.Equal(t, "'time' is required", errMap["data"])
}

func TestTapOverRPC(t *testing.T) {
	setupRegistry(t)

	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	started := resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"overlay_start","params":{"deviceId":"dev","screenWidth":1000,"screenHeight":2000},"id":1}`))
	assert.NotEmpty(t, started["overlayId"])
	assert.NotEmpty(t, started["commands"])

	down := resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"io_pointer","params":{"deviceId":"dev","action":"down","x":0,"y":0,"time":0},"id":2}`))
	assert.Equal(t, "pending", down["gesture"])

	up := resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"io_pointer","params":{"deviceId":"dev","action":"up","x":2,"y":1,"time":50},"id":3}`))
	assert.Equal(t, "tap", up["gesture"])
	assert.Equal(t, true, up["toggled"])

	state := resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"overlay_state","params":{"deviceId":"dev"},"id":4}`))
	assert.Equal(t, true, state["dimmed"])

	resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"dim_tap","params":{"deviceId":"dev"},"id":5}`))
	state = resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"overlay_state","params":{"deviceId":"dev"},"id":6}`))
	assert.Equal(t, false, state["dimmed"])
}

func TestHoldAndCloseOverRPC(t *testing.T) {
	setupRegistry(t)

	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"overlay_start","params":{"deviceId":"dev"},"id":1}`))
	resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"io_pointer","params":{"deviceId":"dev","action":"down","x":0,"y":0,"time":0},"id":2}`))

	held := resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"io_pointer","params":{"deviceId":"dev","action":"up","x":0,"y":0,"time":700},"id":3}`))
	assert.Equal(t, "hold", held["gesture"])
	assert.Equal(t, false, held["toggled"])

	closed := resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"close_activate","params":{"deviceId":"dev"},"id":4}`))
	assert.Equal(t, true, closed["closed"])

	list := postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"overlay_list","id":5}`)
	require.Nil(t, list.Error)
	assert.Empty(t, list.Result)
}

func TestPlaceCloseOverRPC(t *testing.T) {
	setupRegistry(t)

	srv := httptest.NewServer(NewHandler(false))
	defer srv.Close()

	result := resultMap(t, postRPC(t, srv.URL, `{"jsonrpc":"2.0","method":"place_close","params":{"iconX":-450,"iconY":30,"screenWidth":1000,"iconWidth":170,"closeWidth":92,"padding":14},"id":1}`))
	closePos := result["close"].(map[string]interface{})
	assert.Equal(t, float64(-305), closePos["x"])
	assert.Equal(t, float64(30), closePos["y"])
	assert.Equal(t, "right", result["side"])
}

func TestExecute(t *testing.T) {
	setupRegistry(t)

	result, err := Execute("place_close", json.RawMessage(`{"iconX":0,"iconY":0,"screenWidth":1000,"iconWidth":170,"closeWidth":92,"padding":14}`))
	require.NoError(t, err)
	place := result.(commands.PlaceResponse)
	assert.Equal(t, -145, place.Close.X)

	_, err = Execute("missing", nil)
	assert.Error(t, err)
}

func TestShutdownRequest(t *testing.T) {
	// drain any request left behind by another test
	select {
	case <-shutdownRequests:
	default:
	}

	result, err := Execute("server.shutdown", nil)
	require.NoError(t, err)
	assert.Equal(t, okResponse, result)

	select {
	case <-shutdownRequests:
	case <-time.After(time.Second):
		t.Fatal("shutdown request was not queued")
	}
}

func TestNormalizeListenAddr(t *testing.T) {
	addr, err := NormalizeListenAddr("12100")
	require.NoError(t, err)
	assert.Equal(t, ":12100", addr)

	addr, err = NormalizeListenAddr("localhost:12100")
	require.NoError(t, err)
	assert.Equal(t, "localhost:12100", addr)

	_, err = NormalizeListenAddr("abc")
	assert.Error(t, err)
}

// TestCORSMiddleware tests the CORS middleware functionality
func TestCORSMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	corsHandler := corsMiddleware(testHandler)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{"GET request", "GET", http.StatusTeapot},
		{"POST request", "POST", http.StatusTeapot},
		{"OPTIONS request", "OPTIONS", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			w := httptest.NewRecorder()

			corsHandler.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "POST, GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name         string
		req          JSONRPCRequest
		expectedCode int
	}{
		{"wrong version", JSONRPCRequest{JSONRPC: "1.0", Method: "overlay_list", ID: 1}, ErrCodeInvalidRequest},
		{"missing id", JSONRPCRequest{JSONRPC: "2.0", Method: "overlay_list"}, ErrCodeInvalidRequest},
		{"missing method", JSONRPCRequest{JSONRPC: "2.0", ID: 1}, ErrCodeInvalidRequest},
		{"unknown method", JSONRPCRequest{JSONRPC: "2.0", Method: "screenshot", ID: 1}, ErrCodeMethodNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, rpcErr := validateRequest(tt.req)
			assert.Nil(t, handler)
			require.NotNil(t, rpcErr)
			assert.Equal(t, tt.expectedCode, rpcErr.code)
		})
	}

	handler, rpcErr := validateRequest(JSONRPCRequest{JSONRPC: "2.0", Method: "overlay_list", ID: 1})
	assert.Nil(t, rpcErr)
	assert.NotNil(t, handler)
}

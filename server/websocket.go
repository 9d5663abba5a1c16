package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mobile-next/floatdim/utils"
	"github.com/sirupsen/logrus"
)

// hostConn is one overlay host streaming requests over a websocket.
// Replies are written in request order, but writes are still locked so
// that a reply and a close frame never interleave.
type hostConn struct {
	conn     *websocket.Conn
	log      *logrus.Entry
	writeMu  sync.Mutex
	requests int
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		upgrader.CheckOrigin = isSameOrigin
	}

	return &upgrader
}

// NewWebSocketHandler serves JSON-RPC over a websocket. A remote overlay
// host keeps one connection open and streams pointer events through it.
func NewWebSocketHandler(enableCORS bool) http.Handler {
	upgrader := newUpgrader(enableCORS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			utils.WithField("remote", r.RemoteAddr).Warnf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		host := &hostConn{
			conn: conn,
			log:  utils.WithField("remote", r.RemoteAddr),
		}
		host.serve()
	})
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

func (h *hostConn) serve() {
	h.log.Debug("overlay host connected")

	for {
		messageType, message, err := h.conn.ReadMessage()
		if err != nil {
			h.log.Debugf("overlay host disconnected after %d requests: %v", h.requests, err)
			return
		}

		if messageType != websocket.TextMessage {
			h.reply(nil, nil, invalidRequest("requests must be sent as text frames"))
			continue
		}

		h.requests++
		h.handle(message)
	}
}

func (h *hostConn) handle(message []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		h.reply(nil, nil, errParse)
		return
	}

	// the connection would be torn down before the reply is flushed
	if req.Method == "server.shutdown" {
		h.reply(req.ID, nil, &rpcError{ErrCodeMethodNotFound, "Method not supported", "server.shutdown is only accepted on the HTTP /rpc endpoint"})
		return
	}

	handler, rpcErr := validateRequest(req)
	if rpcErr != nil {
		h.reply(req.ID, nil, rpcErr)
		return
	}

	h.log.Debugf("request %v: %s %s", req.ID, req.Method, string(req.Params))

	result, err := handler(req.Params)
	if err != nil {
		h.log.Warnf("%s failed: %v", req.Method, err)
		h.reply(req.ID, nil, &rpcError{ErrCodeServerError, "Server error", err.Error()})
		return
	}

	h.reply(req.ID, result, nil)
}

func (h *hostConn) reply(id interface{}, result interface{}, rpcErr *rpcError) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}
	if rpcErr != nil {
		response.Error = rpcErr.object()
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if err := h.conn.WriteJSON(response); err != nil {
		h.log.Debugf("failed to write reply to %v: %v", id, err)
	}
}

package server

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/muurk/orderdesk/internal/clipboard"
	"github.com/muurk/orderdesk/internal/dispatch"
	"github.com/muurk/orderdesk/internal/logging"
	"github.com/muurk/orderdesk/internal/order"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 16384

	// How long a disconnected order is kept for its tab to come back
	resumeTTL = 30 * time.Minute

	// Close code sent to a connection whose order was claimed by a newer one.
	// The page does not reconnect after it.
	closeTakenOver = 4001
)

// sessionParam is the query parameter carrying the tab's resume token.
const sessionParam = "session"

// Client to server message types.
const (
	msgUpdate  = "update"
	msgSubmit  = "submit"
	msgDismiss = "dismiss"
)

// Server to client message types.
const (
	msgState = "state"
	msgCopy  = "copy"
	msgOpen  = "open"
	msgError = "error"
)

type clientMessage struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

type stateMessage struct {
	Type    string            `json:"type"`
	Form    order.Form        `json:"form"`
	Errors  map[string]string `json:"errors"`
	Status  order.Status      `json:"status"`
	Brands  []string          `json:"brands"`
	Models  []string          `json:"models"`
	Preview string            `json:"preview"`
	Link    string            `json:"link,omitempty"`
	Mobile  bool              `json:"mobile"`
	Desk    string            `json:"desk,omitempty"`
}

type instructionMessage struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// orderState is the part of a session that outlives its connection.
// Fields other than ctrl and lastLink are guarded by Server.mu; ctrl and
// lastLink belong to the owner's goroutine.
type orderState struct {
	ctrl     *order.Controller
	relay    *relay
	lastLink string

	owner    *session
	released chan struct{}
	lastSeen time.Time
}

func (o *orderState) attach(sess *session) {
	o.owner = sess
	o.released = make(chan struct{})
}

// relay forwards sends to the connection that currently owns the order.
type relay struct {
	d *dispatch.Dispatcher
}

func (r *relay) Send(text string) dispatch.Result {
	return r.d.Send(text)
}

func (s *Server) newOrder() *orderState {
	r := &relay{}
	return &orderState{
		ctrl: order.NewController(order.Options{
			Catalog:   s.config.Catalog,
			Formatter: s.config.Formatter,
			Sender:    r,
		}),
		relay: r,
	}
}

// validToken accepts 8 to 64 characters of [A-Za-z0-9_-].
func validToken(token string) bool {
	if len(token) < 8 || len(token) > 64 {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// session is one browser tab filling in one order.
type session struct {
	conn       *websocket.Conn
	remoteAddr string
	state      *orderState
	ctrl       *order.Controller
	platform   dispatch.Platform
	desk       string

	writeMu sync.Mutex
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", c.Request.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remoteAddr := c.Request.RemoteAddr
	sess := &session{
		conn:       conn,
		remoteAddr: remoteAddr,
		platform:   dispatch.Platform(c.Request.UserAgent()),
		desk:       s.config.Instance,
	}

	token := c.Query(sessionParam)
	if !validToken(token) {
		token = ""
	}
	st, resumed := s.claimOrder(token, sess)
	if resumed {
		logging.LogConnection(remoteAddr, "session_resumed")
	}
	sess.state = st
	sess.ctrl = st.ctrl
	st.relay.d = &dispatch.Dispatcher{
		Link:       s.config.Link,
		Classifier: sess.platform,
		Clipboard:  browserClipboard{sess},
		Opener:     dispatch.OpenerFunc(sess.open),
	}

	s.trackSession(remoteAddr, conn)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.untrackSession(remoteAddr)
		defer s.releaseOrder(st)
		sess.run()
	}()
}

// run owns the controller; every state change happens on this goroutine.
func (sess *session) run() {
	logging.LogConnection(sess.remoteAddr, "session_opened")
	defer func() {
		_ = sess.conn.Close()
		logging.LogConnection(sess.remoteAddr, "session_closed")
	}()

	sess.conn.SetReadLimit(maxMessageSize)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go sess.pingLoop(done)

	if err := sess.sendState(); err != nil {
		return
	}

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Session read failed",
					zap.String("remote_addr", sess.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(sess.remoteAddr, "received", "text", len(data))

		if err := sess.handle(data); err != nil {
			logging.Warn("Session write failed",
				zap.String("remote_addr", sess.remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

func (sess *session) handle(data []byte) error {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return sess.send(instructionMessage{Type: msgError, Message: "malformed message"})
	}

	// The link belongs to the last successful submit and goes stale with
	// any edit, dismiss or failed submit, like the status.
	switch msg.Type {
	case msgUpdate:
		sess.ctrl.UpdateField(order.Field(msg.Field), msg.Value)
		sess.state.lastLink = ""
	case msgSubmit:
		res := sess.ctrl.Submit()
		sess.state.lastLink = ""
		if res.Valid {
			sess.state.lastLink = res.Dispatch.URL
		}
	case msgDismiss:
		sess.ctrl.DismissStatus()
		sess.state.lastLink = ""
	default:
		return sess.send(instructionMessage{Type: msgError, Message: fmt.Sprintf("unknown message type %q", msg.Type)})
	}

	return sess.sendState()
}

func (sess *session) sendState() error {
	return sess.send(stateMessage{
		Type:    msgState,
		Form:    sess.ctrl.Form(),
		Errors:  sess.ctrl.Errors().Messages(),
		Status:  sess.ctrl.Status(),
		Brands:  sess.ctrl.Catalog().Brands(),
		Models:  sess.ctrl.ModelOptions(),
		Preview: sess.ctrl.Preview(),
		Link:    sess.state.lastLink,
		Mobile:  sess.platform.IsMobileClient(),
		Desk:    sess.desk,
	})
}

func (sess *session) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	logging.LogWebSocketMessage(sess.remoteAddr, "sent", "text", len(data))
	return nil
}

// takeOver closes the connection because a newer one claimed its order.
func (sess *session) takeOver() {
	sess.writeMu.Lock()
	_ = sess.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(closeTakenOver, "order opened elsewhere"),
		time.Now().Add(writeWait))
	sess.writeMu.Unlock()
	_ = sess.conn.Close()
}

func (sess *session) open(url string) error {
	return sess.send(instructionMessage{Type: msgOpen, URL: url})
}

func (sess *session) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			sess.writeMu.Lock()
			err := sess.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			sess.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// browserClipboard stages text in the browser: the page copies it through a
// temporary textarea it removes afterwards.
type browserClipboard struct {
	sess *session
}

func (b browserClipboard) Acquire() (clipboard.Stage, error) {
	return browserStage{b.sess}, nil
}

type browserStage struct {
	sess *session
}

func (b browserStage) Write(text string) error {
	return b.sess.send(instructionMessage{Type: msgCopy, Text: text})
}

func (b browserStage) Release() error {
	return nil
}

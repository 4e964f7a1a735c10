package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrUnknownSocket is returned for ids that are not open connections.
var ErrUnknownSocket = errors.New("unknown websocket connection")

const (
	socketDialTimeout  = 15 * time.Second
	socketWriteTimeout = 10 * time.Second
)

// socketMessage is the payload of ws-message events.
type socketMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "text" or "binary"
	Data string `json:"data"`
}

// socketClosed is the payload of ws-closed events.
type socketClosed struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type socketConn struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// SocketManager holds the websocket connections opened on behalf of the UI.
type SocketManager struct {
	emitter Emitter
	dialer  *websocket.Dialer

	mu    sync.Mutex
	conns map[string]*socketConn
	wg    sync.WaitGroup
}

// NewSocketManager returns a manager emitting incoming messages through emitter.
func NewSocketManager(emitter Emitter) *SocketManager {
	return &SocketManager{
		emitter: emitter,
		dialer: &websocket.Dialer{
			HandshakeTimeout: socketDialTimeout,
		},
		conns: make(map[string]*socketConn),
	}
}

// Connect dials rawURL (ws or wss) and returns the connection id.
func (m *SocketManager) Connect(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("websocket url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("websocket url: unsupported scheme %q", u.Scheme)
	}

	dialCtx, cancel := context.WithTimeout(ctx, socketDialTimeout)
	defer cancel()

	conn, resp, err := m.dialer.DialContext(dialCtx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return "", fmt.Errorf("websocket dial %s: %w (status %d)", u.Host, err, resp.StatusCode)
		}
		return "", fmt.Errorf("websocket dial %s: %w", u.Host, err)
	}

	sc := &socketConn{id: uuid.NewString(), conn: conn}
	m.mu.Lock()
	m.conns[sc.id] = sc
	m.mu.Unlock()

	Log.Info("websocket connected", "id", sc.id, "host", u.Host)

	m.wg.Add(1)
	go m.readLoop(sc)
	return sc.id, nil
}

func (m *SocketManager) readLoop(sc *socketConn) {
	defer m.wg.Done()

	reason := "closed"
	for {
		kind, data, err := sc.conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				reason = fmt.Sprintf("closed (%d) %s", ce.Code, ce.Text)
			} else if !m.forget(sc.id) {
				// Closed locally through Close or CloseAll.
				reason = "closed"
			} else {
				reason = err.Error()
			}
			break
		}

		msg := socketMessage{ID: sc.id, Type: "text", Data: string(data)}
		if kind == websocket.BinaryMessage {
			msg.Type = "binary"
		}
		m.emitter.Emit(EventSocketMessage, msg)
	}

	m.forget(sc.id)
	sc.conn.Close()
	Log.Info("websocket closed", "id", sc.id, "reason", reason)
	m.emitter.Emit(EventSocketClosed, socketClosed{ID: sc.id, Reason: reason})
}

// forget drops id from the table and reports whether it was present.
func (m *SocketManager) forget(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.conns[id]
	delete(m.conns, id)
	return ok
}

func (m *SocketManager) lookup(id string) (*socketConn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.conns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSocket, id)
	}
	return sc, nil
}

// Send writes a text message on connection id.
func (m *SocketManager) Send(id, text string) error {
	sc, err := m.lookup(id)
	if err != nil {
		return err
	}

	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	sc.conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout))
	if err := sc.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("websocket send: %w", err)
	}
	return nil
}

// Close sends a close frame on connection id and closes it.
func (m *SocketManager) Close(id string) error {
	sc, err := m.lookup(id)
	if err != nil {
		return err
	}
	m.forget(id)
	m.closeConn(sc)
	return nil
}

func (m *SocketManager) closeConn(sc *socketConn) {
	sc.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := sc.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		Log.Debug("websocket close frame failed", "id", sc.id, "error", err)
	}
	sc.writeMu.Unlock()
	sc.conn.Close()
}

// Open returns the number of open connections.
func (m *SocketManager) Open() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// CloseAll closes every connection and waits for the readers to finish.
func (m *SocketManager) CloseAll() {
	m.mu.Lock()
	conns := make([]*socketConn, 0, len(m.conns))
	for id, sc := range m.conns {
		conns = append(conns, sc)
		delete(m.conns, id)
	}
	m.mu.Unlock()

	for _, sc := range conns {
		m.closeConn(sc)
	}
	m.wg.Wait()
}

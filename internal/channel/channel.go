package channel

import (
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

// State represents the connection state of the notification channel.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Channel maintains one long-lived push connection keyed by the current
// bearer token. Inbound payloads are opaque: the only contract is that a
// change may have occurred, so the correct handler response is always a
// full resynchronization.
//
// On read error or close the channel schedules exactly one reconnect
// attempt after a fixed delay, reusing the latest known token. An explicit
// Close is terminal: it cancels any pending reconnect and nothing fires
// afterwards until Open is called again.
type Channel struct {
	endpoint       string
	reconnectDelay time.Duration
	dialer         *websocket.Dialer

	onSignal func(payload string)
	onError  func(err error)

	mu             sync.Mutex
	state          State
	conn           *websocket.Conn
	reconnectTimer *time.Timer
	closed         bool
	token          string
	generation     int
}

// Option configures a Channel.
type Option func(*Channel)

// WithReconnectDelay overrides the fixed delay between a disconnect and the
// reconnect attempt.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Channel) {
		c.reconnectDelay = d
	}
}

// WithHandshakeTimeout overrides the websocket handshake timeout.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Channel) {
		c.dialer.HandshakeTimeout = d
	}
}

// New creates a channel for the given websocket endpoint.
func New(endpoint string, opts ...Option) *Channel {
	c := &Channel{
		endpoint:       endpoint,
		reconnectDelay: 5 * time.Second,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		state:  StateDisconnected,
		closed: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSignal registers the callback invoked for every inbound payload.
// Must be set before Open.
func (c *Channel) OnSignal(fn func(payload string)) {
	c.onSignal = fn
}

// OnError registers an optional callback for transport failures. Every
// reported error is recoverable; a reconnect is already scheduled when the
// callback runs.
func (c *Channel) OnError(fn func(err error)) {
	c.onError = fn
}

// Open connects with the given token. Call Close first when switching
// tokens; at most one live connection exists at a time.
func (c *Channel) Open(token string) error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return errors.NewChannelError("open", nil).WithContext("reason", "already connected")
	}
	c.closed = false
	c.token = token
	c.state = StateConnecting
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	return c.connect(token, generation)
}

// connect dials the endpoint and starts the read loop. A dial failure
// schedules a reconnect: transport errors never end the channel's life.
func (c *Channel) connect(token string, generation int) error {
	conn, _, err := c.dialer.Dial(c.endpointWithToken(token), nil)

	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return nil
	}

	if err != nil {
		c.state = StateDisconnected
		c.scheduleReconnectLocked()
		c.mu.Unlock()

		channelErr := errors.NewChannelError("dial", err)
		c.reportError(channelErr)
		return channelErr
	}

	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()

	logging.Debugf("channel: connected to %s\n", c.endpoint)
	go c.readLoop(conn, generation)
	return nil
}

// readLoop consumes inbound messages until the transport fails or closes.
func (c *Channel) readLoop(conn *websocket.Conn, generation int) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.handleDisconnect(generation, err)
			return
		}
		logging.Debugf("channel: signal received: %s\n", string(message))
		if c.onSignal != nil {
			c.onSignal(string(message))
		}
	}
}

// handleDisconnect transitions to Disconnected and schedules the single
// reconnect attempt, unless the channel was explicitly closed.
func (c *Channel) handleDisconnect(generation int, cause error) {
	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		return
	}

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.state = StateDisconnected
	c.scheduleReconnectLocked()
	c.mu.Unlock()

	if !websocket.IsCloseError(cause, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.reportError(errors.NewChannelError("read", cause))
	}
}

// scheduleReconnectLocked arms the reconnect timer. At most one pending
// timer exists; an already armed timer is left alone. Caller holds c.mu.
func (c *Channel) scheduleReconnectLocked() {
	if c.reconnectTimer != nil {
		return
	}

	c.reconnectTimer = time.AfterFunc(c.reconnectDelay, func() {
		c.mu.Lock()
		c.reconnectTimer = nil
		if c.closed || c.conn != nil {
			c.mu.Unlock()
			return
		}
		c.state = StateConnecting
		c.generation++
		token := c.token
		generation := c.generation
		c.mu.Unlock()

		logging.Debugln("channel: attempting reconnect")
		c.connect(token, generation)
	})
}

// Close tears down the transport and cancels any pending reconnect.
// Idempotent; the channel stays down until the next Open.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	c.state = StateDisconnected

	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HasPendingReconnect reports whether a reconnect attempt is armed.
func (c *Channel) HasPendingReconnect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnectTimer != nil
}

func (c *Channel) endpointWithToken(token string) string {
	return c.endpoint + "?token=" + url.QueryEscape(token)
}

func (c *Channel) reportError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}

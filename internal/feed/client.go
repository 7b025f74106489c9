package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeusync/arena/internal/core/observability/log"
)

// Envelope is the JSON frame the state-sync server sends.
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ClientConfig holds websocket feed settings.
type ClientConfig struct {
	URL              string        `yaml:"url"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	MaxMessageSize   int64         `yaml:"max_message_size"`
	Header           http.Header   `yaml:"-"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		URL:              "ws://127.0.0.1:8080/ws",
		HandshakeTimeout: 10 * time.Second,
		MaxMessageSize:   1024 * 1024, // 1MB
	}
}

// Client reads state pushes from a websocket and forwards them to a Sink.
// It makes a single connection attempt; reconnecting is up to the caller.
type Client struct {
	config ClientConfig
	sink   Sink
	logger log.Log
	dialer *websocket.Dialer
}

func NewClient(config ClientConfig, sink Sink, logger log.Log) *Client {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Client{
		config: config,
		sink:   sink,
		logger: logger.With(log.String("component", "feed"), log.String("url", config.URL)),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: config.HandshakeTimeout,
		},
	}
}

// Run connects and consumes messages until ctx ends or the server closes the
// connection. Malformed messages are logged and skipped.
func (c *Client) Run(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.config.URL, c.config.Header)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDialFailed, err)
	}
	defer conn.Close()
	if c.config.MaxMessageSize > 0 {
		conn.SetReadLimit(c.config.MaxMessageSize)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	c.logger.Info("feed connected")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("feed closed")
				return nil
			}
			return fmt.Errorf("feed read: %w", err)
		}
		if err = c.Handle(data); err != nil {
			c.logger.Warn("feed message dropped", log.Error(err))
		}
	}
}

// Handle decodes one JSON envelope and dispatches it.
func (c *Client) Handle(data []byte) error {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return dispatch(c.sink, env.Type, func(v any) error {
		if len(env.Data) == 0 {
			return errors.New("empty data")
		}
		return json.Unmarshal(env.Data, v)
	})
}

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"PaisaPulse/internal/domain/models"
	drepo "PaisaPulse/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a MessageStream backed by the SMS gateway WebSocket feed.
type Client struct {
	apiKey         string
	websocketURL   string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new gateway MessageStream.
func New(apiKey, websocketURL string, reconnectDelay, pingInterval time.Duration) drepo.MessageStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("gateway connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("gateway: connected")
	return nil
}

// Subscribe opts into the notification feed.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("gateway not connected")
	}
	msg := map[string]string{"type": "subscribe", "channel": "messages"}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("subscribe messages: %w", err)
	}
	log.Printf("gateway: subscribed messages")
	return nil
}

type gwNotification struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
	TS     int64  `json:"ts"` // ms
}

type gwMessage struct {
	Type string           `json:"type"`
	Data []gwNotification `json:"data"`
}

// Read streams inbound notifications and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.InboundMessage, <-chan error) {
	msgs := make(chan *models.InboundMessage, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(msgs)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("gateway conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("gateway read: %w", err)
					return
				}
				var m gwMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-message frames
					continue
				}
				if m.Type != "message" {
					continue
				}
				for _, d := range m.Data {
					var ts time.Time
					if d.TS > 0 {
						ts = time.Unix(d.TS/1000, 0)
					}
					im := &models.InboundMessage{UserID: d.UserID, Text: d.Text, Timestamp: ts}
					select {
					case msgs <- im:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return msgs, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }

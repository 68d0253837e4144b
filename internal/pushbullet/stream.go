package pushbullet

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/websocket"

	"github.com/quantmind-br/jesse/internal/utils"
)

// DefaultStreamURL is the realtime event stream; the API key is appended
const DefaultStreamURL = "wss://stream.pushbullet.com/websocket/"

// Stream message types
const (
	MessageNop    = "nop"
	MessageTickle = "tickle"
	MessagePush   = "push"
)

// SubtypePush is the tickle subtype announcing changed pushes
const SubtypePush = "push"

// DefaultReadTimeout is how long the stream may stay silent; the server sends a nop every 30s
const DefaultReadTimeout = 90 * time.Second

// Message is one event received on the stream
type Message struct {
	Type    string          `json:"type"`
	Subtype string          `json:"subtype,omitempty"`
	Push    json.RawMessage `json:"push,omitempty"`
}

// StreamOptions contains options for creating a Stream
type StreamOptions struct {
	URL    string
	Origin string
	// ReadTimeout forces a reconnect when no message arrives in time
	ReadTimeout time.Duration
	// ReconnectInterval is the first wait after a dropped connection
	ReconnectInterval time.Duration
	// MaxReconnectInterval caps the wait between reconnect attempts
	MaxReconnectInterval time.Duration
	Logger               *utils.Logger
}

// Stream delivers realtime account events, reconnecting until its context ends
type Stream struct {
	url          string
	origin       string
	readTimeout  time.Duration
	reconnect    time.Duration
	maxReconnect time.Duration
	logger       *utils.Logger
}

// NewStream creates a Stream for apiKey
func NewStream(apiKey string, opts StreamOptions) *Stream {
	if opts.URL == "" {
		opts.URL = DefaultStreamURL
	}
	if opts.Origin == "" {
		opts.Origin = "https://www.pushbullet.com/"
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = time.Second
	}
	if opts.MaxReconnectInterval <= 0 {
		opts.MaxReconnectInterval = time.Minute
	}

	return &Stream{
		url:          opts.URL + apiKey,
		origin:       opts.Origin,
		readTimeout:  opts.ReadTimeout,
		reconnect:    opts.ReconnectInterval,
		maxReconnect: opts.MaxReconnectInterval,
		logger:       opts.Logger.OrNop().WithComponent("stream"),
	}
}

// Run reads messages and passes them to handler until ctx is done. Dropped
// connections are re-established with exponential backoff. Run returns the
// context error.
func (s *Stream) Run(ctx context.Context, handler func(Message)) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.reconnect
	b.MaxInterval = s.maxReconnect
	b.MaxElapsedTime = 0

	operation := func() error {
		err := s.session(ctx, b, handler)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn().Err(err).Dur("retry_in", wait).Msg("Stream disconnected")
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// session holds one connection open until it fails; it always returns an error
func (s *Stream) session(ctx context.Context, b backoff.BackOff, handler func(Message)) error {
	config, err := websocket.NewConfig(s.url, s.origin)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("stream config: %w", err))
	}

	ws, err := config.DialContext(ctx)
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer ws.Close()

	stop := context.AfterFunc(ctx, func() { _ = ws.Close() })
	defer stop()

	s.logger.Info().Msg("Stream connected")

	for {
		if err := ws.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			return err
		}

		var msg Message
		if err := websocket.JSON.Receive(ws, &msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read stream: %w", err)
		}
		b.Reset()

		if msg.Type == MessageNop {
			continue
		}
		s.logger.Debug().Str("type", msg.Type).Str("subtype", msg.Subtype).Msg("Stream message")
		handler(msg)
	}
}

// IsPushTickle reports whether msg announces new or changed pushes
func (m Message) IsPushTickle() bool {
	return m.Type == MessageTickle && m.Subtype == SubtypePush
}

package pushbullet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/utils"
	"github.com/quantmind-br/jesse/pkg/version"
)

// DefaultBaseURL is the Pushbullet REST endpoint
const DefaultBaseURL = "https://api.pushbullet.com/v2"

// DefaultTimeout bounds a single REST call
const DefaultTimeout = 30 * time.Second

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Retry      RetryPolicy
	Logger     *utils.Logger
}

// Client is a Pushbullet REST API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
	logger     *utils.Logger
}

// NewClient creates a Client authenticated with apiKey
func NewClient(apiKey string, opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		retry:      opts.Retry,
		logger:     opts.Logger.OrNop().WithComponent("pushbullet"),
	}
}

// Devices lists the active devices of the account
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var devices []Device
	cursor := ""
	for {
		q := url.Values{"active": {"true"}}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page struct {
			Devices []Device `json:"devices"`
			Cursor  string   `json:"cursor"`
		}
		if err := c.do(ctx, http.MethodGet, "/devices", q, nil, &page); err != nil {
			return nil, err
		}
		devices = append(devices, page.Devices...)

		if page.Cursor == "" {
			return devices, nil
		}
		cursor = page.Cursor
	}
}

// FindDevice returns the active device with the given nickname
func (c *Client) FindDevice(ctx context.Context, nickname string) (*Device, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].Nickname == nickname {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrDeviceNotFound, nickname)
}

// CreateDevice registers a new device
func (c *Client) CreateDevice(ctx context.Context, nickname string, update DeviceUpdate) (*Device, error) {
	update.Nickname = nickname
	if update.Icon == "" {
		update.Icon = "system"
	}

	var device Device
	if err := c.do(ctx, http.MethodPost, "/devices", nil, update, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// EditDevice updates the given fields of a device
func (c *Client) EditDevice(ctx context.Context, iden string, update DeviceUpdate) (*Device, error) {
	var device Device
	if err := c.do(ctx, http.MethodPost, "/devices/"+url.PathEscape(iden), nil, update, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// Pushes lists active pushes modified after the given epoch seconds, newest
// first. A limit of 0 uses the server default.
func (c *Client) Pushes(ctx context.Context, modifiedAfter float64, limit int) ([]Push, error) {
	q := url.Values{"active": {"true"}}
	if modifiedAfter > 0 {
		q.Set("modified_after", formatEpoch(modifiedAfter))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page struct {
		Pushes []Push `json:"pushes"`
	}
	if err := c.do(ctx, http.MethodGet, "/pushes", q, nil, &page); err != nil {
		return nil, err
	}
	return page.Pushes, nil
}

// PushNote sends a note to a single device
func (c *Client) PushNote(ctx context.Context, title, body, deviceIden string) (*Push, error) {
	req := struct {
		Type       string `json:"type"`
		Title      string `json:"title"`
		Body       string `json:"body"`
		DeviceIden string `json:"device_iden,omitempty"`
		GUID       string `json:"guid"`
	}{
		Type:       PushTypeNote,
		Title:      title,
		Body:       body,
		DeviceIden: deviceIden,
		GUID:       uuid.NewString(),
	}

	var push Push
	if err := c.do(ctx, http.MethodPost, "/pushes", nil, req, &push); err != nil {
		return nil, err
	}
	return &push, nil
}

// do performs one API call with retries; the GUID keeps retried pushes idempotent
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	return c.retry.Do(ctx, func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return err
		}
		req.Header.Set("Access-Token", c.apiKey)
		req.Header.Set("User-Agent", version.UserAgent())
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("API call")

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return decodeAPIError(resp)
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
		return nil
	}, func(err error, wait time.Duration) {
		c.logger.Debug().Err(err).Str("path", path).Dur("wait", wait).Msg("Retrying API call")
	})
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&envelope); err == nil {
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

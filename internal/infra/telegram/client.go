package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/capture"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds one request/response round trip. The original
// design imposed none; a hung upload would otherwise stall the cycle.
const DefaultTimeout = 30 * time.Second

// Client talks to the Bot API over plain HTTP. One instance is reused
// across cycles; the underlying transport pools connections.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logrus.Entry
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		log:        logger.Log.WithField("component", "telegram"),
	}
}

// SendPhoto uploads the attachment via POST /bot<token>/sendPhoto and
// returns the raw response body on success.
func (c *Client) SendPhoto(ctx context.Context, cfg delivery.Config, att *capture.Attachment) (string, error) {
	payload, err := EncodePhoto(cfg.ChatID, att)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendPhoto", c.baseURL, cfg.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload.Body))
	if err != nil {
		return "", &delivery.TransportError{Cause: err}
	}
	req.Header.Set("Content-Type", payload.ContentType)

	c.log.Debugf("uploading %s (%d bytes) to chat %s", att.Filename, len(payload.Body), cfg.ChatID)
	return c.do(req)
}

// SendMessage posts a text-only notice via GET /bot<token>/sendMessage.
func (c *Client) SendMessage(ctx context.Context, cfg delivery.Config, text string) error {
	q := url.Values{}
	q.Set("chat_id", cfg.ChatID)
	q.Set("text", text)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage?%s", c.baseURL, cfg.Token, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &delivery.TransportError{Cause: err}
	}

	_, err = c.do(req)
	return err
}

// do executes the request and classifies the answer: 2xx is success,
// any other status a RemoteError, a network fault a TransportError.
// The body is read and closed on every path so the connection is
// returned to the pool even under repeated failed cycles.
func (c *Client) do(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &delivery.TransportError{Cause: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &delivery.RemoteError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if readErr != nil {
		return "", &delivery.TransportError{Cause: readErr}
	}

	// URL is not logged, the path embeds the bot token.
	c.log.Debugf("%s request answered %d", req.Method, resp.StatusCode)
	return string(body), nil
}

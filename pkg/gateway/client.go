// Package gateway is a typed client for the messaging gateway's session API.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

type Client struct {
	httpClient *resty.Client
	timeouts   environments.GatewayConfig
}

func NewClient(cfg environments.GatewayConfig) *Client {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		timeouts:   cfg,
	}
}

// StartSession asks the gateway to start or resume a session and to deliver
// events to webhookURL.
func (c *Client) StartSession(ctx context.Context, baseURL string, req StartRequest) (*StartResult, error) {
	const op = "start session"

	var out StartResult
	status, body, err := c.do(ctx, c.timeouts.StartTimeout, http.MethodPost, baseURL, "/sessions/start", req)
	if err != nil {
		return nil, unreachable(op, err)
	}
	if status != http.StatusOK {
		return nil, badResponse(op, status, body, nil)
	}
	if err := decode(body, &out); err != nil {
		return nil, badResponse(op, status, body, err)
	}
	if out.Status == "" && out.QR == "" {
		return nil, badResponse(op, status, body, errors.New("neither status nor qr present"))
	}

	return &out, nil
}

// SendMessage delivers a text or media message. Gateway-side rejections come
// back as a result with Status "error"; only transport and decoding failures
// are returned as errors.
func (c *Client) SendMessage(ctx context.Context, baseURL string, req SendRequest) (*SendResult, error) {
	const op = "send message"

	startTime := time.Now()
	status, body, err := c.do(ctx, c.timeouts.SendTimeout, http.MethodPost, baseURL, "/sessions/send", req)
	if err != nil {
		return nil, unreachable(op, err)
	}

	logger.Debugf("Gateway send for session %s completed in %v (status: %d)", req.SessionID, time.Since(startTime), status)

	var out SendResult
	if err := decode(body, &out); err != nil {
		return nil, badResponse(op, status, body, err)
	}
	out.HTTPStatus = status

	switch {
	case status >= 200 && status < 300:
		if out.Status != "sent" && out.Status != "error" {
			return nil, badResponse(op, status, body, fmt.Errorf("unexpected status %q", out.Status))
		}
		if out.Status == "error" && out.Error == "" {
			out.Error = "gateway reported an error"
		}
	default:
		if out.Error == "" {
			return nil, badResponse(op, status, body, errors.New("error response without message"))
		}
		out.Status = "error"
	}

	return &out, nil
}

// QueryStatus reads the gateway's live view of a session.
func (c *Client) QueryStatus(ctx context.Context, baseURL, sessionID string) (*StatusResult, error) {
	const op = "query status"

	path := "/sessions/" + url.PathEscape(sessionID) + "/status"
	status, body, err := c.do(ctx, c.timeouts.StatusTimeout, http.MethodGet, baseURL, path, nil)
	if err != nil {
		return nil, unreachable(op, err)
	}
	if status != http.StatusOK {
		return nil, badResponse(op, status, body, nil)
	}

	var out StatusResult
	if err := decode(body, &out); err != nil {
		return nil, badResponse(op, status, body, err)
	}
	if out.Status == "" {
		return nil, badResponse(op, status, body, errors.New("missing status"))
	}

	return &out, nil
}

// ContactInfo returns the gateway's profile data for phone as-is.
func (c *Client) ContactInfo(ctx context.Context, baseURL string, req ContactInfoRequest) (map[string]any, error) {
	const op = "contact info"

	status, body, err := c.do(ctx, c.timeouts.AuxTimeout, http.MethodPost, baseURL, "/sessions/contact-info", req)
	if err != nil {
		return nil, unreachable(op, err)
	}

	out := map[string]any{}
	if err := decode(body, &out); err != nil {
		return nil, badResponse(op, status, body, err)
	}
	if status != http.StatusOK {
		return nil, badResponse(op, status, body, nil)
	}

	return out, nil
}

// EndSession logs the session out on the gateway.
func (c *Client) EndSession(ctx context.Context, baseURL, sessionID string) (*EndResult, error) {
	const op = "end session"

	status, body, err := c.do(ctx, c.timeouts.AuxTimeout, http.MethodDelete, baseURL, "/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, unreachable(op, err)
	}
	if status != http.StatusOK {
		return nil, badResponse(op, status, body, nil)
	}

	var out EndResult
	if err := decode(body, &out); err != nil {
		return nil, badResponse(op, status, body, err)
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method, baseURL, path string, payload any) (int, []byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req := c.httpClient.R().SetContext(ctx)
	if payload != nil {
		req.SetBody(payload)
	}

	resp, err := req.Execute(method, strings.TrimRight(baseURL, "/")+path)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode(), resp.Body(), nil
}

func decode(body []byte, v any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(body, v)
}

package printer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
)

var ErrEmptyDocument = errors.New("renderer returned an empty document")

type RenderRequest struct {
	DocType     string `json:"doctype"`
	Name        string `json:"name"`
	PrintFormat string `json:"format,omitempty"`
	Letterhead  bool   `json:"letterhead"`
}

// HTTPRenderer asks an external print service for a PDF rendition of a
// business document.
type HTTPRenderer struct {
	client  *resty.Client
	baseURL string
	timeout time.Duration
}

func NewHTTPRenderer(cfg environments.PrintConfig) *HTTPRenderer {
	return &HTTPRenderer{
		client:  resty.New(),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		timeout: cfg.Timeout,
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/pdf").
		SetBody(req).
		Post(r.baseURL + "/render")
	if err != nil {
		return nil, fmt.Errorf("failed to render %s %s: %w", req.DocType, req.Name, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("renderer returned status %d for %s %s", resp.StatusCode(), req.DocType, req.Name)
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, ErrEmptyDocument
	}

	return body, nil
}

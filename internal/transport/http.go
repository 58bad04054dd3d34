package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bmwcca/bmwcca-sso/internal/models"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "bmwcca-sso"
)

// FormPoster implements HTTPPoster on top of net/http.
type FormPoster struct {
	httpClient *http.Client
	userAgent  string
}

// NewFormPoster creates a poster with the given request timeout. A zero timeout uses the default.
func NewFormPoster(timeout time.Duration) *FormPoster {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &FormPoster{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
	}
}

// PostForm sends form as an application/x-www-form-urlencoded body and reads the full response.
func (p *FormPoster) PostForm(ctx context.Context, target string, form url.Values) (*models.HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &models.HTTPResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

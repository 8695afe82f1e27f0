// Package remote reads the plain-text metadata endpoints that announce the
// latest, published, and minimum supported versions.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/version"
)

// DefaultMetadataTimeout bounds each metadata request.
const DefaultMetadataTimeout = 10 * time.Second

const maxMetadataBytes = 1 << 20

// UserAgent is sent with every request.
var UserAgent = "stepup"

// Endpoints names the three metadata URLs.
type Endpoints struct {
	Latest  string
	List    string
	Minimum string
}

// Client fetches metadata endpoints. The zero value is not usable; use NewClient.
type Client struct {
	endpoints Endpoints
	http      *http.Client
}

// NewClient returns a Client for endpoints. A nil httpClient gets a client
// bounded by timeout (DefaultMetadataTimeout when zero).
func NewClient(endpoints Endpoints, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = DefaultMetadataTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{endpoints: endpoints, http: httpClient}
}

// Latest returns the announced latest version. An unparseable body yields
// version.Invalid with no error; the raw text is returned for reporting.
func (c *Client) Latest(ctx context.Context) (version.Version, string, error) {
	body, err := c.FetchText(ctx, c.endpoints.Latest)
	if err != nil {
		return version.Invalid, "", err
	}
	raw := strings.TrimSpace(body)
	return version.Parse(raw), raw, nil
}

// VersionList returns the published versions in the order served, with blank
// and unparseable lines dropped.
func (c *Client) VersionList(ctx context.Context) ([]version.Version, error) {
	body, err := c.FetchText(ctx, c.endpoints.List)
	if err != nil {
		return nil, err
	}
	return version.ParseList(body), nil
}

// MinimumSupported returns the minimum supported version. known is false when
// the endpoint is unset, unreachable, or serves an invalid version; that state is
// distinct from the local install being below the minimum.
func (c *Client) MinimumSupported(ctx context.Context) (minimum version.Version, known bool) {
	if strings.TrimSpace(c.endpoints.Minimum) == "" {
		return version.Invalid, false
	}
	body, err := c.FetchText(ctx, c.endpoints.Minimum)
	if err != nil {
		return version.Invalid, false
	}
	v := version.Parse(body)
	return v, v.Valid()
}

// FetchText GETs url and returns its body as text.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf(messages.RemoteCreateRequestFmt, url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", Classify(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &NetworkError{Kind: KindStatus, URL: url, Status: resp.Status}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBytes+1))
	if err != nil {
		return "", Classify(url, err)
	}
	if len(data) > maxMetadataBytes {
		return "", &NetworkError{Kind: KindConnection, URL: url, Err: errors.New(messages.RemoteBodyTooLarge)}
	}
	return string(data), nil
}

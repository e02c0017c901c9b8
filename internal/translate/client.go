// Package translate is the client for the menu recognition and translation
// service: it uploads the session photo and classifies what comes back.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/menu-lens/internal/imaging"
)

const (
	// UploadPath is the endpoint that accepts the photo.
	UploadPath = "/upload"

	// FileField is the multipart field carrying the photo.
	FileField = "file"

	// UploadName is the filename sent with every upload. It never changes, so
	// repeated sends of retaken photos replace each other on the server.
	UploadName = imaging.CurrentName

	// UploadType is the declared media type of the photo part.
	UploadType = "image/jpeg"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	maxResponseBytes = 8 << 20
	maxExcerpt       = 200 // runes
)

// Client uploads photos to the service. It never retries; retry is a user
// decision made at the session level.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for the service at baseURL
// (for example "http://10.0.0.5:8000").
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid service address")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Errorf("invalid service address %q: need http(s)://host[:port]", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Send uploads the photo behind h and returns the parsed result.
//
// All failures are *Error values; see Kind for the classification.
func (c *Client) Send(ctx context.Context, h imaging.Handle) (*Result, error) {
	body, contentType, err := buildUpload(h)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+UploadPath, body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: errors.Wrap(err, "failed to create request")}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	c.logger.Debug("upload started", "request_id", requestID, "photo", h.String(), "bytes", body.Len())

	raw, status, err := c.do(req)
	if err != nil {
		c.logger.Debug("upload failed", "request_id", requestID, "error", err)
		return nil, err
	}
	c.logger.Debug("upload finished", "request_id", requestID, "status", status,
		"duration", time.Since(start), "bytes", len(raw))

	if status < 200 || status > 299 {
		return nil, &Error{Kind: KindServerRejected, StatusCode: status, Message: rejectionMessage(raw)}
	}

	return ParseResponse(raw, c.logger)
}

// Health asks the service root for its status message.
//
// The probe is advisory: callers should log a failure and carry on.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", &Error{Kind: KindTransport, Err: errors.Wrap(err, "failed to create request")}
	}
	req.Header.Set("Accept", "application/json")

	raw, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", &Error{Kind: KindServerRejected, StatusCode: status, Message: rejectionMessage(raw)}
	}

	var hr HealthResponse
	if err := json.Unmarshal(raw, &hr); err != nil {
		return "", &Error{Kind: KindMalformedResponse, Err: errors.Wrap(err, "decode health response")}
	}
	return hr.Message, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &Error{Kind: KindTransport, Err: errors.Wrap(err, "failed to send request")}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, res.StatusCode, &Error{Kind: KindTransport, Err: errors.Wrap(err, "failed to read response")}
	}
	return raw, res.StatusCode, nil
}

// buildUpload encodes the photo as a single-part multipart body.
func buildUpload(h imaging.Handle) (*bytes.Buffer, string, error) {
	f, err := os.Open(h.Ref)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open photo")
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FileField, UploadName))
	header.Set("Content-Type", UploadType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to create form part")
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", errors.Wrap(err, "failed to read photo")
	}
	if err := mw.Close(); err != nil {
		return nil, "", errors.Wrap(err, "failed to finish form")
	}
	return &buf, mw.FormDataContentType(), nil
}

// rejectionMessage pulls a human-readable message out of an error body.
func rejectionMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		for _, s := range []string{body.Error, body.Detail, body.Message} {
			if s != "" {
				return s
			}
		}
	}
	msg := []rune(strings.ToValidUTF8(strings.TrimSpace(string(raw)), "\uFFFD"))
	if len(msg) > maxExcerpt {
		return string(msg[:maxExcerpt]) + "..."
	}
	return string(msg)
}

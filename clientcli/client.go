package clientcli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a bucketgate server.
type Client struct {
	api *resty.Client
	// uploader PUTs to presigned URLs. It deliberately carries no
	// Authorization header: S3 rejects presigned requests that also
	// present one.
	uploader *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout on both underlying clients.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.api.SetTimeout(timeout)
		c.uploader.SetTimeout(timeout)
	}
}

// New creates a new Client for the given profile.
func New(profile *Profile, opts ...Option) (*Client, error) {
	if profile == nil {
		return nil, ErrConfigRequired
	}
	if profile.Token == "" {
		return nil, ErrTokenRequired
	}

	endpoint := strings.TrimSuffix(profile.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := &Client{
		api: resty.New().
			SetBaseURL(endpoint).
			SetAuthToken(profile.Token).
			SetTimeout(DefaultTimeout),
		uploader: resty.New().SetTimeout(DefaultTimeout),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// RequestUploadURL asks the server for a presigned upload URL.
func (c *Client) RequestUploadURL(ctx context.Context, fileName, contentType string) (string, error) {
	var out serverPresignResponse
	var apiErr serverError

	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(map[string]string{"fileName": fileName, "fileType": contentType}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/get-presigned-url")
	if err != nil {
		return "", fmt.Errorf("request upload url: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("request upload url: %s: %s", resp.Status(), apiErr.Error)
	}

	return out.URL, nil
}

// ListFiles fetches the caller's files with fresh download URLs.
func (c *Client) ListFiles(ctx context.Context) ([]FileEntry, error) {
	var out []FileEntry
	var apiErr serverError

	resp, err := c.api.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/list-files")
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list files: %s: %s", resp.Status(), apiErr.Error)
	}

	return out, nil
}

// Upload requests an upload URL for the file and PUTs its content
// there. The content type is detected from the extension when not
// given.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) (UploadResult, error) {
	if opts.LocalPath == "" {
		return UploadResult{}, fmt.Errorf("upload: %w", ErrEmptyPath)
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = filepath.Base(opts.LocalPath)
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileName))
	}

	info, err := os.Stat(opts.LocalPath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("stat %s: %w", opts.LocalPath, err)
	}

	url, err := c.RequestUploadURL(ctx, fileName, contentType)
	if err != nil {
		return UploadResult{}, err
	}

	content, err := os.ReadFile(opts.LocalPath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read %s: %w", opts.LocalPath, err)
	}

	req := c.uploader.R().SetContext(ctx).SetBody(content)
	if contentType != "" {
		// The signature covers the content type; the PUT must repeat it.
		req.SetHeader("Content-Type", contentType)
	}

	resp, err := req.Put(url)
	if err != nil {
		return UploadResult{}, fmt.Errorf("put %s: %w", fileName, err)
	}
	if resp.IsError() {
		return UploadResult{}, fmt.Errorf("put %s: %s", fileName, resp.Status())
	}

	return UploadResult{
		LocalPath:   opts.LocalPath,
		FileName:    fileName,
		ContentType: contentType,
		Size:        info.Size(),
		URL:         url,
	}, nil
}

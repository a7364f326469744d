// Package attachment uploads preview images as comment attachments and
// rewrites attachment:// placeholders in Markdown to the hosted URLs.
package attachment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	oerrors "github.com/previewkit/cli/internal/errors"
)

const (
	// DefaultBaseURL is the attachment upload host.
	DefaultBaseURL = "https://uploads.github.com"

	// DefaultTimeout bounds a single upload request.
	DefaultTimeout = 60 * time.Second

	// MaxAttachmentBytes is the largest file the endpoint accepts (10 MiB).
	MaxAttachmentBytes = 10 * 1024 * 1024

	apiVersion = "2022-11-28"
	userAgent  = "compose-preview-comment-uploader"
)

// urlFields are checked in order for the hosted URL.
var urlFields = []string{"download_url", "browser_download_url", "url"}

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is the upload host. Default: DefaultBaseURL.
	BaseURL string

	// Token is the bearer credential. Required for uploads.
	Token string

	// Owner and Repo identify the target repository.
	Owner string
	Repo  string

	// IssueNumber is the issue or pull request the comment belongs to.
	IssueNumber int

	// Timeout bounds each request when HTTPClient is nil. Default: DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient Doer
}

// Client uploads files to the comment-attachment endpoint.
type Client struct {
	baseURL     string
	token       string
	owner       string
	repo        string
	issueNumber int
	http        Doer
}

// NewClient creates an upload client.
func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	doer := opts.HTTPClient
	if doer == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:     baseURL,
		token:       opts.Token,
		owner:       opts.Owner,
		repo:        opts.Repo,
		issueNumber: opts.IssueNumber,
		http:        doer,
	}
}

// Upload sends the file at path and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	if c.token == "" {
		return "", oerrors.NewValidationError(
			"a GitHub token is required to upload attachments",
			path,
			"Pass --token or set GITHUB_TOKEN",
		)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading attachment %s: %w", path, err)
	}
	if info.Size() > MaxAttachmentBytes {
		return "", tooLarge(path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading attachment %s: %w", path, err)
	}
	// The file may have grown since Stat.
	size := int64(len(data))
	if size > MaxAttachmentBytes {
		return "", tooLarge(path, size)
	}

	name := filepath.Base(path)
	body, contentType, err := multipartBody(name, data)
	if err != nil {
		return "", fmt.Errorf("building upload body for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(name), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", oerrors.NewConnectivityError(
			fmt.Sprintf("uploading %s: %v", path, err),
			map[string]string{"Endpoint": c.baseURL},
			"",
		)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", oerrors.NewConnectivityError(
			fmt.Sprintf("reading upload response for %s: %v", path, err),
			map[string]string{"Endpoint": c.baseURL},
			"",
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		uploadErr := &UploadError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
		if resp.StatusCode == http.StatusUnprocessableEntity && strings.Contains(uploadErr.Body, "Bad Size") {
			uploadErr.Hint = badSizeHint(size)
		}
		return "", uploadErr
	}

	var payload map[string]any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", oerrors.Wrap(oerrors.ErrConnectivity,
			fmt.Sprintf("decoding upload response for %s: %v", path, err))
	}
	for _, key := range urlFields {
		if candidate, ok := payload[key].(string); ok && strings.HasPrefix(candidate, "http") {
			return candidate, nil
		}
	}
	return "", oerrors.Wrap(oerrors.ErrConnectivity,
		fmt.Sprintf("attachment upload response missing URL fields for %s", path))
}

func (c *Client) endpoint(name string) string {
	return fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments/assets?name=%s",
		c.baseURL,
		url.PathEscape(c.owner),
		url.PathEscape(c.repo),
		c.issueNumber,
		strings.ReplaceAll(url.QueryEscape(name), "+", "%20"),
	)
}

// multipartBody frames data as a single "file" part with explicit length
// and binary transfer encoding. The boundary is unique per request.
func multipartBody(name string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	boundary := "----compose-preview-boundary-" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", err
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	header.Set("Content-Type", partContentType(name))
	header.Set("Content-Length", strconv.Itoa(len(data)))
	header.Set("Content-Transfer-Encoding", "binary")

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func partContentType(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func tooLarge(path string, size int64) error {
	return &oerrors.DetailError{
		Type:     "attachment too large",
		Message:  fmt.Sprintf("attachment %s exceeds the comment upload limit: %d bytes > %d bytes", path, size, MaxAttachmentBytes),
		Location: path,
		Hint:     "Downscale the preview image before uploading",
		Cause:    oerrors.ErrValidation,
	}
}

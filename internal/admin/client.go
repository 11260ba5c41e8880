package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Vovarama1992/visus/internal/models"
)

// Client talks to the admin endpoints of the content API. Every call takes
// the Authorization header explicitly; the client itself holds no
// credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the API rooted at baseURL
// (e.g. "http://localhost:8080/api"). timeout <= 0 leaves the transport
// default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) BaseURL() string { return c.baseURL }

// UploadRequest is one file for POST /admin/upload.
type UploadRequest struct {
	Folder     string
	ObjectName string
	Filename   string
	Body       io.Reader
}

// Whoami checks the credentials and returns the username the server saw.
func (c *Client) Whoami(ctx context.Context, auth string) (string, error) {
	var out struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, auth, http.MethodGet, "/admin/session", nil, "", &out); err != nil {
		return "", err
	}
	return out.Username, nil
}

// List fetches the admin collection of kind.
func (c *Client) List(ctx context.Context, auth string, kind Kind) ([]Record, error) {
	path := "/admin/" + kind.Path()

	switch kind {
	case KindDoctor:
		var list []models.Doctor
		if err := c.do(ctx, auth, http.MethodGet, path, nil, "", &list); err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(list))
		for _, d := range list {
			out = append(out, DoctorRecord(d))
		}
		return out, nil
	case KindReview:
		var list []models.Review
		if err := c.do(ctx, auth, http.MethodGet, path, nil, "", &list); err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(list))
		for _, r := range list {
			out = append(out, ReviewRecord(r))
		}
		return out, nil
	case KindMediaDiagnostics, KindMediaInterior:
		var list []models.MediaAsset
		if err := c.do(ctx, auth, http.MethodGet, path, nil, "", &list); err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(list))
		for _, m := range list {
			if m.Category == "" {
				m.Category = kind.Category()
			}
			out = append(out, Record{Kind: kind, Media: &m})
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrValidation, kind)
}

func (c *Client) Create(ctx context.Context, auth string, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.do(ctx, auth, http.MethodPost, "/admin/"+p.Kind().Path(), bytes.NewReader(body), "application/json", nil)
}

// Update replaces record id of the payload's kind.
func (c *Client) Update(ctx context.Context, auth, id string, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	path := "/admin/" + p.Kind().Path() + "/" + url.PathEscape(id)
	return c.do(ctx, auth, http.MethodPut, path, bytes.NewReader(body), "application/json", nil)
}

func (c *Client) Delete(ctx context.Context, auth string, kind Kind, id string) error {
	return c.do(ctx, auth, http.MethodDelete, "/admin/"+kind.Path()+"/"+url.PathEscape(id), nil, "", nil)
}

func (c *Client) Upload(ctx context.Context, auth string, req UploadRequest) (*models.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, req.Body); err != nil {
		return nil, fmt.Errorf("read %s: %w", req.Filename, err)
	}
	if err := mw.WriteField("folder", req.Folder); err != nil {
		return nil, err
	}
	if req.ObjectName != "" {
		if err := mw.WriteField("objectName", req.ObjectName); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out models.UploadResult
	if err := c.do(ctx, auth, http.MethodPost, "/admin/upload", &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteObject(ctx context.Context, auth, objectName string) error {
	return c.do(ctx, auth, http.MethodDelete, "/admin/upload?objectName="+url.QueryEscape(objectName), nil, "", nil)
}

// Callbacks lists booking requests, newest first.
func (c *Client) Callbacks(ctx context.Context, auth string, limit int) ([]models.CallbackRequest, error) {
	path := "/admin/requests"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []models.CallbackRequest
	if err := c.do(ctx, auth, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, auth, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, readDetail(resp.Body))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrServer, method, path, err)
	}
	return nil
}

// readDetail extracts {"detail": "..."} or falls back to the raw body.
func readDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		enc, _ := json.Marshal(payload.Detail)
		return string(enc)
	}
	return strings.TrimSpace(string(b))
}

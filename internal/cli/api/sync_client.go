package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"CloudVault/internal/config"
)

// clientUserAgent identifies this client to the sync server.
const clientUserAgent = "CloudVault/1.0"

// TransportError is the uniform failure of any remote call: timeout, non-2xx,
// connection refused. It never wraps a partial result.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote %s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("remote %s %s: status %d", e.Op, e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteFile is the descriptor the sync server returns for a stored file.
type RemoteFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// SyncClient talks to the remote object store over authenticated HTTP.
// All methods honor the configured timeout and the caller's context.
type SyncClient struct {
	endpoint     string
	apiKey       string
	uploadPath   string
	downloadPath string
	listPath     string
	deletePath   string
	hc           *http.Client
}

// NewSyncClient builds a client from a settings snapshot.
func NewSyncClient(s config.Settings) *SyncClient {
	return &SyncClient{
		endpoint:     s.RemoteEndpoint,
		apiKey:       s.APIKey,
		uploadPath:   s.UploadPath,
		downloadPath: s.DownloadPath,
		listPath:     s.ListPath,
		deletePath:   s.DeletePath,
		hc:           &http.Client{Timeout: s.Timeout()},
	}
}

func (c *SyncClient) joinURL(parts ...string) string {
	u := strings.TrimRight(c.endpoint, "/")
	for _, p := range parts {
		u += "/" + strings.Trim(p, "/")
	}
	return u
}

func (c *SyncClient) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", clientUserAgent)
	return req, nil
}

func (c *SyncClient) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, URL: req.URL.String(), Err: err}
	}
	if resp.StatusCode/100 != 2 {
		_ = resp.Body.Close()
		return nil, &TransportError{Op: op, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}
	return resp, nil
}

type uploadAck struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Upload sends the file as a multipart request carrying filename, content hash
// and size, and returns the id the server acknowledged.
func (c *SyncClient) Upload(ctx context.Context, name, hash string, size int64, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("read upload payload: %w", err)
	}
	_ = mw.WriteField("name", name)
	_ = mw.WriteField("hash", hash)
	_ = mw.WriteField("size", strconv.FormatInt(size, 10))
	if err := mw.Close(); err != nil {
		return "", err
	}

	u := c.joinURL(c.uploadPath)
	req, err := c.newRequest(ctx, http.MethodPost, u, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do("upload", req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var ack uploadAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil || ack.ID == "" {
		if err == nil {
			err = fmt.Errorf("response carries no id")
		}
		return "", &TransportError{Op: "upload", URL: u, Err: err}
	}
	return ack.ID, nil
}

// Download retrieves the full byte stream of a remote file.
func (c *SyncClient) Download(ctx context.Context, remoteID string) ([]byte, error) {
	u := c.joinURL(c.downloadPath, url.PathEscape(remoteID))
	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do("download", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "download", URL: u, Err: err}
	}
	return data, nil
}

// Delete removes the remote copy of a file.
func (c *SyncClient) Delete(ctx context.Context, remoteID string) error {
	u := c.joinURL(c.deletePath, url.PathEscape(remoteID))
	req, err := c.newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.do("delete", req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

type listResponse struct {
	Files []RemoteFile `json:"files"`
}

// List returns the descriptors of every file the server holds.
func (c *SyncClient) List(ctx context.Context) ([]RemoteFile, error) {
	u := c.joinURL(c.listPath)
	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do("list", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, &TransportError{Op: "list", URL: u, Err: err}
	}
	return lr.Files, nil
}

// TestConnection reports whether the server answers the list endpoint.
func (c *SyncClient) TestConnection(ctx context.Context) bool {
	_, err := c.List(ctx)
	return err == nil
}

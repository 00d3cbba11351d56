package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CloudVault/internal/config"
)

func testSettings(endpoint string) config.Settings {
	s := config.DefaultSettings()
	s.RemoteEndpoint = endpoint
	s.APIKey = "key-123"
	s.TimeoutSeconds = 2
	return s
}

func TestUpload_SendsMultipartAndAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/upload" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Fatalf("Authorization header: %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != clientUserAgent {
			t.Fatalf("User-Agent header: %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("name") != "doc.txt" || r.FormValue("hash") != "abc" || r.FormValue("size") != "7" {
			t.Fatalf("form values: name=%q hash=%q size=%q",
				r.FormValue("name"), r.FormValue("hash"), r.FormValue("size"))
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		payload, _ := io.ReadAll(f)
		if string(payload) != "content" {
			t.Fatalf("payload: %q", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"srv-1","name":"doc.txt"}`))
	}))
	defer ts.Close()

	c := NewSyncClient(testSettings(ts.URL + "/api"))
	id, err := c.Upload(context.Background(), "doc.txt", "abc", 7, strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if id != "srv-1" {
		t.Fatalf("id: %q", id)
	}
}

func TestUpload_MissingIDIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := NewSyncClient(testSettings(ts.URL))
	_, err := c.Upload(context.Background(), "x", "h", 1, strings.NewReader("x"))
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want TransportError, got %v", err)
	}
}

func TestDownload_ReturnsBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/rid-9" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte{0x00, 0x01, 0xff})
	}))
	defer ts.Close()

	c := NewSyncClient(testSettings(ts.URL))
	got, err := c.Download(context.Background(), "rid-9")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !bytes.Equal(got, []byte{0x00, 0x01, 0xff}) {
		t.Fatalf("bytes: %v", got)
	}
}

func TestNon2xx_IsTransportErrorWithStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewSyncClient(testSettings(ts.URL))

	_, err := c.Download(context.Background(), "rid")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want TransportError, got %v", err)
	}
	if te.StatusCode != http.StatusForbidden {
		t.Fatalf("status: %d", te.StatusCode)
	}

	if err := c.Delete(context.Background(), "rid"); !errors.As(err, &te) {
		t.Fatalf("delete: want TransportError, got %v", err)
	}
}

func TestConnectionRefused_IsTransportError(t *testing.T) {
	// закрытый порт: соединение отклонено
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c := NewSyncClient(testSettings(ts.URL))
	_, err := c.List(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want TransportError, got %v", err)
	}
	if te.StatusCode != 0 {
		t.Fatalf("request never completed, status must be 0, got %d", te.StatusCode)
	}
}

func TestList_ParsesDescriptors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/list" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files":[{"id":"a","name":"a.txt","hash":"h1","size":3}]}`))
	}))
	defer ts.Close()

	c := NewSyncClient(testSettings(ts.URL))
	files, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 1 || files[0].ID != "a" || files[0].Size != 3 {
		t.Fatalf("files: %+v", files)
	}
}

func TestTestConnection(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"files":[]}`))
	}))
	defer ok.Close()
	if c := NewSyncClient(testSettings(ok.URL)); !c.TestConnection(context.Background()) {
		t.Fatalf("expected reachable")
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer bad.Close()
	if c := NewSyncClient(testSettings(bad.URL)); c.TestConnection(context.Background()) {
		t.Fatalf("expected unreachable")
	}
}

func TestTimeout_SurfacesAsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	s := testSettings(ts.URL)
	c := NewSyncClient(s)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Download(ctx, "slow")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want TransportError on timeout, got %v", err)
	}
}

package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testFetcher(tries int) *Fetcher {
	f := NewFetcher(tries)
	f.InitialInterval = time.Millisecond
	return f
}

func TestFetchImageOverHTTP(t *testing.T) {
	data := pngBytes(t, 64, 48)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	img, err := testFetcher(1).FetchImage(context.Background(), srv.URL+"/character.png")
	if err != nil {
		t.Fatalf("FetchImage failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("Expected 64x48 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := testFetcher(5).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("Expected body 'ok', got %q", data)
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls.Load())
	}
}

func TestFetchDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := testFetcher(5).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Expected error for 404")
	}
	if calls.Load() != 1 {
		t.Errorf("Expected a single attempt, got %d", calls.Load())
	}
}

func TestFetchGivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := testFetcher(2).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Expected error after retries")
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 attempts, got %d", calls.Load())
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testFetcher(3).Fetch(ctx, srv.URL); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.png")
	if err := os.WriteFile(path, pngBytes(t, 265, 199), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, loc := range []string{path, "file://" + path} {
		img, err := testFetcher(1).FetchImage(context.Background(), loc)
		if err != nil {
			t.Fatalf("FetchImage(%s) failed: %v", loc, err)
		}
		if b := img.Bounds(); b.Dx() != 265 || b.Dy() != 199 {
			t.Errorf("Expected 265x199, got %dx%d", b.Dx(), b.Dy())
		}
	}
}

func TestFetchImageBadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := testFetcher(1).FetchImage(context.Background(), path); err == nil {
		t.Error("Expected decode error")
	}
}

// Package assets fetches the demo's remote images.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"chosenoffset.com/desertwalk/internal/telemetry"
)

// maxAssetSize caps a single download.
const maxAssetSize = 16 << 20

// Fetcher downloads assets over HTTP(S) or reads them from disk.
type Fetcher struct {
	Client          *http.Client
	MaxTries        uint
	InitialInterval time.Duration
}

// NewFetcher creates a fetcher that tries each asset up to tries times.
func NewFetcher(tries int) *Fetcher {
	if tries < 1 {
		tries = 1
	}
	return &Fetcher{
		Client:          &http.Client{Timeout: 30 * time.Second},
		MaxTries:        uint(tries),
		InitialInterval: 500 * time.Millisecond,
	}
}

// Fetch returns the bytes at location. "file://" URLs and paths without a
// scheme are read from disk; http and https URLs are downloaded, retrying
// transient failures with exponential backoff.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	ctx, span := telemetry.Tracer("assets").Start(ctx, "assets.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("asset.url", location))

	data, err := f.fetch(ctx, location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("asset.bytes", len(data)))
	return data, nil
}

func (f *Fetcher) fetch(ctx context.Context, location string) ([]byte, error) {
	if path, ok := localPath(location); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset %s: %w", path, err)
		}
		return data, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.InitialInterval

	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		return f.get(ctx, location)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(f.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Printf("Warning: fetching %s failed (%v), retrying in %s", location, err, next)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %s: %w", location, err)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxAssetSize {
		return nil, backoff.Permanent(errors.New("asset exceeds size limit"))
	}
	return data, nil
}

// FetchImage fetches and decodes a PNG or JPEG image.
func (f *Fetcher) FetchImage(ctx context.Context, location string) (image.Image, error) {
	data, err := f.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", location, err)
	}
	return img, nil
}

// localPath returns the filesystem path for file URLs and plain paths.
func localPath(location string) (string, bool) {
	if rest, ok := strings.CutPrefix(location, "file://"); ok {
		return rest, true
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return "", false
	}
	return location, true
}

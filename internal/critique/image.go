package critique

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/digietal/artgallery/internal/gallery"
)

// ErrImageFetch wraps failures loading the artwork image.
var ErrImageFetch = errors.New("image fetch failed")

const defaultMaxImageBytes = 10 << 20

// Fetcher loads an image locator into bytes plus MIME type.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// Fetch resolves data URIs locally and downloads http(s) locators.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	if gallery.IsDataURI(ref) {
		mime, data, err := gallery.DecodeDataURI(ref)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrImageFetch, err)
		}
		return data, mime, nil
	}
	if !gallery.IsRemoteURL(ref) {
		return nil, "", fmt.Errorf("%w: unsupported image locator", ErrImageFetch)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = defaultMaxImageBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("%w: http %d", ErrImageFetch, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%w: image larger than %d bytes", ErrImageFetch, limit)
	}

	mime := strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0])
	if !strings.HasPrefix(mime, "image/") {
		mime = mimetype.Detect(data).String()
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("%w: not an image (%s)", ErrImageFetch, mime)
	}
	return data, mime, nil
}

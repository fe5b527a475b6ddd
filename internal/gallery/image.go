package gallery

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageFileBytes bounds local files turned into inline data URIs.
const MaxImageFileBytes = 8 << 20

// ErrNotImage is returned when a local file does not look like an image.
var ErrNotImage = errors.New("file is not an image")

// IsRemoteURL reports whether ref is an http(s) locator.
func IsRemoteURL(ref string) bool {
	l := strings.ToLower(ref)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// IsDataURI reports whether ref is an inline data URI.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(strings.ToLower(ref), "data:")
}

// EncodeDataURI builds a base64 data URI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !IsDataURI(uri) {
		return "", nil, fmt.Errorf("not a data uri")
	}
	header, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri: missing payload")
	}
	mime, params, _ := strings.Cut(header, ";")
	if !strings.Contains(params, "base64") {
		return "", nil, fmt.Errorf("data uri: only base64 payloads are supported")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data uri: %w", err)
	}
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	return mime, data, nil
}

// ResolveImage keeps remote URLs and data URIs as they are and reads any other
// reference as a local file path, returning it as an inline data URI.
func ResolveImage(ref string) (string, error) {
	if IsRemoteURL(ref) || IsDataURI(ref) {
		return ref, nil
	}
	path := ref
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("image file: %w", err)
	}
	if info.Size() > MaxImageFileBytes {
		return "", fmt.Errorf("image file: %s is larger than %d bytes", path, MaxImageFileBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("image file: %w", err)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%s: %w (%s)", path, ErrNotImage, mt.String())
	}
	return EncodeDataURI(mt.String(), data), nil
}

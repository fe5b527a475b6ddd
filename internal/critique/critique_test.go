package critique

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/digietal/artgallery/internal/gallery"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/art.png":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(pngBytes)
		case "/notes.txt":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("hello"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher(t *testing.T) {
	ctx := context.Background()
	srv := imageServer(t)
	f := &Fetcher{Client: srv.Client()}

	data, mime, err := f.Fetch(ctx, srv.URL+"/art.png")
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
	require.Equal(t, pngBytes, data)

	_, _, err = f.Fetch(ctx, srv.URL+"/notes.txt")
	require.ErrorIs(t, err, ErrImageFetch)

	_, _, err = f.Fetch(ctx, srv.URL+"/missing.jpg")
	require.ErrorIs(t, err, ErrImageFetch)

	_, _, err = f.Fetch(ctx, "ftp://example.com/a.png")
	require.ErrorIs(t, err, ErrImageFetch)

	data, mime, err = f.Fetch(ctx, gallery.EncodeDataURI("image/png", pngBytes))
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
	require.Equal(t, pngBytes, data)

	small := &Fetcher{Client: srv.Client(), MaxBytes: 4}
	_, _, err = small.Fetch(ctx, srv.URL+"/art.png")
	require.ErrorIs(t, err, ErrImageFetch)
}

func TestPromptEmbedsArtwork(t *testing.T) {
	p := Prompt(Request{Title: "Violet", Artist: "Gigi Yulo-Villamor", Description: "9in x 12in"})
	require.Contains(t, p, `"Violet"`)
	require.Contains(t, p, "Gigi Yulo-Villamor")
	require.Contains(t, p, "9in x 12in")
	require.Contains(t, Prompt(Request{Title: "x"}), "no description given")
}

func TestOfflineProvider(t *testing.T) {
	text, err := NewOfflineProvider().Critique(context.Background(), Request{
		Title: "Teresita", Artist: "Gigi Yulo-Villamor", Description: "Acrylic 18in x 24in",
	})
	require.NoError(t, err)
	require.Contains(t, text, "Teresita")
	require.Contains(t, text, "Acrylic")
	require.Contains(t, text, "18 by 24 inches")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewOfflineProvider().Critique(ctx, Request{Title: "x"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpenAIProviderNoKey(t *testing.T) {
	_, err := NewOpenAIProvider("  ", "").Critique(context.Background(), Request{})
	require.ErrorIs(t, err, ErrDisabled)
}

func TestOpenAIProviderSendsInlineImage(t *testing.T) {
	var gotPath, gotAuth string
	var gotRaw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRaw, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"  A tender, quiet study.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", "")
	p.SetBaseURL(srv.URL + "/v1")
	text, err := p.Critique(context.Background(), Request{Title: "Violet", Artist: "G", Image: pngBytes, MIMEType: "image/png"})
	require.NoError(t, err)
	require.Equal(t, "A tender, quiet study.", text)
	require.Equal(t, "/v1/chat/completions", gotPath)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Contains(t, string(gotRaw), "data:image/png;base64,")
	var body map[string]any
	require.NoError(t, json.Unmarshal(gotRaw, &body))
	require.Equal(t, defaultOpenAIModel, body["model"])
}

func TestOpenAIProviderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("wrong", "gpt-4o")
	p.SetBaseURL(srv.URL + "/v1")
	_, err := p.Critique(context.Background(), Request{Image: pngBytes, MIMEType: "image/png"})
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "openai:"))
}

type stubProvider struct {
	got   Request
	delay time.Duration
}

func (s *stubProvider) Critique(ctx context.Context, req Request) (string, error) {
	s.got = req
	select {
	case <-time.After(s.delay):
		return "fine work", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService(nil, Options{})
	require.False(t, svc.Enabled())
	_, err := svc.Critique(context.Background(), gallery.Artwork{})
	require.ErrorIs(t, err, ErrDisabled)
}

func TestServiceCritique(t *testing.T) {
	srv := imageServer(t)
	stub := &stubProvider{}
	svc := NewService(stub, Options{RequestsPerMinute: 60})
	svc.SetFetcher(&Fetcher{Client: srv.Client()})

	text, err := svc.Critique(context.Background(), gallery.Artwork{
		ID: "11", Title: "Violet", Artist: "G", Description: "9in x 12in", ImageURL: srv.URL + "/art.png",
	})
	require.NoError(t, err)
	require.Equal(t, "fine work", text)
	require.Equal(t, "Violet", stub.got.Title)
	require.Equal(t, "image/png", stub.got.MIMEType)
	require.Equal(t, pngBytes, stub.got.Image)
}

func TestServiceTimeout(t *testing.T) {
	stub := &stubProvider{delay: time.Second}
	svc := NewService(stub, Options{Timeout: 20 * time.Millisecond})
	_, err := svc.Critique(context.Background(), gallery.Artwork{ImageURL: gallery.EncodeDataURI("image/png", pngBytes)})
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestServiceImageFailure(t *testing.T) {
	srv := imageServer(t)
	svc := NewService(&stubProvider{}, Options{})
	svc.SetFetcher(&Fetcher{Client: srv.Client()})
	_, err := svc.Critique(context.Background(), gallery.Artwork{ImageURL: srv.URL + "/missing.png"})
	require.ErrorIs(t, err, ErrImageFetch)
}

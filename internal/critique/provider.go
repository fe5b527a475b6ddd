// Package critique asks a generative model for a short critique of an artwork.
package critique

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrDisabled means no credential is configured; the feature is off.
var ErrDisabled = errors.New("AI critique is disabled: no API key configured")

// Provider turns an artwork and its image into prose.
type Provider interface {
	Critique(ctx context.Context, req Request) (string, error)
}

// Request is everything a provider needs. Image holds the raw bytes; providers
// base64-encode them on the wire.
type Request struct {
	Title       string
	Artist      string
	Description string
	Image       []byte
	MIMEType    string
}

// Prompt embeds the artwork details into the critique instruction.
func Prompt(req Request) string {
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = "no description given"
	}
	return fmt.Sprintf(
		"You are an art critic. Write a short, insightful critique of the artwork in the image. "+
			"It is titled %q by %s, described as: %s. "+
			"Comment on composition, color, technique and mood in two or three paragraphs of plain prose.",
		req.Title, req.Artist, desc)
}

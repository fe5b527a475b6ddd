package critique

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// OfflineProvider writes a short critique from the artwork's metadata alone.
// It needs no credential and no network, so demos and tests work without a key.
type OfflineProvider struct{}

func NewOfflineProvider() *OfflineProvider { return &OfflineProvider{} }

var sizePattern = regexp.MustCompile(`(\d+)\s*in\s*x\s*(\d+)\s*in`)

var mediumNotes = []struct {
	keyword string
	note    string
}{
	{"watercolor", "The watercolor washes stay loose and luminous, letting the paper breathe through the pigment."},
	{"gouache", "Gouache gives the surface a flat, velvety opacity that sharpens the graphic rhythm of the shapes."},
	{"acrylic", "Acrylic lets the colour sit bold and saturated, with confident edges and quick, decisive layering."},
	{"pencil", "The coloured pencil work builds tone patiently, stroke over stroke, with a tactile, intimate grain."},
	{"oil", "Oil paint lends the piece depth and a slow, glowing transition between lights and darks."},
}

func (o *OfflineProvider) Critique(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	desc := strings.ToLower(req.Description)

	var b strings.Builder
	fmt.Fprintf(&b, "%q by %s reads as a considered, personal piece.", req.Title, req.Artist)
	for _, m := range mediumNotes {
		if strings.Contains(desc, m.keyword) {
			b.WriteString(" " + m.note)
			break
		}
	}
	if strings.Contains(desc, "chopping board") || strings.Contains(desc, "kraft") {
		b.WriteString(" The unconventional support adds texture and a playful, everyday warmth.")
	}
	if m := sizePattern.FindStringSubmatch(desc); m != nil {
		fmt.Fprintf(&b, " At %s by %s inches it is sized for a close, unhurried look.", m[1], m[2])
	}
	if len(req.Image) > 0 {
		fmt.Fprintf(&b, " (Image received: %s, %d bytes.)", req.MIMEType, len(req.Image))
	}
	return b.String(), nil
}

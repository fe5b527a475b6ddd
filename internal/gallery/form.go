package gallery

import "strings"

// ArtworkFields is the staged content of the admin artwork form.
type ArtworkFields struct {
	ID          string
	Title       string
	Artist      string
	Description string
	Price       string
	ImageURL    string
}

// FieldsOf copies an artwork into form fields.
func FieldsOf(a Artwork) ArtworkFields {
	return ArtworkFields{
		ID:          a.ID,
		Title:       a.Title,
		Artist:      a.Artist,
		Description: a.Description,
		Price:       string(a.Price),
		ImageURL:    a.ImageURL,
	}
}

const artworkFieldsMessage = "Please fill out all required fields."

// ValidateArtwork checks the required fields and returns the artwork the form describes.
// The image reference is returned as typed; resolving local files is left to ResolveImage.
func ValidateArtwork(f ArtworkFields) (Artwork, error) {
	a := Artwork{
		ID:          strings.TrimSpace(f.ID),
		Title:       strings.TrimSpace(f.Title),
		Artist:      strings.TrimSpace(f.Artist),
		Description: strings.TrimSpace(f.Description),
		Price:       Price(strings.TrimSpace(f.Price)),
		ImageURL:    strings.TrimSpace(f.ImageURL),
	}
	var missing []string
	if a.Title == "" {
		missing = append(missing, "title")
	}
	if a.Artist == "" {
		missing = append(missing, "artist")
	}
	if a.Price == "" {
		missing = append(missing, "price")
	}
	if a.ImageURL == "" {
		missing = append(missing, "imageUrl")
	}
	if len(missing) > 0 {
		return Artwork{}, &ValidationError{Fields: missing, Message: artworkFieldsMessage}
	}
	if !a.Price.Valid() {
		return Artwork{}, &ValidationError{Fields: []string{"price"}, Message: "Price must be a plain non-negative amount, like 5000 or 12.50."}
	}
	return a, nil
}

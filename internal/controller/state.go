package controller

import "github.com/digietal/artgallery/internal/gallery"

// Mode is the top-level area of the application.
type Mode int

const (
	ModeGallery Mode = iota
	ModeAdmin
)

func (m Mode) String() string {
	if m == ModeAdmin {
		return "admin"
	}
	return "gallery"
}

// View is the active screen. GalleryDetail and OrderForm refer to the
// focused artwork through State.FocusID.
type View int

const (
	ViewGalleryList View = iota
	ViewGalleryDetail
	ViewOrderForm
	ViewOrderConfirmation
	ViewAdminList
)

var viewNames = map[View]string{
	ViewGalleryList:       "gallery_list",
	ViewGalleryDetail:     "gallery_detail",
	ViewOrderForm:         "order_form",
	ViewOrderConfirmation: "order_confirmation",
	ViewAdminList:         "admin_list",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

// CarriesArtwork reports whether the view needs a valid focused artwork.
func (v View) CarriesArtwork() bool {
	return v == ViewGalleryDetail || v == ViewOrderForm
}

// OrderDraft holds what was typed into the order form, kept across failed submits.
type OrderDraft struct {
	Fields gallery.OrderFields
	Err    error
}

// ArtworkForm is the staged admin form. Nothing reaches the store until save.
type ArtworkForm struct {
	Fields  gallery.ArtworkFields
	Editing bool
	Err     error
}

// CritiqueStatus is local to the detail view and reset on every new request.
type CritiqueStatus struct {
	Loading bool
	Text    string
	Err     error
}

// CritiqueToken identifies one critique request. Results carrying a stale
// token are dropped.
type CritiqueToken struct {
	seq       uint64
	ArtworkID string
}

// State is the whole application state. It is only changed by Controller methods.
type State struct {
	Mode            Mode
	View            View
	FocusID         string
	Loading         bool
	Query           string
	Order           OrderDraft
	LastOrder       *gallery.Order
	Form            *ArtworkForm
	ConfirmDeleteID string
	Critique        CritiqueStatus
}

// Package controller is the gallery's application state machine: view routing,
// the order flow, admin edits against the artwork store and critique bookkeeping.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/digietal/artgallery/internal/gallery"
	"github.com/digietal/artgallery/internal/modal"
)

var (
	// ErrInvalidTransition is returned for an event the current view does not accept.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrLoading is returned for navigation before the initial load finished.
	ErrLoading = errors.New("artworks are still loading")
)

// Store is the part of the artwork store the controller drives.
type Store interface {
	List() []gallery.Artwork
	Get(id string) (gallery.Artwork, bool)
	Add(ctx context.Context, a gallery.Artwork) (gallery.Artwork, error)
	Update(ctx context.Context, a gallery.Artwork) (gallery.Artwork, error)
	Remove(ctx context.Context, id string) error
}

// Form controls in focus order.
const (
	ControlTitle       = "title"
	ControlArtist      = "artist"
	ControlDescription = "description"
	ControlPrice       = "price"
	ControlImageURL    = "imageUrl"
	ControlSave        = "save"
)

// FormControls lists the artwork form's focusable controls.
func FormControls() []string {
	return []string{ControlTitle, ControlArtist, ControlDescription, ControlPrice, ControlImageURL, ControlSave}
}

type Option func(*Controller)

// WithClock sets the time source used for order timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithImageResolver replaces how typed image references become stored ones.
func WithImageResolver(fn func(string) (string, error)) Option {
	return func(c *Controller) { c.resolveImage = fn }
}

type Controller struct {
	store        Store
	sink         OrderSink
	now          func() time.Time
	resolveImage func(string) (string, error)

	state       State
	galleryView View
	trap        modal.Trap
	critiqueSeq uint64
}

// New starts in the gallery list with the initial load pending.
func New(store Store, sink OrderSink, opts ...Option) *Controller {
	if sink == nil {
		sink = LogSink{}
	}
	c := &Controller{
		store:        store,
		sink:         sink,
		now:          time.Now,
		resolveImage: gallery.ResolveImage,
		state:        State{Mode: ModeGallery, View: ViewGalleryList, Loading: true},
		galleryView:  ViewGalleryList,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the application state.
func (c *Controller) State() State {
	s := c.state
	if s.Form != nil {
		f := *s.Form
		s.Form = &f
	}
	return s
}

// Modal exposes the artwork form's focus trap.
func (c *Controller) Modal() *modal.Trap { return &c.trap }

// Artworks lists the gallery, narrowed by the current search query.
func (c *Controller) Artworks() []gallery.Artwork {
	return gallery.Filter(c.store.List(), c.state.Query)
}

// AdminArtworks lists every artwork in collection order.
func (c *Controller) AdminArtworks() []gallery.Artwork {
	return c.store.List()
}

// Focused returns the artwork in focus, if any.
func (c *Controller) Focused() (gallery.Artwork, bool) {
	if c.state.FocusID == "" {
		return gallery.Artwork{}, false
	}
	return c.store.Get(c.state.FocusID)
}

// Loaded ends the initial load and shows the gallery list.
func (c *Controller) Loaded() {
	if !c.state.Loading {
		return
	}
	c.state.Loading = false
	if c.state.Mode == ModeGallery {
		c.state.View = ViewGalleryList
	}
}

func (c *Controller) ready() error {
	if c.state.Loading {
		return ErrLoading
	}
	return nil
}

func (c *Controller) invalid(event string) error {
	return fmt.Errorf("%s from %s: %w", event, c.state.View, ErrInvalidTransition)
}

// SetQuery narrows the gallery list.
func (c *Controller) SetQuery(q string) {
	c.state.Query = q
}

// Select focuses an artwork from the gallery list and opens its detail view.
func (c *Controller) Select(id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.Mode != ModeGallery || c.state.View != ViewGalleryList {
		return c.invalid("select")
	}
	if _, ok := c.store.Get(id); !ok {
		return fmt.Errorf("select %q: %w", id, gallery.ErrNotFound)
	}
	c.state.FocusID = id
	c.state.View = ViewGalleryDetail
	c.resetCritique()
	return nil
}

// Back leaves the detail view for the list, or the order form for the detail view.
func (c *Controller) Back() error {
	if err := c.ready(); err != nil {
		return err
	}
	switch c.state.View {
	case ViewGalleryDetail:
		c.state.View = ViewGalleryList
		c.state.FocusID = ""
		c.resetCritique()
	case ViewOrderForm:
		c.state.View = ViewGalleryDetail
		c.ensureFocus()
	default:
		return c.invalid("back")
	}
	return nil
}

// PlaceOrder opens an empty order form for the focused artwork.
func (c *Controller) PlaceOrder() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.View != ViewGalleryDetail {
		return c.invalid("place order")
	}
	c.state.View = ViewOrderForm
	c.state.Order = OrderDraft{}
	c.resetCritique()
	return nil
}

// SubmitOrder validates the buyer details. On success the order is handed to
// the sink and the confirmation screen is shown; on failure the form stays as typed.
func (c *Controller) SubmitOrder(ctx context.Context, f gallery.OrderFields) (gallery.Order, error) {
	if err := c.ready(); err != nil {
		return gallery.Order{}, err
	}
	if c.state.View != ViewOrderForm {
		return gallery.Order{}, c.invalid("submit order")
	}
	c.state.Order = OrderDraft{Fields: f}
	valid, err := gallery.ValidateOrder(f)
	if err != nil {
		c.state.Order.Err = err
		return gallery.Order{}, err
	}
	art, ok := c.Focused()
	if !ok {
		c.state.View = ViewGalleryList
		c.state.FocusID = ""
		return gallery.Order{}, fmt.Errorf("submit order: %w", gallery.ErrNotFound)
	}
	order := gallery.NewOrder(valid, art, c.now())
	if err := c.sink.Submit(ctx, order); err != nil {
		zlog.Warn().Err(err).Str("artwork_id", order.ArtworkID).Msg("order sink")
	}
	c.state.LastOrder = &order
	c.state.Order = OrderDraft{}
	c.state.View = ViewOrderConfirmation
	return order, nil
}

// BackToHome returns from the confirmation to the gallery list.
func (c *Controller) BackToHome() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.View != ViewOrderConfirmation {
		return c.invalid("back to home")
	}
	c.state.Mode = ModeGallery
	c.state.View = ViewGalleryList
	c.state.FocusID = ""
	c.galleryView = ViewGalleryList
	return nil
}

// ToggleMode switches between gallery and admin. The gallery screen and its
// focus are kept while in admin and restored on the way back.
func (c *Controller) ToggleMode() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.Form != nil || c.state.ConfirmDeleteID != "" {
		return c.invalid("toggle mode")
	}
	switch c.state.Mode {
	case ModeGallery:
		c.galleryView = c.state.View
		c.state.Mode = ModeAdmin
		c.state.View = ViewAdminList
		c.resetCritique()
	default:
		c.state.Mode = ModeGallery
		c.state.View = c.galleryView
		c.ensureFocus()
	}
	return nil
}

// ensureFocus drops back to the list if the focused artwork no longer exists.
func (c *Controller) ensureFocus() {
	if !c.state.View.CarriesArtwork() {
		return
	}
	if _, ok := c.Focused(); !ok {
		c.state.View = ViewGalleryList
		c.state.FocusID = ""
	}
}

// OpenAddForm opens an empty artwork form.
func (c *Controller) OpenAddForm(opener string) error {
	if err := c.adminIdle("open add form"); err != nil {
		return err
	}
	c.state.Form = &ArtworkForm{}
	return c.trap.Open(opener, FormControls()...)
}

// OpenEditForm opens the form with a copy of the artwork's fields.
func (c *Controller) OpenEditForm(id, opener string) error {
	if err := c.adminIdle("open edit form"); err != nil {
		return err
	}
	a, ok := c.store.Get(id)
	if !ok {
		return fmt.Errorf("edit %q: %w", id, gallery.ErrNotFound)
	}
	c.state.Form = &ArtworkForm{Fields: gallery.FieldsOf(a), Editing: true}
	return c.trap.Open(opener, FormControls()...)
}

func (c *Controller) adminIdle(event string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.state.Mode != ModeAdmin || c.state.View != ViewAdminList {
		return c.invalid(event)
	}
	if c.state.Form != nil || c.state.ConfirmDeleteID != "" {
		return c.invalid(event)
	}
	return nil
}

// CancelForm closes the form without saving and returns the opener.
func (c *Controller) CancelForm() string {
	if c.state.Form == nil {
		return ""
	}
	c.state.Form = nil
	return c.trap.Close()
}

// SaveForm validates the staged fields and writes them to the store: an id that
// matches an existing artwork updates it in place, anything else is added.
// On success the form closes and the opener is returned.
func (c *Controller) SaveForm(ctx context.Context, f gallery.ArtworkFields) (gallery.Artwork, string, error) {
	if c.state.Form == nil {
		return gallery.Artwork{}, "", c.invalid("save form")
	}
	if f.ID == "" {
		f.ID = c.state.Form.Fields.ID
	}
	c.state.Form.Fields = f
	c.state.Form.Err = nil

	a, err := gallery.ValidateArtwork(f)
	if err != nil {
		c.state.Form.Err = err
		return gallery.Artwork{}, "", err
	}
	img, err := c.resolveImage(a.ImageURL)
	if err != nil {
		err = &gallery.ValidationError{Fields: []string{"imageUrl"}, Message: err.Error()}
		c.state.Form.Err = err
		return gallery.Artwork{}, "", err
	}
	a.ImageURL = img

	var saved gallery.Artwork
	if _, exists := c.store.Get(a.ID); a.ID != "" && exists {
		saved, err = c.store.Update(ctx, a)
	} else {
		saved, err = c.store.Add(ctx, a)
	}
	if err != nil {
		c.state.Form.Err = err
		return gallery.Artwork{}, "", err
	}
	c.state.Form = nil
	return saved, c.trap.Close(), nil
}

// RequestDelete asks for confirmation before deleting an artwork.
func (c *Controller) RequestDelete(id string) error {
	if err := c.adminIdle("request delete"); err != nil {
		return err
	}
	if _, ok := c.store.Get(id); !ok {
		return fmt.Errorf("delete %q: %w", id, gallery.ErrNotFound)
	}
	c.state.ConfirmDeleteID = id
	return nil
}

// ConfirmDelete answers the pending confirmation. Declining changes nothing.
func (c *Controller) ConfirmDelete(ctx context.Context, yes bool) error {
	id := c.state.ConfirmDeleteID
	if id == "" {
		return c.invalid("confirm delete")
	}
	c.state.ConfirmDeleteID = ""
	if !yes {
		return nil
	}
	if err := c.store.Remove(ctx, id); err != nil {
		return err
	}
	if c.state.FocusID == id {
		c.state.FocusID = ""
		if c.galleryView.CarriesArtwork() {
			c.galleryView = ViewGalleryList
		}
	}
	return nil
}

// StartCritique begins a critique request for the focused artwork and resets
// the critique status to loading.
func (c *Controller) StartCritique() (CritiqueToken, error) {
	if err := c.ready(); err != nil {
		return CritiqueToken{}, err
	}
	if c.state.Mode != ModeGallery || c.state.View != ViewGalleryDetail {
		return CritiqueToken{}, c.invalid("critique")
	}
	c.critiqueSeq++
	c.state.Critique = CritiqueStatus{Loading: true}
	return CritiqueToken{seq: c.critiqueSeq, ArtworkID: c.state.FocusID}, nil
}

// CritiqueCurrent reports whether a result for tok would still be shown.
func (c *Controller) CritiqueCurrent(tok CritiqueToken) bool {
	return tok.seq == c.critiqueSeq &&
		c.state.Mode == ModeGallery &&
		c.state.View == ViewGalleryDetail &&
		c.state.FocusID == tok.ArtworkID
}

// FinishCritique applies a critique result if its token is still current.
func (c *Controller) FinishCritique(tok CritiqueToken, text string, err error) bool {
	if !c.CritiqueCurrent(tok) {
		zlog.Debug().Str("artwork_id", tok.ArtworkID).Msg("dropped stale critique result")
		return false
	}
	c.state.Critique = CritiqueStatus{Text: text, Err: err}
	return true
}

func (c *Controller) resetCritique() {
	c.critiqueSeq++
	c.state.Critique = CritiqueStatus{}
}

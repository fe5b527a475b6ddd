package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/digietal/artgallery/internal/config"
	"github.com/digietal/artgallery/internal/controller"
	"github.com/digietal/artgallery/internal/critique"
	"github.com/digietal/artgallery/internal/gallery"
	"github.com/digietal/artgallery/internal/store"
)

type memSlot struct{ data []byte }

func (m *memSlot) Read(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, gallery.ErrSlotEmpty
	}
	return m.data, nil
}

func (m *memSlot) Write(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

type recordingSink struct{ orders []gallery.Order }

func (r *recordingSink) Submit(ctx context.Context, o gallery.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

type stubCritic struct {
	text  string
	err   error
	calls int
	ctx   context.Context
}

func (s *stubCritic) Critique(ctx context.Context, a gallery.Artwork) (string, error) {
	s.calls++
	s.ctx = ctx
	return s.text + " " + a.Title, s.err
}

func testConfig() config.Config {
	return config.Config{UI: config.UIConfig{CurrencySymbol: "$"}}
}

func newTestApp(t *testing.T, critic Critic) (*App, *recordingSink) {
	t.Helper()
	s := store.New(&memSlot{})
	sink := &recordingSink{}
	ctl := controller.New(s, sink,
		controller.WithClock(func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }),
		controller.WithImageResolver(func(ref string) (string, error) { return ref, nil }),
	)
	app := New(context.Background(), testConfig(), ctl, s, critic)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app.Update(app.loadCmd()())
	require.False(t, ctl.State().Loading)
	return app, sink
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = a.Update(keyMsg(k))
	}
	return cmd
}

func typeText(a *App, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestLoadingScreenThenGallery(t *testing.T) {
	s := store.New(&memSlot{})
	ctl := controller.New(s, nil)
	app := New(context.Background(), testConfig(), ctl, s, nil)
	require.Contains(t, app.View(), "Loading artworks")

	// navigation keys are ignored while loading
	press(app, "enter")
	require.Equal(t, controller.ViewGalleryList, ctl.State().View)

	app.Update(app.loadCmd()())
	view := app.View()
	require.Contains(t, view, "Current Exhibition")
	require.Contains(t, view, "Solitude")
	require.Contains(t, view, "$5,000")
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	s := store.New(&memSlot{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := testConfig()
	cfg.UI.LoadDelay = time.Hour
	app := New(ctx, cfg, controller.New(s, nil), s, nil)
	msg, ok := app.loadCmd()().(loadedMsg)
	require.True(t, ok)
	require.ErrorIs(t, msg.err, context.Canceled)
}

func TestQuitKey(t *testing.T) {
	app, _ := newTestApp(t, nil)
	cmd := press(app, "q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseAndOrder(t *testing.T) {
	app, sink := newTestApp(t, nil)
	press(app, "down", "enter")
	st := app.ctl.State()
	require.Equal(t, controller.ViewGalleryDetail, st.View)
	require.Equal(t, "2", st.FocusID)
	require.Contains(t, app.View(), "Sinadya")

	press(app, "o")
	require.Equal(t, controller.ViewOrderForm, app.ctl.State().View)

	press(app, "enter")
	st = app.ctl.State()
	require.Equal(t, controller.ViewOrderForm, st.View)
	require.Error(t, st.Order.Err)
	require.Contains(t, app.View(), "Please fill out all fields.")
	require.Empty(t, sink.orders)

	typeText(app, "Ana Reyes")
	press(app, "tab")
	typeText(app, "ana@example.com")
	press(app, "tab")
	typeText(app, "12 Mabini St")
	press(app, "enter")

	st = app.ctl.State()
	require.Equal(t, controller.ViewOrderConfirmation, st.View)
	require.Contains(t, app.View(), "Order Confirmed!")
	require.Len(t, sink.orders, 1)
	require.Equal(t, "Ana Reyes", sink.orders[0].CustomerName)
	require.Equal(t, "2", sink.orders[0].ArtworkID)
	require.Equal(t, "Sinadya", sink.orders[0].ArtworkTitle)

	press(app, "enter")
	st = app.ctl.State()
	require.Equal(t, controller.ViewGalleryList, st.View)
	require.Empty(t, st.FocusID)
}

func TestOrderValidationFocusesMissingField(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "enter", "o")
	typeText(app, "Ana")
	press(app, "tab", "tab")
	typeText(app, "Somewhere")
	press(app, "enter")

	require.Equal(t, 1, app.orderFocus)
	require.Equal(t, "Ana", app.orderInputs[0].Value())
	require.Equal(t, "Somewhere", app.orderInputs[2].Value())
}

func TestOrderFormBackKeepsFocus(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "enter", "o", "esc")
	st := app.ctl.State()
	require.Equal(t, controller.ViewGalleryDetail, st.View)
	require.Equal(t, "1", st.FocusID)
	press(app, "esc")
	require.Equal(t, controller.ViewGalleryList, app.ctl.State().View)
}

func TestSearchFiltersList(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "/")
	require.True(t, app.searching)
	typeText(app, "violet")
	press(app, "enter")
	require.False(t, app.searching)

	list := app.ctl.Artworks()
	require.Len(t, list, 1)
	require.Equal(t, "Violet", list[0].Title)

	press(app, "enter")
	require.Equal(t, "11", app.ctl.State().FocusID)

	press(app, "esc", "esc")
	require.Empty(t, app.ctl.State().Query)
	require.Len(t, app.ctl.Artworks(), 12)
}

func TestToggleModeRestoresDetail(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "enter", "a")
	st := app.ctl.State()
	require.Equal(t, controller.ModeAdmin, st.Mode)
	require.Equal(t, controller.ViewAdminList, st.View)
	require.Contains(t, app.View(), "Manage Artworks")

	press(app, "a")
	st = app.ctl.State()
	require.Equal(t, controller.ModeGallery, st.Mode)
	require.Equal(t, controller.ViewGalleryDetail, st.View)
	require.Equal(t, "1", st.FocusID)
}

func TestAdminAddArtwork(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "a", "n")
	require.NotNil(t, app.ctl.State().Form)
	require.Equal(t, controller.ControlTitle, app.ctl.Modal().Focused())
	require.Contains(t, app.View(), "Add Artwork")

	typeText(app, "Harbor Lights")
	press(app, "tab")
	typeText(app, "Mara Cruz")
	press(app, "tab", "tab")
	typeText(app, "1200")
	press(app, "tab")
	typeText(app, "https://example.com/harbor.jpg")
	press(app, "enter")

	st := app.ctl.State()
	require.Nil(t, st.Form)
	require.Equal(t, "add", app.pageFocus)
	list := app.ctl.AdminArtworks()
	require.Len(t, list, 13)
	require.Equal(t, "Harbor Lights", list[0].Title)
	require.Equal(t, gallery.Price("1200"), list[0].Price)
	require.NotEmpty(t, list[0].ID)
	require.Contains(t, app.status, "Harbor Lights")
}

func TestAdminFormValidationKeepsValues(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "a", "n")
	typeText(app, "Untitled")
	press(app, "enter")

	form := app.ctl.State().Form
	require.NotNil(t, form)
	var verr *gallery.ValidationError
	require.True(t, errors.As(form.Err, &verr))
	require.True(t, verr.Has("price"))
	require.Equal(t, "Untitled", app.formInputs[formIndex(controller.ControlTitle)].Value())
	require.Len(t, app.ctl.AdminArtworks(), 12)
}

func TestAdminFormFocusTrapWraps(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "a", "n", "shift+tab")
	require.Equal(t, controller.ControlSave, app.ctl.Modal().Focused())
	press(app, "tab")
	require.Equal(t, controller.ControlTitle, app.ctl.Modal().Focused())
	require.True(t, app.formInputs[0].Focused())
}

func TestAdminEditCancelRestoresFocus(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "a", "down", "down", "e")
	form := app.ctl.State().Form
	require.NotNil(t, form)
	require.True(t, form.Editing)
	require.Equal(t, "Crazy Y Ranch", app.formInputs[formIndex(controller.ControlTitle)].Value())

	typeText(app, " (draft)")
	press(app, "esc")
	require.Nil(t, app.ctl.State().Form)
	require.Equal(t, "row:3", app.pageFocus)
	require.Equal(t, 2, app.adminCursor)
	require.Equal(t, "Crazy Y Ranch", app.ctl.AdminArtworks()[2].Title)
}

func TestAdminEditSavesInPlace(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "a", "down", "e")
	typeText(app, " II")
	press(app, "enter")
	list := app.ctl.AdminArtworks()
	require.Len(t, list, 12)
	require.Equal(t, "2", list[1].ID)
	require.Equal(t, "Sinadya II", list[1].Title)
}

func TestAdminDeleteNeedsConfirmation(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "a", "d")
	require.Equal(t, "1", app.ctl.State().ConfirmDeleteID)
	require.Contains(t, app.View(), `Delete "Solitude"?`)

	press(app, "n")
	require.Len(t, app.ctl.AdminArtworks(), 12)

	press(app, "d", "y")
	list := app.ctl.AdminArtworks()
	require.Len(t, list, 11)
	require.Equal(t, "2", list[0].ID)
	require.Contains(t, app.status, "Solitude")
}

func TestDeletingFocusedArtworkReturnsToList(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "enter", "a", "d", "y", "a")
	st := app.ctl.State()
	require.Equal(t, controller.ViewGalleryList, st.View)
	require.Empty(t, st.FocusID)
}

func TestCritiqueDisabled(t *testing.T) {
	app, _ := newTestApp(t, critique.NewService(nil, critique.Options{}))
	cmd := press(app, "enter", "c")
	require.True(t, app.ctl.State().Critique.Loading)
	require.NotNil(t, cmd)

	app.Update(cmd())
	st := app.ctl.State()
	require.ErrorIs(t, st.Critique.Err, critique.ErrDisabled)
	require.Contains(t, app.View(), "AI critique is disabled")
}

func TestCritiqueResultShown(t *testing.T) {
	critic := &stubCritic{text: "Bold colour on"}
	app, _ := newTestApp(t, critic)
	cmd := press(app, "enter", "c")
	app.Update(cmd())
	require.Equal(t, "Bold colour on Solitude", app.ctl.State().Critique.Text)
	require.Contains(t, app.View(), "Bold colour on Solitude")
}

func TestStaleCritiqueDropped(t *testing.T) {
	critic := &stubCritic{text: "late"}
	app, _ := newTestApp(t, critic)
	cmd := press(app, "enter", "c")
	press(app, "esc", "down", "enter")
	app.Update(cmd())

	st := app.ctl.State()
	require.Equal(t, "2", st.FocusID)
	require.Empty(t, st.Critique.Text)
	require.False(t, st.Critique.Loading)
}

func TestFinishedCritiqueReleasesContext(t *testing.T) {
	critic := &stubCritic{text: "Quiet"}
	app, _ := newTestApp(t, critic)
	cmd := press(app, "enter", "c")
	msg := cmd()
	require.NoError(t, critic.ctx.Err())

	app.Update(msg)
	require.Equal(t, "Quiet Solitude", app.ctl.State().Critique.Text)
	require.ErrorIs(t, critic.ctx.Err(), context.Canceled)
	require.Nil(t, app.critiqueCancel)
}

func TestStaleCritiqueKeepsNewerRequestRunning(t *testing.T) {
	critic := &stubCritic{text: "x"}
	app, _ := newTestApp(t, critic)
	first := press(app, "enter", "c")
	firstMsg := first()
	second := press(app, "c")
	second()
	newer := critic.ctx

	app.Update(firstMsg)
	require.True(t, app.ctl.State().Critique.Loading)
	require.NoError(t, newer.Err())
}

func TestToggleModeFromOrderFormKeepsDraft(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "enter", "o")
	typeText(app, "Ana")

	press(app, "ctrl+a")
	st := app.ctl.State()
	require.Equal(t, controller.ModeAdmin, st.Mode)
	require.Equal(t, controller.ViewAdminList, st.View)
	require.False(t, app.orderInputs[0].Focused())

	press(app, "a")
	st = app.ctl.State()
	require.Equal(t, controller.ModeGallery, st.Mode)
	require.Equal(t, controller.ViewOrderForm, st.View)
	require.Equal(t, "1", st.FocusID)
	require.True(t, app.orderInputs[0].Focused())

	typeText(app, " Reyes")
	require.Equal(t, "Ana Reyes", app.orderInputs[0].Value())
}

func TestToggleModeFromSearch(t *testing.T) {
	app, _ := newTestApp(t, nil)
	press(app, "/")
	typeText(app, "sol")
	press(app, "ctrl+a")
	require.Equal(t, controller.ModeAdmin, app.ctl.State().Mode)
	require.False(t, app.searching)
	require.Equal(t, "sol", app.ctl.State().Query)
}

// Package tui is the terminal front end of the gallery: key dispatch,
// rendering and the async commands for loading and critiques.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/digietal/artgallery/internal/config"
	"github.com/digietal/artgallery/internal/controller"
	"github.com/digietal/artgallery/internal/critique"
	"github.com/digietal/artgallery/internal/gallery"
)

// Loader performs the initial artwork load.
type Loader interface {
	Load(ctx context.Context) ([]gallery.Artwork, error)
}

// Critic produces a critique for an artwork.
type Critic interface {
	Critique(ctx context.Context, a gallery.Artwork) (string, error)
}

// App is the bubbletea model. All state transitions go through ctl.
type App struct {
	ctx    context.Context
	cfg    config.Config
	ctl    *controller.Controller
	loader Loader
	critic Critic
	keys   *KeyRegistry

	spinner     spinner.Model
	search      textinput.Model
	searching   bool
	orderInputs []textinput.Model
	orderFocus  int
	formInputs  []textinput.Model

	listCursor  int
	adminCursor int
	// pageFocus is the admin page control that opened the form: "add" or "row:<id>".
	pageFocus string

	critiqueCancel context.CancelFunc
	status         string
	statusErr      bool
	width          int
	height         int
}

type loadedMsg struct {
	list []gallery.Artwork
	err  error
}

type critiqueMsg struct {
	token controller.CritiqueToken
	text  string
	err   error
}

var orderLabels = []string{"Your Name", "Your Email", "Shipping Address"}

var formLabels = map[string]string{
	controller.ControlTitle:       "Title",
	controller.ControlArtist:      "Artist",
	controller.ControlDescription: "Description",
	controller.ControlPrice:       "Price",
	controller.ControlImageURL:    "Image URL or file",
}

func New(ctx context.Context, cfg config.Config, ctl *controller.Controller, loader Loader, critic Critic) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "title or artist"

	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		ctl:     ctl,
		loader:  loader,
		critic:  critic,
		keys:    NewKeyRegistry(),
		spinner: sp,
		search:  search,
		width:   80,
		height:  24,
	}
	for _, label := range orderLabels {
		in := textinput.New()
		in.Prompt = label + ": "
		in.CharLimit = 256
		a.orderInputs = append(a.orderInputs, in)
	}
	for _, control := range controller.FormControls() {
		label, ok := formLabels[control]
		if !ok {
			continue
		}
		in := textinput.New()
		in.Prompt = label + ": "
		a.formInputs = append(a.formInputs, in)
	}

	trap := ctl.Modal()
	trap.OnFocus = a.focusFormControl
	trap.OnClose = a.restoreFocus
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCmd())
}

func (a *App) loadCmd() tea.Cmd {
	ctx, delay := a.ctx, a.cfg.UI.LoadDelay
	return func() tea.Msg {
		if delay > 0 {
			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return loadedMsg{err: ctx.Err()}
			case <-t.C:
			}
		}
		list, err := a.loader.Load(ctx)
		return loadedMsg{list: list, err: err}
	}
}

func (a *App) critiqueCmd(tok controller.CritiqueToken, art gallery.Artwork) tea.Cmd {
	a.cancelCritique()
	ctx, cancel := context.WithCancel(a.ctx)
	a.critiqueCancel = cancel
	critic := a.critic
	return func() tea.Msg {
		if critic == nil {
			return critiqueMsg{token: tok, err: critique.ErrDisabled}
		}
		text, err := critic.Critique(ctx, art)
		return critiqueMsg{token: tok, text: text, err: err}
	}
}

func (a *App) cancelCritique() {
	if a.critiqueCancel != nil {
		a.critiqueCancel()
		a.critiqueCancel = nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case loadedMsg:
		a.ctl.Loaded()
		if m.err != nil {
			a.setError("Could not load artworks: " + m.err.Error())
		} else {
			a.setStatus("")
		}
		return a, nil
	case critiqueMsg:
		if a.ctl.FinishCritique(m.token, m.text, m.err) {
			a.cancelCritique()
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}

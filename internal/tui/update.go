package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/digietal/artgallery/internal/controller"
	"github.com/digietal/artgallery/internal/gallery"
)

// scope maps the controller state to the key scope in effect.
func (a *App) scope() string {
	st := a.ctl.State()
	switch {
	case st.Loading:
		return scopeLoading
	case st.ConfirmDeleteID != "":
		return scopeConfirmDelete
	case st.Form != nil:
		return scopeArtworkForm
	}
	switch st.View {
	case controller.ViewGalleryDetail:
		return scopeGalleryDetail
	case controller.ViewOrderForm:
		return scopeOrderForm
	case controller.ViewOrderConfirmation:
		return scopeConfirmation
	case controller.ViewAdminList:
		return scopeAdminList
	}
	if a.searching {
		return scopeSearch
	}
	return scopeGalleryList
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := a.scope()
	var action Action
	if b := a.keys.Lookup(m.String(), scope); b != nil {
		action = b.Action
	}
	if action == actionQuit {
		a.cancelCritique()
		return a, tea.Quit
	}

	switch scope {
	case scopeSearch:
		return a.handleSearchKey(m, action)
	case scopeGalleryList:
		return a.handleGalleryListKey(action)
	case scopeGalleryDetail:
		return a.handleDetailKey(action)
	case scopeOrderForm:
		return a.handleOrderKey(m, action)
	case scopeConfirmation:
		return a.handleConfirmationKey(action)
	case scopeAdminList:
		return a.handleAdminKey(action)
	case scopeArtworkForm:
		return a.handleFormKey(m, action)
	case scopeConfirmDelete:
		return a.handleConfirmDeleteKey(action)
	}
	return a, nil
}

func (a *App) handleGalleryListKey(action Action) (tea.Model, tea.Cmd) {
	list := a.ctl.Artworks()
	switch action {
	case actionDown:
		a.listCursor = clamp(a.listCursor+1, len(list))
	case actionUp:
		a.listCursor = clamp(a.listCursor-1, len(list))
	case actionSelect:
		if len(list) == 0 {
			return a, nil
		}
		a.report(a.ctl.Select(list[clamp(a.listCursor, len(list))].ID))
	case actionSearch:
		a.searching = true
		a.search.SetValue(a.ctl.State().Query)
		a.search.CursorEnd()
		return a, a.search.Focus()
	case actionBack:
		if a.ctl.State().Query != "" {
			a.clearSearch()
		}
	case actionToggleMode:
		a.toggleMode()
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg, action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionSubmit:
		a.searching = false
		a.search.Blur()
		return a, nil
	case actionToggleMode:
		a.toggleMode()
		return a, nil
	case actionCancel:
		a.clearSearch()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.ctl.SetQuery(a.search.Value())
	a.listCursor = clamp(a.listCursor, len(a.ctl.Artworks()))
	return a, cmd
}

func (a *App) clearSearch() {
	a.searching = false
	a.search.Blur()
	a.search.SetValue("")
	a.ctl.SetQuery("")
	a.listCursor = 0
}

func (a *App) handleDetailKey(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionBack:
		a.cancelCritique()
		a.report(a.ctl.Back())
	case actionOrder:
		if err := a.ctl.PlaceOrder(); err != nil {
			a.report(err)
			return a, nil
		}
		a.cancelCritique()
		for i := range a.orderInputs {
			a.orderInputs[i].SetValue("")
			a.orderInputs[i].Blur()
		}
		a.orderFocus = 0
		return a, a.orderInputs[0].Focus()
	case actionCritique:
		tok, err := a.ctl.StartCritique()
		if err != nil {
			a.report(err)
			return a, nil
		}
		art, _ := a.ctl.Focused()
		return a, a.critiqueCmd(tok, art)
	case actionToggleMode:
		a.cancelCritique()
		a.toggleMode()
	}
	return a, nil
}

func (a *App) handleOrderKey(m tea.KeyMsg, action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionNext, actionPrev:
		dir := 1
		if action == actionPrev {
			dir = -1
		}
		a.orderInputs[a.orderFocus].Blur()
		a.orderFocus = (a.orderFocus + dir + len(a.orderInputs)) % len(a.orderInputs)
		return a, a.orderInputs[a.orderFocus].Focus()
	case actionSubmit:
		order, err := a.ctl.SubmitOrder(a.ctx, gallery.OrderFields{
			Name:    a.orderInputs[0].Value(),
			Email:   a.orderInputs[1].Value(),
			Address: a.orderInputs[2].Value(),
		})
		var verr *gallery.ValidationError
		switch {
		case errors.As(err, &verr):
			a.focusFirstMissing(verr)
			return a, nil
		case err != nil:
			a.report(err)
			return a, nil
		}
		for i := range a.orderInputs {
			a.orderInputs[i].SetValue("")
			a.orderInputs[i].Blur()
		}
		a.setStatus(fmt.Sprintf("Order placed for %q", order.ArtworkTitle))
		return a, nil
	case actionBack:
		for i := range a.orderInputs {
			a.orderInputs[i].Blur()
		}
		a.report(a.ctl.Back())
		return a, nil
	case actionToggleMode:
		return a, a.toggleMode()
	}
	var cmd tea.Cmd
	a.orderInputs[a.orderFocus], cmd = a.orderInputs[a.orderFocus].Update(m)
	return a, cmd
}

func (a *App) focusFirstMissing(verr *gallery.ValidationError) {
	for i, field := range []string{"name", "email", "address"} {
		if verr.Has(field) {
			a.orderInputs[a.orderFocus].Blur()
			a.orderFocus = i
			a.orderInputs[i].Focus()
			return
		}
	}
}

func (a *App) handleConfirmationKey(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionHome:
		a.report(a.ctl.BackToHome())
		a.listCursor = clamp(a.listCursor, len(a.ctl.Artworks()))
	case actionToggleMode:
		a.toggleMode()
	}
	return a, nil
}

func (a *App) handleAdminKey(action Action) (tea.Model, tea.Cmd) {
	list := a.ctl.AdminArtworks()
	switch action {
	case actionDown:
		a.adminCursor = clamp(a.adminCursor+1, len(list))
		a.pageFocus = ""
	case actionUp:
		a.adminCursor = clamp(a.adminCursor-1, len(list))
		a.pageFocus = ""
	case actionAdd:
		if a.report(a.ctl.OpenAddForm("add")) {
			a.fillForm()
		}
	case actionEdit:
		if len(list) == 0 {
			return a, nil
		}
		id := list[clamp(a.adminCursor, len(list))].ID
		if a.report(a.ctl.OpenEditForm(id, "row:"+id)) {
			a.fillForm()
		}
	case actionDelete:
		if len(list) == 0 {
			return a, nil
		}
		a.report(a.ctl.RequestDelete(list[clamp(a.adminCursor, len(list))].ID))
	case actionToggleMode:
		return a, a.toggleMode()
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg, action Action) (tea.Model, tea.Cmd) {
	trap := a.ctl.Modal()
	switch action {
	case actionNext:
		trap.Next()
		return a, nil
	case actionPrev:
		trap.Prev()
		return a, nil
	case actionCancel:
		a.ctl.CancelForm()
		return a, nil
	case actionSubmit:
		saved, _, err := a.ctl.SaveForm(a.ctx, a.formFields())
		if err != nil {
			// shown inline in the form
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Saved %q", saved.Title))
		return a, nil
	}
	i := formIndex(trap.Focused())
	if i < 0 {
		return a, nil
	}
	var cmd tea.Cmd
	a.formInputs[i], cmd = a.formInputs[i].Update(m)
	return a, cmd
}

func (a *App) handleConfirmDeleteKey(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionConfirm:
		id := a.ctl.State().ConfirmDeleteID
		title := id
		for _, art := range a.ctl.AdminArtworks() {
			if art.ID == id {
				title = art.Title
			}
		}
		if a.report(a.ctl.ConfirmDelete(a.ctx, true)) {
			a.setStatus(fmt.Sprintf("Deleted %q", title))
		}
		a.adminCursor = clamp(a.adminCursor, len(a.ctl.AdminArtworks()))
	case actionCancel:
		a.report(a.ctl.ConfirmDelete(a.ctx, false))
	}
	return a, nil
}

// toggleMode switches between gallery and admin. Coming back to the order
// form puts the cursor back in the field it left; the draft is kept.
func (a *App) toggleMode() tea.Cmd {
	if !a.report(a.ctl.ToggleMode()) {
		return nil
	}
	a.searching = false
	a.search.Blur()
	for i := range a.orderInputs {
		a.orderInputs[i].Blur()
	}
	a.listCursor = clamp(a.listCursor, len(a.ctl.Artworks()))
	a.adminCursor = clamp(a.adminCursor, len(a.ctl.AdminArtworks()))
	if a.ctl.State().View == controller.ViewOrderForm {
		return a.orderInputs[a.orderFocus].Focus()
	}
	return nil
}

// report shows err in the status line and reports whether the call succeeded.
func (a *App) report(err error) bool {
	if err == nil {
		return true
	}
	a.setError(err.Error())
	return false
}

func (a *App) fillForm() {
	st := a.ctl.State()
	if st.Form == nil {
		return
	}
	f := st.Form.Fields
	values := map[string]string{
		controller.ControlTitle:       f.Title,
		controller.ControlArtist:      f.Artist,
		controller.ControlDescription: f.Description,
		controller.ControlPrice:       f.Price,
		controller.ControlImageURL:    f.ImageURL,
	}
	for control, v := range values {
		if i := formIndex(control); i >= 0 {
			a.formInputs[i].SetValue(v)
			a.formInputs[i].CursorEnd()
		}
	}
}

func (a *App) formFields() gallery.ArtworkFields {
	value := func(control string) string {
		if i := formIndex(control); i >= 0 {
			return a.formInputs[i].Value()
		}
		return ""
	}
	return gallery.ArtworkFields{
		Title:       value(controller.ControlTitle),
		Artist:      value(controller.ControlArtist),
		Description: value(controller.ControlDescription),
		Price:       value(controller.ControlPrice),
		ImageURL:    value(controller.ControlImageURL),
	}
}

// focusFormControl moves the text cursor to the input behind control.
func (a *App) focusFormControl(control string) {
	target := formIndex(control)
	for i := range a.formInputs {
		if i == target {
			a.formInputs[i].Focus()
		} else {
			a.formInputs[i].Blur()
		}
	}
}

// restoreFocus returns admin page focus to the control that opened the form.
func (a *App) restoreFocus(opener string) {
	for i := range a.formInputs {
		a.formInputs[i].Blur()
	}
	a.pageFocus = opener
	if id, ok := strings.CutPrefix(opener, "row:"); ok {
		for i, art := range a.ctl.AdminArtworks() {
			if art.ID == id {
				a.adminCursor = i
			}
		}
	}
}

// formIndex maps a form control to its text input, or -1 for buttons.
func formIndex(control string) int {
	i := 0
	for _, c := range controller.FormControls() {
		if _, ok := formLabels[c]; !ok {
			continue
		}
		if c == control {
			return i
		}
		i++
	}
	return -1
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

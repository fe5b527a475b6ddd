package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/digietal/artgallery/internal/controller"
	"github.com/digietal/artgallery/internal/critique"
	"github.com/digietal/artgallery/internal/gallery"
)

const footerHeight = 2

func (a *App) View() string {
	st := a.ctl.State()
	bodyHeight := a.height - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case st.Loading:
		body = a.spinner.View() + " Loading artworks…"
	case st.View == controller.ViewGalleryDetail:
		body = a.renderDetail(st)
	case st.View == controller.ViewOrderForm:
		body = a.renderOrderForm(st)
	case st.View == controller.ViewOrderConfirmation:
		body = a.renderConfirmation(st)
	case st.View == controller.ViewAdminList:
		body = a.renderAdminList(bodyHeight - 4)
	default:
		body = a.renderGalleryList(st, bodyHeight-4)
	}
	page := fitHeight(a.renderHeader(st)+"\n\n"+body, bodyHeight)

	switch {
	case st.ConfirmDeleteID != "":
		page = placeModal(page, a.renderConfirmDelete(st.ConfirmDeleteID), a.width, bodyHeight)
	case st.Form != nil:
		page = placeModal(page, a.renderForm(st.Form), a.width, bodyHeight)
	}
	return page + "\n" + a.renderFooter()
}

func (a *App) renderHeader(st controller.State) string {
	galleryTab, adminTab := activeTab, inactiveTab
	if st.Mode == controller.ModeAdmin {
		galleryTab, adminTab = inactiveTab, activeTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		brandStyle.Render("DIGIeTAL ART GALLERY"), "  ",
		galleryTab.Render("Gallery"), " ", adminTab.Render("Admin"))
}

func (a *App) price(p gallery.Price) string {
	return p.Display(a.cfg.UI.CurrencySymbol)
}

func (a *App) renderGalleryList(st controller.State, rows int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Current Exhibition"))
	b.WriteString("\n")
	list := a.ctl.Artworks()
	switch {
	case a.searching:
		b.WriteString(a.search.View())
	case st.Query != "":
		b.WriteString(mutedStyle.Render(fmt.Sprintf("filter %q · %d of %d", st.Query, len(list), len(a.ctl.AdminArtworks()))))
	}
	b.WriteString("\n")
	if len(list) == 0 {
		b.WriteString(mutedStyle.Render("No artworks match."))
		return b.String()
	}
	titleW := a.width / 3
	start, end := window(a.listCursor, len(list), rows)
	for i := start; i < end; i++ {
		art := list[i]
		line := fmt.Sprintf("%s  %s  %s",
			column(art.Title, titleW),
			artistStyle.Render(column("by "+art.Artist, titleW)),
			priceStyle.Render(a.price(art.Price)))
		b.WriteString(row(line, i == a.listCursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderDetail(st controller.State) string {
	art, ok := a.ctl.Focused()
	if !ok {
		return mutedStyle.Render("Artwork not found.")
	}
	wrap := lipgloss.NewStyle().Width(max(a.width-4, 20))
	lines := []string{
		mutedStyle.Render("← Back to Gallery (esc)"),
		"",
		headingStyle.Render(art.Title),
		artistStyle.Render("by " + art.Artist),
	}
	if art.Description != "" {
		lines = append(lines, wrap.Render(textStyle.Render(art.Description)))
	}
	lines = append(lines,
		priceStyle.Render(a.price(art.Price)),
		mutedStyle.Render(describeImage(art.ImageURL, a.width-4)),
		"",
		focusedButton.Render("Order This Artwork"),
		"",
		headingStyle.Render("AI Critique"),
	)

	c := st.Critique
	switch {
	case c.Loading:
		lines = append(lines, a.spinner.View()+" Asking the critic…")
	case errors.Is(c.Err, critique.ErrDisabled):
		lines = append(lines, warnStyle.Render(c.Err.Error()))
	case c.Err != nil:
		lines = append(lines, errorStyle.Render("Critique failed: "+c.Err.Error()))
	case c.Text != "":
		lines = append(lines, wrap.Render(c.Text))
	default:
		lines = append(lines, mutedStyle.Render("Press c for a critique of this piece."))
	}
	return strings.Join(lines, "\n")
}

// describeImage summarises an image reference; inline data is not printed.
func describeImage(ref string, width int) string {
	if gallery.IsDataURI(ref) {
		mime, data, err := gallery.DecodeDataURI(ref)
		if err != nil {
			return "inline image (unreadable)"
		}
		return fmt.Sprintf("inline image (%s, %s)", mime, humanize.Bytes(uint64(len(data))))
	}
	return clip(ref, width)
}

func (a *App) renderOrderForm(st controller.State) string {
	art, _ := a.ctl.Focused()
	lines := []string{
		mutedStyle.Render("← Back to Artwork (esc)"),
		"",
		headingStyle.Render("Order: " + art.Title),
		priceStyle.Render(a.price(art.Price)),
		"",
	}
	for _, in := range a.orderInputs {
		lines = append(lines, in.View())
	}
	if err := st.Order.Err; err != nil {
		lines = append(lines, "", errorStyle.Render(validationMessage(err)))
	}
	lines = append(lines, "", buttonStyle.Render("Confirm Order (enter)"))
	return strings.Join(lines, "\n")
}

func (a *App) renderConfirmation(st controller.State) string {
	lines := []string{
		successStyle.Render("Order Confirmed!"),
		"",
		"Thank you for your purchase! We will send a confirmation and shipping details to your email shortly.",
	}
	if o := st.LastOrder; o != nil {
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("%s · %s · %s", o.ArtworkTitle, o.CustomerName, o.CustomerEmail)))
	}
	lines = append(lines, "", focusedButton.Render("Return to Gallery"))
	return lipgloss.NewStyle().Width(max(a.width-4, 20)).Render(strings.Join(lines, "\n"))
}

func (a *App) renderAdminList(rows int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Manage Artworks"))
	b.WriteString("\n")
	add := buttonStyle
	if a.pageFocus == "add" {
		add = focusedButton
	}
	b.WriteString(add.Render("+ Add Artwork (n)"))
	b.WriteString("\n")
	list := a.ctl.AdminArtworks()
	if len(list) == 0 {
		b.WriteString(mutedStyle.Render("No artworks yet."))
		return b.String()
	}
	titleW := a.width / 3
	start, end := window(a.adminCursor, len(list), rows-1)
	for i := start; i < end; i++ {
		art := list[i]
		line := fmt.Sprintf("%s  %s  %s  %s",
			mutedStyle.Render(column(art.ID, 8)),
			column(art.Title, titleW),
			artistStyle.Render(column(art.Artist, titleW/2)),
			priceStyle.Render(a.price(art.Price)))
		b.WriteString(row(line, i == a.adminCursor && a.pageFocus != "add"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderForm(form *controller.ArtworkForm) string {
	title := "Add Artwork"
	if form.Editing {
		title = "Edit Artwork"
	}
	var verr *gallery.ValidationError
	errors.As(form.Err, &verr)

	lines := []string{headingStyle.Render(title), ""}
	for _, control := range controller.FormControls() {
		i := formIndex(control)
		if i < 0 {
			continue
		}
		marker := "  "
		if verr != nil && verr.Has(control) {
			marker = errorStyle.Render("! ")
		}
		lines = append(lines, marker+a.formInputs[i].View())
	}
	save := buttonStyle
	if a.ctl.Modal().Focused() == controller.ControlSave {
		save = focusedButton
	}
	lines = append(lines, "", "  "+save.Render("Save"))
	if form.Err != nil {
		lines = append(lines, "", errorStyle.Render(validationMessage(form.Err)))
	}
	lines = append(lines, "", mutedStyle.Render("tab: next  enter: save  esc: cancel"))
	w := min(64, max(a.width-4, 30))
	return modalStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func (a *App) renderConfirmDelete(id string) string {
	title := id
	for _, art := range a.ctl.AdminArtworks() {
		if art.ID == id {
			title = art.Title
		}
	}
	body := fmt.Sprintf("Delete %q?\n\n%s", title, mutedStyle.Render("y: delete  n: keep"))
	return modalStyle.Render(body)
}

func (a *App) renderFooter() string {
	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(a.status)
		} else {
			status = infoStyle.Render(a.status)
		}
	}
	var help []string
	for _, b := range a.keys.HelpBindings(a.scope()) {
		h := b.Help()
		help = append(help, footerKey.Render(h.Key)+" "+mutedStyle.Render(h.Desc))
	}
	return clip(status, a.width) + "\n" + clip(strings.Join(help, "  "), a.width)
}

func validationMessage(err error) string {
	var verr *gallery.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

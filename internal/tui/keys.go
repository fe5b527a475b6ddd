package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scope  string
}

// KeyRegistry resolves key names to actions per scope. Non-text scopes fall
// back to the global scope; text scopes only see their own bindings so typed
// characters reach the input.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
	textScopes      map[string]bool
}

const (
	scopeGlobal        = "global"
	scopeLoading       = "loading"
	scopeGalleryList   = "gallery_list"
	scopeSearch        = "search"
	scopeGalleryDetail = "gallery_detail"
	scopeOrderForm     = "order_form"
	scopeConfirmation  = "order_confirmation"
	scopeAdminList     = "admin_list"
	scopeArtworkForm   = "artwork_form"
	scopeConfirmDelete = "confirm_delete"
)

const (
	actionQuit       Action = "quit"
	actionToggleMode Action = "toggle_mode"
	actionUp         Action = "up"
	actionDown       Action = "down"
	actionSelect     Action = "select"
	actionBack       Action = "back"
	actionSearch     Action = "search"
	actionOrder      Action = "order"
	actionCritique   Action = "critique"
	actionNext       Action = "next"
	actionPrev       Action = "prev"
	actionSubmit     Action = "submit"
	actionHome       Action = "home"
	actionAdd        Action = "add"
	actionEdit       Action = "edit"
	actionDelete     Action = "delete"
	actionConfirm    Action = "confirm"
	actionCancel     Action = "cancel"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
		textScopes: map[string]bool{
			scopeSearch:      true,
			scopeOrderForm:   true,
			scopeArtworkForm: true,
		},
	}
	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scope: scope})
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeLoading, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeGalleryList, actionDown, []string{"j", "down"}, "down")
	reg(scopeGalleryList, actionUp, []string{"k", "up"}, "up")
	reg(scopeGalleryList, actionSelect, []string{"enter"}, "view")
	reg(scopeGalleryList, actionSearch, []string{"/"}, "search")
	reg(scopeGalleryList, actionBack, []string{"esc"}, "clear search")
	reg(scopeGalleryList, actionToggleMode, []string{"a"}, "admin")

	reg(scopeSearch, actionSubmit, []string{"enter"}, "apply")
	reg(scopeSearch, actionCancel, []string{"esc"}, "clear")
	reg(scopeSearch, actionQuit, []string{"ctrl+c"}, "quit")
	reg(scopeSearch, actionToggleMode, []string{"ctrl+a"}, "admin")

	reg(scopeGalleryDetail, actionBack, []string{"esc", "backspace", "b"}, "back to gallery")
	reg(scopeGalleryDetail, actionOrder, []string{"o", "enter"}, "order this artwork")
	reg(scopeGalleryDetail, actionCritique, []string{"c"}, "AI critique")
	reg(scopeGalleryDetail, actionToggleMode, []string{"a"}, "admin")

	reg(scopeOrderForm, actionNext, []string{"tab", "down"}, "next field")
	reg(scopeOrderForm, actionPrev, []string{"shift+tab", "up"}, "prev field")
	reg(scopeOrderForm, actionSubmit, []string{"enter"}, "confirm order")
	reg(scopeOrderForm, actionBack, []string{"esc"}, "back to artwork")
	reg(scopeOrderForm, actionToggleMode, []string{"ctrl+a"}, "admin")
	reg(scopeOrderForm, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeConfirmation, actionHome, []string{"enter", "esc"}, "return to gallery")
	reg(scopeConfirmation, actionToggleMode, []string{"a"}, "admin")

	reg(scopeAdminList, actionDown, []string{"j", "down"}, "down")
	reg(scopeAdminList, actionUp, []string{"k", "up"}, "up")
	reg(scopeAdminList, actionAdd, []string{"n"}, "add")
	reg(scopeAdminList, actionEdit, []string{"e", "enter"}, "edit")
	reg(scopeAdminList, actionDelete, []string{"d", "x"}, "delete")
	reg(scopeAdminList, actionToggleMode, []string{"a", "esc"}, "gallery")

	reg(scopeArtworkForm, actionNext, []string{"tab", "down"}, "next")
	reg(scopeArtworkForm, actionPrev, []string{"shift+tab", "up"}, "prev")
	reg(scopeArtworkForm, actionSubmit, []string{"enter"}, "save")
	reg(scopeArtworkForm, actionCancel, []string{"esc"}, "cancel")
	reg(scopeArtworkForm, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeConfirmDelete, actionConfirm, []string{"y"}, "delete")
	reg(scopeConfirmDelete, actionCancel, []string{"n", "esc"}, "keep")

	return r
}

// Register adds b to its scope. Keys already bound in the scope are ignored.
func (r *KeyRegistry) Register(b Binding) {
	scope := strings.TrimSpace(b.Scope)
	keys := normalizeKeyList(b.Keys)
	if scope == "" || len(keys) == 0 {
		return
	}
	if _, ok := r.indexByScope[scope]; !ok {
		r.indexByScope[scope] = make(map[string]*Binding)
	}
	for _, k := range keys {
		if _, taken := r.indexByScope[scope][k]; taken {
			return
		}
	}
	copyBinding := b
	copyBinding.Keys = keys
	copyBinding.Scope = scope
	r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
	for _, k := range keys {
		r.indexByScope[scope][k] = &copyBinding
	}
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.indexByScope[scope][keyName]; b != nil {
		return b
	}
	if scope != scopeGlobal && !r.textScopes[scope] {
		return r.indexByScope[scopeGlobal][keyName]
	}
	return nil
}

// HelpBindings returns the scope's bindings for the footer.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.bindingsByScope[scope]
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = normalizeKeyName(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func normalizeKeyName(k string) string {
	k = strings.TrimSpace(k)
	switch strings.ToLower(k) {
	case "":
		return ""
	case "return":
		return "enter"
	case "escape":
		return "esc"
	case "backtab":
		return "shift+tab"
	}
	if len(k) == 1 {
		return k
	}
	return strings.ToLower(k)
}

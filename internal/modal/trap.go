// Package modal keeps keyboard focus inside an open dialog and hands it back
// to whatever opened the dialog once it closes.
package modal

import "errors"

// ErrNoControls is returned when a modal is opened without focusable controls.
var ErrNoControls = errors.New("modal: no focusable controls")

// Trap is the focus state of one modal. The zero value is closed.
type Trap struct {
	// OnFocus runs whenever focus lands on a control inside the modal.
	OnFocus func(control string)
	// OnClose runs with the opener when the modal closes.
	OnClose func(opener string)

	opener   string
	controls []string
	index    int
	open     bool
}

// Open moves focus to the first control. opener is remembered for Close.
func (t *Trap) Open(opener string, controls ...string) error {
	if len(controls) == 0 {
		return ErrNoControls
	}
	t.opener = opener
	t.controls = append([]string(nil), controls...)
	t.index = 0
	t.open = true
	t.focus()
	return nil
}

func (t *Trap) IsOpen() bool { return t.open }

// Focused is the control holding focus, or "" when closed.
func (t *Trap) Focused() string {
	if !t.open {
		return ""
	}
	return t.controls[t.index]
}

// Next moves focus forward, wrapping from the last control to the first.
func (t *Trap) Next() string {
	if !t.open {
		return ""
	}
	t.index = (t.index + 1) % len(t.controls)
	t.focus()
	return t.controls[t.index]
}

// Prev moves focus backward, wrapping from the first control to the last.
func (t *Trap) Prev() string {
	if !t.open {
		return ""
	}
	t.index = (t.index - 1 + len(t.controls)) % len(t.controls)
	t.focus()
	return t.controls[t.index]
}

// FocusOn moves focus to control if it belongs to the modal.
func (t *Trap) FocusOn(control string) bool {
	if !t.open {
		return false
	}
	for i, c := range t.controls {
		if c == control {
			t.index = i
			t.focus()
			return true
		}
	}
	return false
}

// Close releases the trap and returns the opener so focus can go back to it.
func (t *Trap) Close() string {
	if !t.open {
		return ""
	}
	opener := t.opener
	t.open = false
	t.controls = nil
	t.index = 0
	t.opener = ""
	if t.OnClose != nil {
		t.OnClose(opener)
	}
	return opener
}

func (t *Trap) focus() {
	if t.OnFocus != nil {
		t.OnFocus(t.controls[t.index])
	}
}

package secret

import (
	"connectorauth/internal/authctx"
	"connectorauth/internal/form"
)

// Toggle button labels.
const (
	LabelShow = "Show"
	LabelHide = "Hide"
)

// RefusedTitle explains why a toggle was disabled.
const RefusedTitle = "Stored value cannot be revealed. Enter a new value to replace it."

// Options configures a Controller.
type Options struct {
	// Placeholder is the masking placeholder shared with the backend.
	Placeholder string
	// Reporter receives diagnostics. Defaults to a LogReporter.
	Reporter form.Reporter
	// OnHeaderToggle is called with the owning container after a header
	// value was toggled, so the container's JSON can be recomputed.
	OnHeaderToggle func(containerID string)
}

// Controller toggles secret fields between masked and revealed display.
type Controller struct {
	lookup         form.Lookup
	placeholder    string
	reporter       form.Reporter
	onHeaderToggle func(containerID string)
}

// NewController creates a controller resolving fields through lookup.
func NewController(lookup form.Lookup, opts Options) *Controller {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = form.LogReporter{Subsystem: "Secret"}
	}
	return &Controller{
		lookup:         lookup,
		placeholder:    opts.Placeholder,
		reporter:       reporter,
		onHeaderToggle: opts.OnHeaderToggle,
	}
}

// ToggleByID resolves the field and its button by identifier and toggles.
// An empty buttonID selects the field's conventional toggle button. Unknown
// identifiers are a no-op.
func (c *Controller) ToggleByID(fieldID, buttonID string) {
	if buttonID == "" && fieldID != "" {
		buttonID = authctx.ToggleID(fieldID)
	}
	c.Toggle(form.InputByID(c.lookup, fieldID), form.ButtonByID(c.lookup, buttonID))
}

// Toggle switches field between masked and revealed display and updates
// button to match. A nil field is a no-op; a nil button only skips the
// button update.
func (c *Controller) Toggle(field *form.Input, button *form.Button) {
	if field == nil {
		return
	}

	if field.Revealed() {
		c.mask(field, button)
	} else {
		c.reveal(field, button)
	}

	if owner := field.Owner(); owner != "" && c.onHeaderToggle != nil {
		c.onHeaderToggle(owner)
	}
}

func (c *Controller) mask(field *form.Input, button *form.Button) {
	field.SetType(form.TypePassword)

	if field.IsStoredSecret() {
		if c.unchanged(field) {
			field.SetValue(c.placeholder)
		} else {
			// The user typed a replacement while revealed; it is fresh input now.
			field.ClearStoredSecret()
			c.reporter.Debugf("Field %s holds a new value, no longer a stored secret", field.ID())
		}
	}

	setButton(button, false)
}

func (c *Controller) reveal(field *form.Input, button *form.Button) {
	if !field.IsStoredSecret() {
		field.SetType(form.TypeText)
		setButton(button, true)
		return
	}

	real, known := field.RealValue()
	if !known && field.Value() != c.placeholder {
		// A replacement was typed over the placeholder; it is plaintext now.
		field.ClearStoredSecret()
		c.reporter.Debugf("Field %s holds a new value, no longer a stored secret", field.ID())
		field.SetType(form.TypeText)
		setButton(button, true)
		return
	}
	if !known {
		if button != nil {
			button.Disable(RefusedTitle)
			button.SetLabel(LabelShow)
			button.SetPressed(false)
		}
		c.reporter.Debugf("Refusing to reveal %s: stored value is not available locally", field.ID())
		return
	}

	if field.Value() == c.placeholder {
		field.SetValue(real.Reveal())
	}
	field.SetType(form.TypeText)
	setButton(button, true)
}

// unchanged reports whether a stored secret still shows the placeholder or
// its retained real value.
func (c *Controller) unchanged(field *form.Input) bool {
	value := field.Value()
	if value == c.placeholder {
		return true
	}
	real, known := field.RealValue()
	return known && real.Equal(value)
}

func setButton(button *form.Button, revealed bool) {
	if button == nil {
		return
	}
	button.Enable()
	button.SetPressed(revealed)
	if revealed {
		button.SetLabel(LabelHide)
	} else {
		button.SetLabel(LabelShow)
	}
}

package form

import (
	"fmt"
)

// InputType is the display mode of an input.
type InputType string

const (
	// TypePassword displays the value masked.
	TypePassword InputType = "password"
	// TypeText displays the value as plaintext.
	TypeText InputType = "text"
	// TypeHidden is never displayed; used for serialized payload fields.
	TypeHidden InputType = "hidden"
)

// Input is a single form field.
type Input struct {
	id        string
	value     string
	inputType InputType
	required  bool
	validity  string

	// owner is the header container this input belongs to, if any.
	owner string

	// storedSecret marks a value that was loaded from the backend or from
	// an existing configuration rather than typed by the user.
	storedSecret bool
	real         Secret
	hasReal      bool
}

// NewInput creates an empty input.
func NewInput(id string, inputType InputType) *Input {
	if inputType == "" {
		inputType = TypeText
	}
	return &Input{id: id, inputType: inputType}
}

// ID implements Element.
func (i *Input) ID() string { return i.id }

// Value returns the displayed value.
func (i *Input) Value() string { return i.value }

// SetValue replaces the displayed value.
func (i *Input) SetValue(v string) { i.value = v }

// Type returns the display mode.
func (i *Input) Type() InputType { return i.inputType }

// SetType changes the display mode.
func (i *Input) SetType(t InputType) { i.inputType = t }

// Revealed reports whether the value is currently displayed as plaintext.
func (i *Input) Revealed() bool { return i.inputType == TypeText }

// Required reports whether the field must be filled before submission.
func (i *Input) Required() bool { return i.required }

// SetRequired sets the required flag.
func (i *Input) SetRequired(required bool) { i.required = required }

// SetCustomValidity sets the field's validation message. An empty message
// marks the field valid again.
func (i *Input) SetCustomValidity(msg string) { i.validity = msg }

// ValidationMessage returns the current validation message.
func (i *Input) ValidationMessage() string { return i.validity }

// Valid reports whether the field has no validation message.
func (i *Input) Valid() bool { return i.validity == "" }

// Owner returns the identifier of the header container owning this input.
func (i *Input) Owner() string { return i.owner }

// SetOwner records the owning header container.
func (i *Input) SetOwner(containerID string) { i.owner = containerID }

// IsStoredSecret reports whether the value is a previously stored secret.
func (i *Input) IsStoredSecret() bool { return i.storedSecret }

// RealValue returns the retained plaintext of a stored secret. ok is false
// when the plaintext is not known locally.
func (i *Input) RealValue() (s Secret, ok bool) {
	if !i.storedSecret || !i.hasReal {
		return Secret{}, false
	}
	return i.real, true
}

// MarkStoredSecret flags the input as holding a stored secret. real is the
// plaintext if it is known, nil otherwise.
func (i *Input) MarkStoredSecret(real *string) {
	i.storedSecret = true
	if real != nil {
		i.real = NewSecret(*real)
		i.hasReal = true
	} else {
		i.real = Secret{}
		i.hasReal = false
	}
}

// ClearStoredSecret turns the input back into plain user input.
func (i *Input) ClearStoredSecret() {
	i.storedSecret = false
	i.real = Secret{}
	i.hasReal = false
}

// String never includes the value.
func (i *Input) String() string {
	return fmt.Sprintf("Input(%s, %s)", i.id, i.inputType)
}

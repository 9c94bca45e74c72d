package headers

import (
	"fmt"
	"strings"

	"connectorauth/internal/form"
)

// Entry is one header as supplied by a caller or a backend payload.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`

	// IsMasked displays the value as the masking placeholder. The true
	// value is kept in RealValue.
	IsMasked bool `json:"isMasked,omitempty" yaml:"isMasked,omitempty"`
	// RealValue is the retained plaintext of a masked entry, nil when it is
	// not known locally.
	RealValue *string `json:"realValue,omitempty" yaml:"realValue,omitempty"`
	// Existing marks an entry loaded from a stored configuration.
	Existing bool `json:"existing,omitempty" yaml:"existing,omitempty"`
}

// String never includes the value.
func (e Entry) String() string {
	return fmt.Sprintf("Entry(%s, masked=%t)", e.Key, e.IsMasked)
}

// LoadOptions controls Store.Load.
type LoadOptions struct {
	// MaskValues displays every loaded value masked and retains the
	// original as the real value.
	MaskValues bool
}

// Row is a live header row of a container.
type Row struct {
	id        string
	container string

	Key      *form.Input
	Value    *form.Input
	Toggle   *form.Button
	Existing bool
}

// ID implements form.Element.
func (r *Row) ID() string { return r.id }

// Container returns the identifier of the owning container.
func (r *Row) Container() string { return r.container }

// Empty reports whether both key and value are blank.
func (r *Row) Empty() bool {
	return strings.TrimSpace(r.Key.Value()) == "" && r.Value.Value() == ""
}

func (r *Row) elements() []form.Element {
	return []form.Element{r.Key, r.Value, r.Toggle}
}

package form

// Secret wraps the real plaintext of a masked field so it cannot leak through
// logging or serialization by accident.
//
// Secret implements fmt.Stringer and fmt.GoStringer to return "[REDACTED]",
// and its text and JSON encodings are redacted as well. Use Reveal only when
// the plaintext has to be displayed in a revealed field or emitted into the
// header list.
//
//	s := form.NewSecret("hidden")
//	fmt.Println(s)     // prints: [REDACTED]
//	plain := s.Reveal() // returns: "hidden"
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Reveal returns the plaintext.
func (s Secret) Reveal() string {
	return s.value
}

// Equal reports whether the plaintext equals v.
func (s Secret) Equal(v string) bool {
	return s.value == v
}

// IsEmpty returns true if the plaintext is empty.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return "form.Secret{[REDACTED]}"
}

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

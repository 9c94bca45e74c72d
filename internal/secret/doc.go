// Package secret implements the reveal/mask toggle of sensitive form fields.
//
// The controller never displays a masking placeholder as if it were the real
// value and never invents a plaintext that is not available locally: a
// stored secret whose real value is unknown stays masked and its toggle is
// disabled.
package secret

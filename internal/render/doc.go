// Package render prints a mounted authentication form as go-pretty tables:
// which field groups are visible, the current value of every visible field
// and the header rows of the instance together with their validation status.
//
// Secret inputs are never printed in clear unless they are revealed.
package render

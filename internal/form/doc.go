// Package form models the elements of an authentication-configuration form.
//
// The controllers in this module never touch a browser DOM. Instead they
// address fields, field groups, toggle buttons and header containers through
// the Lookup interface, the same way the admin UI resolves elements by
// identifier. Document is the in-memory implementation used by the CLI, the
// REPL and the tests.
//
// # Elements
//
//   - Input: a text, password or hidden input. Inputs can be stored secrets:
//     their display value is the masking placeholder and the real plaintext,
//     when known, is retained as a Secret.
//   - Group: a field group that is shown or hidden as a unit.
//   - Button: a reveal/mask toggle with a label, a pressed state and a
//     disabled state.
//   - Container: the anchor element that header rows belong to.
//
// # Diagnostics
//
// Reporter receives console-level diagnostics and Notifier receives
// user-visible messages. LogReporter and LogNotifier forward both to
// pkg/logging.
package form

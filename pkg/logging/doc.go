// Package logging provides the structured logger used across connectorauth.
//
// It is a thin layer over Go's log/slog package. Every entry carries a
// subsystem attribute so that output from the form controllers, the header
// serializer and the CLI can be filtered independently.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Headers", "Serialized %d headers for %s", n, containerID)
//	logging.Warn("Headers", "Duplicate header keys detected: %s", keys)
//	logging.Error("Config", err, "Failed to load %s", path)
//
// # Subsystems
//
//   - **Config**: configuration loading and validation
//   - **Context**: entity context resolution
//   - **AuthType**: authentication scheme visibility
//   - **OAuthGrant**: OAuth grant type visibility
//   - **Secret**: secret reveal/mask toggling
//   - **Headers**: header list storage and serialization
//   - **Editor**: form instance wiring and state files
//   - **Watch**: state file watching
//
// Secret values must never be passed to these functions. Values retained for
// masked fields are wrapped in form.Secret, which formats as "[REDACTED]".
package logging

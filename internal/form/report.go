package form

import (
	"connectorauth/pkg/logging"
)

// Reporter receives console-level diagnostics from the controllers.
// None of the controller operations return errors; problems are reported here.
type Reporter interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(err error, format string, args ...interface{})
}

// Notifier is the user-visible message sink (toasts in the admin UI).
type Notifier interface {
	ShowSuccess(message string)
	ShowError(message, targetID string)
}

// LogReporter forwards diagnostics to pkg/logging under a subsystem name.
type LogReporter struct {
	Subsystem string
}

func (r LogReporter) Debugf(format string, args ...interface{}) {
	logging.Debug(r.Subsystem, format, args...)
}

func (r LogReporter) Warnf(format string, args ...interface{}) {
	logging.Warn(r.Subsystem, format, args...)
}

func (r LogReporter) Errorf(err error, format string, args ...interface{}) {
	logging.Error(r.Subsystem, err, format, args...)
}

// LogNotifier writes notifications to the log. The CLI uses it when no
// richer notification surface is attached.
type LogNotifier struct{}

func (LogNotifier) ShowSuccess(message string) {
	logging.Info("Notify", "%s", message)
}

func (LogNotifier) ShowError(message, targetID string) {
	if targetID != "" {
		logging.Error("Notify", nil, "%s (%s)", message, targetID)
		return
	}
	logging.Error("Notify", nil, "%s", message)
}

// NopReporter discards all diagnostics.
type NopReporter struct{}

func (NopReporter) Debugf(string, ...interface{}) {}
func (NopReporter) Warnf(string, ...interface{}) {}
func (NopReporter) Errorf(error, string, ...interface{}) {}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) ShowSuccess(string) {}
func (NopNotifier) ShowError(string, string) {}

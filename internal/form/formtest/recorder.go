// Package formtest provides test doubles for the form diagnostics sinks.
package formtest

import (
	"fmt"
	"strings"
)

// Notification is one recorded user-visible message.
type Notification struct {
	Error    bool
	Message  string
	TargetID string
}

// Recorder implements form.Reporter and form.Notifier and keeps everything it
// receives for later assertions.
type Recorder struct {
	Debugs        []string
	Warnings      []string
	Errors        []string
	Notifications []Notification
}

func (r *Recorder) Debugf(format string, args ...interface{}) {
	r.Debugs = append(r.Debugs, fmt.Sprintf(format, args...))
}

func (r *Recorder) Warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Recorder) Errorf(err error, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	r.Errors = append(r.Errors, msg)
}

func (r *Recorder) ShowSuccess(message string) {
	r.Notifications = append(r.Notifications, Notification{Message: message})
}

func (r *Recorder) ShowError(message, targetID string) {
	r.Notifications = append(r.Notifications, Notification{Error: true, Message: message, TargetID: targetID})
}

// HasWarning reports whether any warning contains substr.
func (r *Recorder) HasWarning(substr string) bool {
	return containsAny(r.Warnings, substr)
}

// HasError reports whether any error contains substr.
func (r *Recorder) HasError(substr string) bool {
	return containsAny(r.Errors, substr)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Debugs = nil
	r.Warnings = nil
	r.Errors = nil
	r.Notifications = nil
}

func containsAny(entries []string, substr string) bool {
	for _, e := range entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

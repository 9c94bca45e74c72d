package headers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"connectorauth/internal/form"
)

// DefaultMaxHeaders is the largest number of rows a container may hold.
const DefaultMaxHeaders = 100

// MsgKeyRequired is the validation message of a key-less row with a value.
const MsgKeyRequired = "Header name is required when a value is provided"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ValidKey reports whether key is an acceptable header name.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Header is one serialized header.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Report is the outcome of evaluating a container's rows.
type Report struct {
	ContainerID string
	JSONFieldID string
	// Rows is the total number of rows, including empty ones.
	Rows int
	// Headers are the rows that will be serialized, in insertion order.
	Headers []Header
	// Duplicates lists keys carried by more than one header.
	Duplicates []string
	// MissingKey lists rows that have a value but no key.
	MissingKey []string
	// InvalidKey lists rows whose key is malformed.
	InvalidKey []string
	// Limit is the cardinality limit that was applied.
	Limit int
	// TooMany is set when Rows exceeds Limit. Nothing else is evaluated then.
	TooMany bool
}

// LimitMessage is the cardinality error for the report's limit.
func (r Report) LimitMessage() string {
	return limitMessage(r.Limit)
}

// JSON encodes the headers as a compact array, or "" when there are none.
func (r Report) JSON() (string, error) {
	return encode(r.Headers)
}

// SerializerOptions configures a Serializer.
type SerializerOptions struct {
	// MaxHeaders defaults to DefaultMaxHeaders.
	MaxHeaders int
	Reporter   form.Reporter
	Notifier   form.Notifier
}

// Serializer writes the rows of a container into its JSON field.
type Serializer struct {
	store      *Store
	maxHeaders int
	reporter   form.Reporter
	notifier   form.Notifier
}

// NewSerializer creates a serializer reading rows from store.
func NewSerializer(store *Store, opts SerializerOptions) *Serializer {
	maxHeaders := opts.MaxHeaders
	if maxHeaders <= 0 {
		maxHeaders = DefaultMaxHeaders
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = form.LogReporter{Subsystem: "Headers"}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = form.LogNotifier{}
	}
	return &Serializer{
		store:      store,
		maxHeaders: maxHeaders,
		reporter:   reporter,
		notifier:   notifier,
	}
}

// Evaluate computes the serialization of containerID without touching any
// field. ok is false when the container does not exist.
func (s *Serializer) Evaluate(containerID string) (report Report, ok bool) {
	if form.ContainerByID(s.store, containerID) == nil {
		return Report{}, false
	}

	rows := s.store.Rows(containerID)
	report = Report{
		ContainerID: containerID,
		JSONFieldID: s.store.JSONFieldID(containerID),
		Rows:        len(rows),
		Limit:       s.maxHeaders,
	}
	if len(rows) > s.maxHeaders {
		report.TooMany = true
		return report, true
	}

	counts := make(map[string]int)
	for _, row := range rows {
		if row.Empty() {
			continue
		}
		key := strings.TrimSpace(row.Key.Value())
		if key == "" {
			report.MissingKey = append(report.MissingKey, row.id)
			continue
		}
		if !ValidKey(key) {
			report.InvalidKey = append(report.InvalidKey, row.id)
			continue
		}
		report.Headers = append(report.Headers, Header{Key: key, Value: s.effectiveValue(row)})
		counts[key]++
	}

	for _, h := range report.Headers {
		if counts[h.Key] > 1 {
			report.Duplicates = append(report.Duplicates, h.Key)
			counts[h.Key] = 0
		}
	}
	return report, true
}

// Recompute refreshes the key validity of every row and serializes
// containerID into its JSON field. On a cardinality violation the field keeps
// its previous value.
func (s *Serializer) Recompute(containerID string) {
	report, ok := s.Evaluate(containerID)
	if !ok {
		s.reporter.Debugf("Header container %s not found, nothing to serialize", containerID)
		return
	}

	for _, row := range s.store.Rows(containerID) {
		if !row.Empty() && strings.TrimSpace(row.Key.Value()) == "" {
			row.Key.SetCustomValidity(MsgKeyRequired)
		} else {
			row.Key.SetCustomValidity("")
		}
	}

	if report.TooMany {
		msg := report.LimitMessage()
		s.reporter.Errorf(nil, "%s (%s has %d rows)", msg, containerID, report.Rows)
		s.notifier.ShowError(msg, containerID)
		return
	}

	if len(report.Duplicates) > 0 {
		s.reporter.Warnf("Duplicate header keys detected: %s", strings.Join(report.Duplicates, ", "))
	}

	field := form.InputByID(s.store, report.JSONFieldID)
	if field == nil {
		s.reporter.Debugf("JSON field %s not found for %s", report.JSONFieldID, containerID)
		return
	}

	out, err := report.JSON()
	if err != nil {
		s.reporter.Errorf(err, "Failed to serialize headers for %s", containerID)
		return
	}
	field.SetValue(out)
}

// effectiveValue resolves the value a row contributes. A masked value that
// still shows the placeholder or its retained plaintext is unchanged and
// yields the retained plaintext; anything else was typed by the user.
func (s *Serializer) effectiveValue(row *Row) string {
	value := row.Value.Value()
	if !row.Value.IsStoredSecret() {
		return value
	}

	real, known := row.Value.RealValue()
	if !known {
		// The backend substitutes the stored secret for the placeholder.
		return value
	}
	if value == s.store.placeholder || real.Equal(value) {
		return real.Reveal()
	}
	return value
}

func limitMessage(limit int) string {
	return fmt.Sprintf("Maximum of %d headers allowed per gateway", limit)
}

func encode(headers []Header) (string, error) {
	if len(headers) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(headers); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

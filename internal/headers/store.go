package headers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"connectorauth/internal/authctx"
	"connectorauth/internal/form"
	"connectorauth/internal/secret"
)

// Registry is the element registry header rows are added to.
// *form.Document implements it.
type Registry interface {
	form.Lookup
	Add(e form.Element)
	Remove(id string)
}

// Options configures a Store.
type Options struct {
	// Placeholder is the masking placeholder shown for masked values.
	Placeholder string
	// Naming maps a container to its JSON field. Defaults to
	// authctx.DefaultNaming.
	Naming authctx.NamingStrategy
	// Reporter receives diagnostics. Defaults to a LogReporter.
	Reporter form.Reporter
}

// Store holds the header rows of every container in a registry.
type Store struct {
	registry    Registry
	placeholder string
	naming      authctx.NamingStrategy
	reporter    form.Reporter

	rows     map[string][]*Row
	onChange func(containerID string)
}

// NewStore creates an empty store over registry.
func NewStore(registry Registry, opts Options) *Store {
	naming := opts.Naming
	if naming == nil {
		naming = authctx.DefaultNaming
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = form.LogReporter{Subsystem: "Headers"}
	}
	return &Store{
		registry:    registry,
		placeholder: opts.Placeholder,
		naming:      naming,
		reporter:    reporter,
		rows:        make(map[string][]*Row),
	}
}

// OnChange registers the hook fired after every mutation of a container.
func (s *Store) OnChange(fn func(containerID string)) {
	s.onChange = fn
}

// JSONFieldID returns the identifier of the field receiving the serialized
// headers of containerID.
func (s *Store) JSONFieldID(containerID string) string {
	return s.naming(containerID)
}

// Lookup resolves an element of the underlying registry.
func (s *Store) Lookup(id string) form.Element {
	return s.registry.Lookup(id)
}

// Add appends a row to containerID and returns its identifier. It returns ""
// when the container does not exist.
func (s *Store) Add(containerID string, e Entry) string {
	if !s.containerExists(containerID) {
		return ""
	}
	row := s.appendRow(containerID, e)
	s.changed(containerID)
	return row.id
}

// Remove deletes a row. Unknown rows and containers are ignored.
func (s *Store) Remove(rowID, containerID string) {
	rows := s.rows[containerID]
	for i, row := range rows {
		if row.id != rowID {
			continue
		}
		s.unregister(row)
		s.rows[containerID] = append(rows[:i:i], rows[i+1:]...)
		s.changed(containerID)
		return
	}
	s.reporter.Debugf("Header row %s not found in %s", rowID, containerID)
}

// Update replaces the key and value of a row as a user edit would. It
// reports whether the row was found.
func (s *Store) Update(containerID, rowID, key, value string) bool {
	row := s.row(containerID, rowID)
	if row == nil {
		return false
	}
	row.Key.SetValue(key)
	row.Value.SetValue(value)
	s.changed(containerID)
	return true
}

// Load replaces all rows of containerID with entries. A nil or empty slice
// clears the container and its JSON field. Nil entries and entries without a
// key are skipped.
func (s *Store) Load(containerID string, entries []*Entry, opts LoadOptions) {
	if !s.containerExists(containerID) {
		return
	}

	s.removeAll(containerID)
	if len(entries) == 0 {
		s.clearJSONField(containerID)
		s.changed(containerID)
		return
	}

	loaded := 0
	for _, e := range entries {
		if e == nil || strings.TrimSpace(e.Key) == "" {
			continue
		}
		entry := *e
		entry.Existing = true
		if opts.MaskValues {
			entry = s.masked(entry)
		}
		s.appendRow(containerID, entry)
		loaded++
	}

	s.reporter.Debugf("Loaded %d of %d headers into %s", loaded, len(entries), containerID)
	s.changed(containerID)
}

// LoadJSON loads a backend payload: a JSON array of {"key", "value"}
// objects. Elements that are not objects are skipped and non-string values
// become "". An empty or null payload clears the container.
func (s *Store) LoadJSON(containerID, raw string, opts LoadOptions) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		s.Load(containerID, nil, opts)
		return nil
	}
	if !gjson.Valid(raw) {
		return fmt.Errorf("headers payload for %s is not valid JSON", containerID)
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return fmt.Errorf("headers payload for %s must be a JSON array", containerID)
	}

	var entries []*Entry
	parsed.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			entries = append(entries, nil)
			return true
		}
		entries = append(entries, &Entry{
			Key:   stringOrEmpty(item.Get("key")),
			Value: stringOrEmpty(item.Get("value")),
		})
		return true
	})

	if len(entries) == 0 {
		s.Load(containerID, nil, opts)
		return nil
	}
	s.Load(containerID, entries, opts)
	return nil
}

// Clear removes every row of containerID and empties its JSON field.
func (s *Store) Clear(containerID string) {
	s.Load(containerID, nil, LoadOptions{})
}

// Rows returns the rows of containerID in insertion order.
func (s *Store) Rows(containerID string) []*Row {
	rows := s.rows[containerID]
	out := make([]*Row, len(rows))
	copy(out, rows)
	return out
}

// RowCount returns the number of rows of containerID.
func (s *Store) RowCount(containerID string) int {
	return len(s.rows[containerID])
}

// Containers returns the identifiers of containers that currently hold rows.
func (s *Store) Containers() []string {
	var ids []string
	for id, rows := range s.rows {
		if len(rows) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Store) containerExists(containerID string) bool {
	if form.ContainerByID(s.registry, containerID) == nil {
		s.reporter.Debugf("Header container %s not found", containerID)
		return false
	}
	return true
}

func (s *Store) row(containerID, rowID string) *Row {
	for _, row := range s.rows[containerID] {
		if row.id == rowID {
			return row
		}
	}
	return nil
}

// masked converts an entry for display behind the placeholder.
func (s *Store) masked(e Entry) Entry {
	if e.IsMasked {
		return e
	}
	e.IsMasked = true
	if e.Value != s.placeholder {
		real := e.Value
		e.RealValue = &real
	}
	return e
}

func (s *Store) appendRow(containerID string, e Entry) *Row {
	id := "auth-header-" + uuid.NewString()

	key := form.NewInput(id+"-key", form.TypeText)
	key.SetValue(e.Key)
	key.SetOwner(containerID)

	value := form.NewInput(id+"-value", form.TypeText)
	value.SetOwner(containerID)
	if e.IsMasked {
		value.SetType(form.TypePassword)
		value.SetValue(s.placeholder)
		value.MarkStoredSecret(s.realValue(e))
	} else {
		value.SetValue(e.Value)
	}

	row := &Row{
		id:        id,
		container: containerID,
		Key:       key,
		Value:     value,
		Toggle:    form.NewButton(authctx.ToggleID(value.ID()), toggleLabel(e.IsMasked)),
		Existing:  e.Existing,
	}

	s.registry.Add(row)
	for _, el := range row.elements() {
		s.registry.Add(el)
	}
	s.rows[containerID] = append(s.rows[containerID], row)
	return row
}

// realValue picks the retained plaintext of a masked entry: the explicit
// RealValue, else a Value that is not the placeholder, else unknown.
func (s *Store) realValue(e Entry) *string {
	if e.RealValue != nil {
		real := *e.RealValue
		return &real
	}
	if e.Value != "" && e.Value != s.placeholder {
		real := e.Value
		return &real
	}
	return nil
}

func (s *Store) removeAll(containerID string) {
	for _, row := range s.rows[containerID] {
		s.unregister(row)
	}
	delete(s.rows, containerID)
}

func (s *Store) unregister(row *Row) {
	for _, el := range row.elements() {
		s.registry.Remove(el.ID())
	}
	s.registry.Remove(row.id)
}

func (s *Store) clearJSONField(containerID string) {
	if field := form.InputByID(s.registry, s.naming(containerID)); field != nil {
		field.SetValue("")
	}
}

func (s *Store) changed(containerID string) {
	if s.onChange != nil {
		s.onChange(containerID)
	}
}

func toggleLabel(masked bool) string {
	if masked {
		return secret.LabelShow
	}
	return secret.LabelHide
}

func stringOrEmpty(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

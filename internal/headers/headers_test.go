package headers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"connectorauth/internal/form"
	"connectorauth/internal/form/formtest"
)

const (
	placeholder = "*****"
	container   = "auth-headers-container-gw"
	jsonField   = "auth-headers-json-gw"
)

type fixture struct {
	doc        *form.Document
	store      *Store
	serializer *Serializer
	rec        *formtest.Recorder
	json       *form.Input
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := form.NewDocument()
	doc.Add(form.NewContainer(container))
	field := form.NewInput(jsonField, form.TypeHidden)
	doc.Add(field)

	rec := &formtest.Recorder{}
	store := NewStore(doc, Options{Placeholder: placeholder, Reporter: rec})
	serializer := NewSerializer(store, SerializerOptions{Reporter: rec, Notifier: rec})
	store.OnChange(serializer.Recompute)

	return &fixture{doc: doc, store: store, serializer: serializer, rec: rec, json: field}
}

func ptr(s string) *string { return &s }

func TestAddThenSerialize(t *testing.T) {
	f := newFixture(t)

	id := f.store.Add(container, Entry{Key: "X-API-Key", Value: "abc"})
	require.NotEmpty(t, id)
	f.serializer.Recompute(container)

	assert.JSONEq(t, `[{"key":"X-API-Key","value":"abc"}]`, f.json.Value())
}

func TestAddToMissingContainerIsNoop(t *testing.T) {
	f := newFixture(t)

	id := f.store.Add("auth-headers-container-nope", Entry{Key: "X-A", Value: "1"})

	assert.Empty(t, id)
	assert.Zero(t, f.store.RowCount("auth-headers-container-nope"))
	assert.NotPanics(t, func() { f.serializer.Recompute("auth-headers-container-nope") })
}

func TestDuplicateKeysWarnButSerialize(t *testing.T) {
	f := newFixture(t)

	f.store.Add(container, Entry{Key: "X-API-Key", Value: "one"})
	f.store.Add(container, Entry{Key: "X-API-Key", Value: "two"})

	assert.True(t, f.rec.HasWarning("Duplicate header keys"))
	assert.True(t, f.rec.HasWarning("X-API-Key"))
	values := gjson.Get(f.json.Value(), "#.value").Array()
	require.Len(t, values, 2)
	assert.Equal(t, "one", values[0].String())
	assert.Equal(t, "two", values[1].String())
}

func TestDuplicateKeysAreCaseSensitive(t *testing.T) {
	f := newFixture(t)

	f.store.Add(container, Entry{Key: "X-Token", Value: "1"})
	f.store.Add(container, Entry{Key: "x-token", Value: "2"})

	assert.Empty(t, f.rec.Warnings)
	assert.Equal(t, int64(2), gjson.Get(f.json.Value(), "#").Int())
}

func TestLoadMaskValues(t *testing.T) {
	f := newFixture(t)

	f.store.Load(container, []*Entry{{Key: "Secret", Value: "hidden"}}, LoadOptions{MaskValues: true})

	rows := f.store.Rows(container)
	require.Len(t, rows, 1)
	value := rows[0].Value
	assert.Equal(t, placeholder, value.Value())
	assert.Equal(t, form.TypePassword, value.Type())
	real, ok := value.RealValue()
	require.True(t, ok)
	assert.Equal(t, "hidden", real.Reveal())
	assert.True(t, rows[0].Existing)

	assert.JSONEq(t, `[{"key":"Secret","value":"hidden"}]`, f.json.Value())
}

func TestLoadSkipsNilAndKeylessEntries(t *testing.T) {
	f := newFixture(t)

	f.store.Load(container, []*Entry{
		nil,
		{Key: "", Value: "orphan"},
		{Key: "   ", Value: "blank"},
		{Key: "X-Kept", Value: "v"},
	}, LoadOptions{})

	assert.Equal(t, 1, f.store.RowCount(container))
	assert.JSONEq(t, `[{"key":"X-Kept","value":"v"}]`, f.json.Value())
	assert.Empty(t, f.rec.Warnings)
}

func TestLoadEmptyClearsContainerAndJSON(t *testing.T) {
	f := newFixture(t)
	rowID := f.store.Add(container, Entry{Key: "X-A", Value: "1"})
	require.NotEmpty(t, f.json.Value())

	f.store.Load(container, nil, LoadOptions{})

	assert.Zero(t, f.store.RowCount(container))
	assert.Equal(t, "", f.json.Value())
	assert.Nil(t, f.doc.Lookup(rowID), "row elements are unregistered")
}

func TestLoadJSONCoercesValues(t *testing.T) {
	f := newFixture(t)

	err := f.store.LoadJSON(container, `[
		{"key":"X-Num","value":42},
		{"key":"X-Str","value":"s"},
		"junk",
		null,
		{"value":"no key"}
	]`, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, f.store.RowCount(container))
	assert.JSONEq(t, `[{"key":"X-Num","value":""},{"key":"X-Str","value":"s"}]`, f.json.Value())
}

func TestLoadJSONRejectsMalformedPayload(t *testing.T) {
	f := newFixture(t)

	assert.Error(t, f.store.LoadJSON(container, `{"key":"X"}`, LoadOptions{}))
	assert.Error(t, f.store.LoadJSON(container, `[{"key":`, LoadOptions{}))
	assert.NoError(t, f.store.LoadJSON(container, `null`, LoadOptions{}))
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	first := f.store.Add(container, Entry{Key: "X-A", Value: "1"})
	f.store.Add(container, Entry{Key: "X-B", Value: "2"})

	f.store.Remove(first, container)
	f.store.Remove("unknown", container)
	f.store.Remove(first, "auth-headers-container-nope")

	assert.Equal(t, 1, f.store.RowCount(container))
	assert.JSONEq(t, `[{"key":"X-B","value":"2"}]`, f.json.Value())
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(container, Entry{})

	assert.True(t, f.store.Update(container, id, "X-New", "v"))
	assert.False(t, f.store.Update(container, "unknown", "X", "v"))

	assert.JSONEq(t, `[{"key":"X-New","value":"v"}]`, f.json.Value())
}

func TestEmptyRowsAreSkippedAndEmptyResultIsEmptyString(t *testing.T) {
	f := newFixture(t)
	f.json.SetValue("stale")

	f.store.Add(container, Entry{})
	f.store.Add(container, Entry{Key: "  "})

	assert.Equal(t, "", f.json.Value())
}

func TestKeylessValueIsInvalid(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(container, Entry{Key: "", Value: "orphan"})
	f.store.Add(container, Entry{Key: "X-Ok", Value: "1"})

	row := f.doc.Lookup(id).(*Row)
	assert.Equal(t, MsgKeyRequired, row.Key.ValidationMessage())
	assert.JSONEq(t, `[{"key":"X-Ok","value":"1"}]`, f.json.Value())

	f.store.Update(container, id, "X-Fixed", "orphan")
	assert.True(t, row.Key.Valid())
}

func TestMalformedKeysAreExcludedSilently(t *testing.T) {
	f := newFixture(t)

	for _, key := range []string{"X Space", "X_Under", "Ü-Key", "X:Colon"} {
		f.store.Add(container, Entry{Key: key, Value: "v"})
	}
	f.store.Add(container, Entry{Key: " X-Trimmed ", Value: "v"})

	assert.JSONEq(t, `[{"key":"X-Trimmed","value":"v"}]`, f.json.Value())
	assert.Empty(t, f.rec.Warnings)
	assert.Empty(t, f.rec.Errors)
}

func TestCardinalityLimitLeavesJSONUnchanged(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < DefaultMaxHeaders; i++ {
		f.store.Add(container, Entry{Key: fmt.Sprintf("X-H%d", i), Value: "v"})
	}
	before := f.json.Value()
	require.NotEmpty(t, before)
	require.Empty(t, f.rec.Errors)

	f.store.Add(container, Entry{Key: "X-Overflow", Value: "v"})

	require.Equal(t, DefaultMaxHeaders+1, f.store.RowCount(container))
	assert.Equal(t, before, f.json.Value())
	assert.True(t, f.rec.HasError("Maximum of 100 headers allowed per gateway"))
	require.NotEmpty(t, f.rec.Notifications)
	last := f.rec.Notifications[len(f.rec.Notifications)-1]
	assert.True(t, last.Error)
	assert.Equal(t, container, last.TargetID)
}

func TestKeyValidityRefreshedOverLimit(t *testing.T) {
	f := newFixture(t)
	id := f.store.Add(container, Entry{Value: "orphan"})
	for i := 0; i < DefaultMaxHeaders; i++ {
		f.store.Add(container, Entry{Key: fmt.Sprintf("X-H%d", i), Value: "v"})
	}
	row := f.doc.Lookup(id).(*Row)
	require.Equal(t, MsgKeyRequired, row.Key.ValidationMessage())

	f.store.Update(container, id, "X-Fixed", "orphan")

	report, _ := f.serializer.Evaluate(container)
	require.True(t, report.TooMany)
	assert.True(t, row.Key.Valid())

	f.store.Update(container, id, "", "orphan")
	assert.Equal(t, MsgKeyRequired, row.Key.ValidationMessage())
}

func TestExactlyMaxHeadersSerializes(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < DefaultMaxHeaders; i++ {
		f.store.Add(container, Entry{Key: fmt.Sprintf("X-H%d", i), Value: "v"})
	}

	assert.Equal(t, int64(DefaultMaxHeaders), gjson.Get(f.json.Value(), "#").Int())
	assert.Empty(t, f.rec.Errors)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.store.Add(container, Entry{Key: "X-A", Value: "<b>&</b>"})
	f.store.Load(container, []*Entry{
		{Key: "X-A", Value: "<b>&</b>"},
		{Key: "X-Secret", Value: "s3cr3t"},
	}, LoadOptions{MaskValues: true})

	f.serializer.Recompute(container)
	first := f.json.Value()
	f.serializer.Recompute(container)

	assert.Equal(t, first, f.json.Value())
	assert.Contains(t, first, "<b>&</b>", "HTML characters are not escaped")
}

func TestMaskingResolution(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		typed *string
		want  string
	}{
		{
			name:  "placeholder resolves to real value",
			entry: Entry{Key: "X-A", IsMasked: true, RealValue: ptr("real")},
			want:  "real",
		},
		{
			name:  "revealed real value is unchanged",
			entry: Entry{Key: "X-A", IsMasked: true, RealValue: ptr("real")},
			typed: ptr("real"),
			want:  "real",
		},
		{
			name:  "new value wins",
			entry: Entry{Key: "X-A", IsMasked: true, RealValue: ptr("real")},
			typed: ptr("replacement"),
			want:  "replacement",
		},
		{
			name:  "unknown real value keeps placeholder",
			entry: Entry{Key: "X-A", IsMasked: true},
			want:  placeholder,
		},
		{
			name:  "masked value without explicit real value",
			entry: Entry{Key: "X-A", Value: "inline", IsMasked: true},
			want:  "inline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.store.Add(container, tt.entry)
			if tt.typed != nil {
				row := f.doc.Lookup(id).(*Row)
				f.store.Update(container, id, row.Key.Value(), *tt.typed)
			}

			report, ok := f.serializer.Evaluate(container)
			require.True(t, ok)
			require.Len(t, report.Headers, 1)
			assert.Equal(t, tt.want, report.Headers[0].Value)
			assert.Equal(t, tt.want, gjson.Get(f.json.Value(), "0.value").String())
		})
	}
}

func TestEvaluateHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	f.store.OnChange(nil)
	id := f.store.Add(container, Entry{Value: "orphan"})
	f.store.Add(container, Entry{Key: "bad key", Value: "x"})
	f.store.Add(container, Entry{Key: "X-D", Value: "1"})
	f.store.Add(container, Entry{Key: "X-D", Value: "2"})

	report, ok := f.serializer.Evaluate(container)
	require.True(t, ok)

	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, []string{id}, report.MissingKey)
	assert.Len(t, report.InvalidKey, 1)
	assert.Equal(t, []string{"X-D"}, report.Duplicates)
	assert.Equal(t, jsonField, report.JSONFieldID)
	assert.Equal(t, "", f.json.Value())
	assert.Empty(t, f.rec.Warnings)
	assert.True(t, f.doc.Lookup(id).(*Row).Key.Valid())
}

func TestLegacyEditContainer(t *testing.T) {
	doc := form.NewDocument()
	doc.Add(form.NewContainer("edit-auth-headers-container"))
	field := form.NewInput("edit-auth-headers-json", form.TypeHidden)
	doc.Add(field)

	store := NewStore(doc, Options{Placeholder: placeholder, Reporter: form.NopReporter{}})
	serializer := NewSerializer(store, SerializerOptions{Reporter: form.NopReporter{}, Notifier: form.NopNotifier{}})
	store.OnChange(serializer.Recompute)

	store.Add("edit-auth-headers-container", Entry{Key: "X-Legacy", Value: "1"})

	assert.JSONEq(t, `[{"key":"X-Legacy","value":"1"}]`, field.Value())
}

func TestEntryStringOmitsValue(t *testing.T) {
	e := Entry{Key: "X-A", Value: "topsecret", IsMasked: true}
	assert.NotContains(t, e.String(), "topsecret")
	assert.NotContains(t, fmt.Sprintf("%v", e), "topsecret")
}

package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectorauth/internal/form"
	"connectorauth/internal/form/formtest"
)

const placeholder = "*****"

func ptr(s string) *string { return &s }

func newFixture(t *testing.T) (*form.Document, *Controller, *formtest.Recorder, *[]string) {
	t.Helper()
	doc := form.NewDocument()
	rec := &formtest.Recorder{}
	var recomputed []string
	ctrl := NewController(doc, Options{
		Placeholder: placeholder,
		Reporter:    rec,
		OnHeaderToggle: func(containerID string) {
			recomputed = append(recomputed, containerID)
		},
	})
	return doc, ctrl, rec, &recomputed
}

func TestToggle_PlainFieldRevealsAndMasks(t *testing.T) {
	_, ctrl, _, _ := newFixture(t)
	field := form.NewInput("auth-password", form.TypePassword)
	field.SetValue("hunter2")
	button := form.NewButton("auth-password-toggle", LabelShow)

	ctrl.Toggle(field, button)
	assert.Equal(t, form.TypeText, field.Type())
	assert.Equal(t, "hunter2", field.Value())
	assert.Equal(t, LabelHide, button.Label())
	assert.True(t, button.Pressed())

	ctrl.Toggle(field, button)
	assert.Equal(t, form.TypePassword, field.Type())
	assert.Equal(t, "hunter2", field.Value())
	assert.Equal(t, LabelShow, button.Label())
	assert.False(t, button.Pressed())
}

func TestToggle_StoredSecretWithKnownValue(t *testing.T) {
	_, ctrl, _, _ := newFixture(t)
	field := form.NewInput("auth-token", form.TypePassword)
	field.SetValue(placeholder)
	field.MarkStoredSecret(ptr("abc123"))
	button := form.NewButton("auth-token-toggle", LabelShow)

	ctrl.Toggle(field, button)
	assert.Equal(t, form.TypeText, field.Type())
	assert.Equal(t, "abc123", field.Value())

	ctrl.Toggle(field, button)
	assert.Equal(t, form.TypePassword, field.Type())
	assert.Equal(t, placeholder, field.Value(), "unchanged stored secret is masked back to the placeholder")
	assert.True(t, field.IsStoredSecret())
}

func TestToggle_StoredSecretWithoutKnownValueIsRefused(t *testing.T) {
	_, ctrl, rec, _ := newFixture(t)
	field := form.NewInput("auth-token", form.TypePassword)
	field.SetValue(placeholder)
	field.MarkStoredSecret(nil)
	button := form.NewButton("auth-token-toggle", LabelShow)

	for i := 0; i < 3; i++ {
		ctrl.Toggle(field, button)
		assert.Equal(t, form.TypePassword, field.Type())
		assert.Equal(t, placeholder, field.Value())
	}
	assert.True(t, button.Disabled())
	assert.Equal(t, RefusedTitle, button.Title())
	assert.Equal(t, LabelShow, button.Label())
	assert.False(t, button.Pressed())
	assert.NotEmpty(t, rec.Debugs)
}

func TestToggle_ReplacementOfUnknownStoredSecretCanBeRevealed(t *testing.T) {
	_, ctrl, _, _ := newFixture(t)
	field := form.NewInput("auth-token", form.TypePassword)
	field.SetValue(placeholder)
	field.MarkStoredSecret(nil)
	button := form.NewButton("auth-token-toggle", LabelShow)

	ctrl.Toggle(field, button)
	require.True(t, button.Disabled())

	field.SetValue("brand-new")
	ctrl.Toggle(field, button)

	assert.Equal(t, form.TypeText, field.Type())
	assert.Equal(t, "brand-new", field.Value())
	assert.False(t, field.IsStoredSecret())
	assert.False(t, button.Disabled())
	assert.Equal(t, LabelHide, button.Label())

	ctrl.Toggle(field, button)
	assert.Equal(t, form.TypePassword, field.Type())
	assert.Equal(t, "brand-new", field.Value())
}

func TestToggle_EditedStoredSecretBecomesFreshInput(t *testing.T) {
	_, ctrl, _, _ := newFixture(t)
	field := form.NewInput("auth-token", form.TypePassword)
	field.SetValue(placeholder)
	field.MarkStoredSecret(ptr("old"))
	button := form.NewButton("auth-token-toggle", LabelShow)

	ctrl.Toggle(field, button)
	require.Equal(t, "old", field.Value())
	field.SetValue("new")

	ctrl.Toggle(field, button)
	assert.Equal(t, form.TypePassword, field.Type())
	assert.Equal(t, "new", field.Value())
	assert.False(t, field.IsStoredSecret())
}

func TestToggle_TypedOverPlaceholderKeepsTypedValueOnReveal(t *testing.T) {
	_, ctrl, _, _ := newFixture(t)
	field := form.NewInput("auth-token", form.TypePassword)
	field.SetValue(placeholder)
	field.MarkStoredSecret(ptr("old"))
	field.SetValue("typed")

	ctrl.Toggle(field, nil)
	assert.Equal(t, form.TypeText, field.Type())
	assert.Equal(t, "typed", field.Value())
}

func TestToggle_HeaderValueTriggersRecompute(t *testing.T) {
	_, ctrl, _, recomputed := newFixture(t)
	field := form.NewInput("auth-header-value-1", form.TypePassword)
	field.SetOwner("auth-headers-container")

	ctrl.Toggle(field, nil)
	ctrl.Toggle(field, nil)

	assert.Equal(t, []string{"auth-headers-container", "auth-headers-container"}, *recomputed)
}

func TestToggle_NonHeaderFieldDoesNotRecompute(t *testing.T) {
	_, ctrl, _, recomputed := newFixture(t)
	ctrl.Toggle(form.NewInput("auth-password", form.TypePassword), nil)
	assert.Empty(t, *recomputed)
}

func TestToggleByID(t *testing.T) {
	doc, ctrl, _, _ := newFixture(t)
	field := form.NewInput("auth-password-gw", form.TypePassword)
	button := form.NewButton("auth-password-gw-toggle", LabelShow)
	doc.Add(field)
	doc.Add(button)

	ctrl.ToggleByID("auth-password-gw", "")
	assert.True(t, field.Revealed())
	assert.Equal(t, LabelHide, button.Label())

	assert.NotPanics(t, func() {
		ctrl.ToggleByID("missing", "")
		ctrl.ToggleByID("", "")
	})
}

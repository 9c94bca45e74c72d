package form

// Group is a set of fields that is shown or hidden together.
type Group struct {
	id     string
	hidden bool
}

// NewGroup creates a group. Groups start hidden.
func NewGroup(id string) *Group {
	return &Group{id: id, hidden: true}
}

// ID implements Element.
func (g *Group) ID() string { return g.id }

// Show makes the group visible.
func (g *Group) Show() { g.hidden = false }

// Hide hides the group.
func (g *Group) Hide() { g.hidden = true }

// SetVisible shows or hides the group.
func (g *Group) SetVisible(visible bool) { g.hidden = !visible }

// Hidden reports whether the group is hidden.
func (g *Group) Hidden() bool { return g.hidden }

// Button is a reveal/mask toggle next to a secret field.
type Button struct {
	id       string
	label    string
	pressed  bool
	disabled bool
	title    string
}

// NewButton creates an enabled button with the given label.
func NewButton(id, label string) *Button {
	return &Button{id: id, label: label}
}

// ID implements Element.
func (b *Button) ID() string { return b.id }

// Label returns the visible label.
func (b *Button) Label() string { return b.label }

// SetLabel changes the visible label.
func (b *Button) SetLabel(label string) { b.label = label }

// Pressed returns the aria-pressed state.
func (b *Button) Pressed() bool { return b.pressed }

// SetPressed sets the aria-pressed state.
func (b *Button) SetPressed(pressed bool) { b.pressed = pressed }

// Disabled reports whether the button refuses interaction.
func (b *Button) Disabled() bool { return b.disabled }

// Title returns the tooltip, used to explain a disabled state.
func (b *Button) Title() string { return b.title }

// Disable marks the button not-allowed with an explanatory title.
func (b *Button) Disable(title string) {
	b.disabled = true
	b.title = title
}

// Enable clears the disabled state and its title.
func (b *Button) Enable() {
	b.disabled = false
	b.title = ""
}

// Container anchors the rows of one header list.
type Container struct {
	id string
}

// NewContainer creates a header container element.
func NewContainer(id string) *Container {
	return &Container{id: id}
}

// ID implements Element.
func (c *Container) ID() string { return c.id }

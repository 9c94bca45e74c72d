package form

import (
	"sync"
)

// Element is anything addressable by identifier within a form.
type Element interface {
	ID() string
}

// Lookup resolves an element by identifier. It returns nil when the element
// does not exist.
type Lookup interface {
	Lookup(id string) Element
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(id string) Element

// Lookup calls f(id).
func (f LookupFunc) Lookup(id string) Element {
	return f(id)
}

// InputByID resolves id to an Input, or nil if it is absent or not an input.
func InputByID(l Lookup, id string) *Input {
	if l == nil || id == "" {
		return nil
	}
	in, _ := l.Lookup(id).(*Input)
	return in
}

// GroupByID resolves id to a Group, or nil.
func GroupByID(l Lookup, id string) *Group {
	if l == nil || id == "" {
		return nil
	}
	g, _ := l.Lookup(id).(*Group)
	return g
}

// ButtonByID resolves id to a Button, or nil.
func ButtonByID(l Lookup, id string) *Button {
	if l == nil || id == "" {
		return nil
	}
	b, _ := l.Lookup(id).(*Button)
	return b
}

// ContainerByID resolves id to a Container, or nil.
func ContainerByID(l Lookup, id string) *Container {
	if l == nil || id == "" {
		return nil
	}
	c, _ := l.Lookup(id).(*Container)
	return c
}

// Document is an in-memory element registry. It keeps elements in the order
// they were added so renderers can list them deterministically.
type Document struct {
	mu       sync.RWMutex
	elements map[string]Element
	order    []string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		elements: make(map[string]Element),
	}
}

// Add registers e, replacing any element with the same identifier.
func (d *Document) Add(e Element) {
	if e == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	id := e.ID()
	if _, exists := d.elements[id]; !exists {
		d.order = append(d.order, id)
	}
	d.elements[id] = e
}

// Remove unregisters the element with the given identifier.
func (d *Document) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.elements[id]; !exists {
		return
	}
	delete(d.elements, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Lookup implements Lookup.
func (d *Document) Lookup(id string) Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.elements[id]
	if !ok {
		return nil
	}
	return e
}

// IDs returns all identifiers in insertion order.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, len(d.order))
	copy(ids, d.order)
	return ids
}

// Len returns the number of registered elements.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.elements)
}

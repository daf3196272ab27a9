// Package item provides the tree of publishable items a collector produces.
// Each item is a data node work units operate on: it carries a type (e.g.
// "file.maya"), a display name, free-form properties, and the units bound
// to it.
package item

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
)

// Item is one node in the collected item tree.
type Item struct {
	id          uuid.UUID
	typeName    string
	typeDisplay string
	name        string

	parent   *Item
	children []*Item

	properties map[string]interface{}
	units      []*publish.WorkUnit
}

// NewRoot creates the invisible root item collectors parent their results
// under.
func NewRoot() *Item {
	return &Item{
		id:          uuid.New(),
		typeName:    "root",
		typeDisplay: "Root",
		name:        "root",
		properties:  make(map[string]interface{}),
	}
}

// CreateItem creates a child item of the given type under this item.
func (i *Item) CreateItem(typeName, typeDisplay, name string) *Item {
	child := &Item{
		id:          uuid.New(),
		typeName:    typeName,
		typeDisplay: typeDisplay,
		name:        name,
		parent:      i,
		properties:  make(map[string]interface{}),
	}
	i.children = append(i.children, child)
	return child
}

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// Type returns the item type name, e.g. "file.image".
func (i *Item) Type() string { return i.typeName }

// TypeDisplay returns the human-readable form of the item type.
func (i *Item) TypeDisplay() string { return i.typeDisplay }

// Name returns the item's display name.
func (i *Item) Name() string { return i.name }

// Parent returns the item's parent, or nil for the root.
func (i *Item) Parent() *Item { return i.parent }

// Children returns the item's direct children.
func (i *Item) Children() []*Item { return i.children }

// IsRoot reports whether this is the tree root.
func (i *Item) IsRoot() bool { return i.parent == nil }

// String returns a human-readable identification of the item.
func (i *Item) String() string {
	return fmt.Sprintf("<Item: %s (%s)>", i.name, i.typeName)
}

// Property returns the named property value, or nil if unset.
func (i *Item) Property(name string) interface{} {
	return i.properties[name]
}

// StringProperty returns the named property as a string, or "" if unset or
// not a string.
func (i *Item) StringProperty(name string) string {
	v, _ := i.properties[name].(string)
	return v
}

// SetProperty stores a property value on the item.
func (i *Item) SetProperty(name string, value interface{}) {
	i.properties[name] = value
}

// Properties returns the item's property map. The map is shared, not a
// copy; collectors and plugins cooperate through it.
func (i *Item) Properties() map[string]interface{} { return i.properties }

// AddUnit registers a work unit with this item.
func (i *Item) AddUnit(u *publish.WorkUnit) error {
	if u == nil {
		return publish.ErrNilUnit
	}
	i.units = append(i.units, u)
	return nil
}

// RemoveUnit unregisters a work unit. It reports whether the unit was bound.
func (i *Item) RemoveUnit(u *publish.WorkUnit) bool {
	for idx, existing := range i.units {
		if existing == u {
			i.units = append(i.units[:idx], i.units[idx+1:]...)
			return true
		}
	}
	return false
}

// Units returns the work units bound to this item.
func (i *Item) Units() []*publish.WorkUnit { return i.units }

// Walk visits the item and all its descendants pre-order. Returning false
// from fn stops the walk.
func (i *Item) Walk(fn func(*Item) bool) {
	i.walk(fn)
}

func (i *Item) walk(fn func(*Item) bool) bool {
	if !fn(i) {
		return false
	}
	for _, child := range i.children {
		if !child.walk(fn) {
			return false
		}
	}
	return true
}

// Descendants returns all items below this one, pre-order.
func (i *Item) Descendants() []*Item {
	var items []*Item
	for _, child := range i.children {
		items = append(items, child)
		items = append(items, child.Descendants()...)
	}
	return items
}

// Ensure Item satisfies the unit's target contract.
var _ publish.Target = (*Item)(nil)

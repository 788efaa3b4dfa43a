package collection

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an item id does not resolve within a list.
var ErrNotFound = errors.New("collection: item not found")

// Item is one element of a repeatable list. ID is assigned on creation and
// is the only key used to address the element afterwards.
type Item[T any] struct {
	ID    string
	Value T
}

// List is an ordered collection of repeatable items. The zero constructor
// produces the empty element appended by Add and used to seed the list.
type List[T any] struct {
	items []Item[T]
	zero  func() T
}

// NewList builds a list seeded with a single empty element.
func NewList[T any](zero func() T) *List[T] {
	if zero == nil {
		zero = func() T { var v T; return v }
	}
	l := &List[T]{zero: zero}
	l.items = append(l.items, Item[T]{ID: uuid.NewString(), Value: zero()})
	return l
}

// NewListOf builds a list from existing values. An empty slice seeds the
// list with one empty element so the minimum-one invariant holds from the
// start.
func NewListOf[T any](zero func() T, values ...T) *List[T] {
	if len(values) == 0 {
		return NewList(zero)
	}
	if zero == nil {
		zero = func() T { var v T; return v }
	}
	l := &List[T]{zero: zero}
	for _, v := range values {
		l.items = append(l.items, Item[T]{ID: uuid.NewString(), Value: v})
	}
	return l
}

// Add appends a new empty element and returns its id.
func (l *List[T]) Add() string {
	item := Item[T]{ID: uuid.NewString(), Value: l.zero()}
	l.items = append(l.items, item)
	return item.ID
}

// Remove deletes the element with the given id. Removing the last remaining
// element is a no-op; the returned bool reports whether anything changed.
func (l *List[T]) Remove(id string) bool {
	if len(l.items) <= 1 {
		return false
	}
	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies patch to the element with the given id.
func (l *List[T]) Update(id string, patch func(*T)) error {
	for i := range l.items {
		if l.items[i].ID == id {
			patch(&l.items[i].Value)
			return nil
		}
	}
	return ErrNotFound
}

// Get returns the element with the given id.
func (l *List[T]) Get(id string) (Item[T], bool) {
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item[T]{}, false
}

// Items returns the elements in order. The slice is a copy; element values
// are shared.
func (l *List[T]) Items() []Item[T] {
	out := make([]Item[T], len(l.items))
	copy(out, l.items)
	return out
}

// Values returns the element values in order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, item.Value)
	}
	return out
}

// Len reports the number of elements. Always >= 1.
func (l *List[T]) Len() int {
	return len(l.items)
}

// LastID returns the id of the final element. Only the final row renders an
// "add" control; earlier rows render "remove".
func (l *List[T]) LastID() string {
	return l.items[len(l.items)-1].ID
}

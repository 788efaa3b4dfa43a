package territory

import (
	"fmt"
	"sort"
)

// Selection tracks membership for one named set.
type Selection struct {
	universe Universe
	valid    map[string]struct{}
	members  map[string]struct{}
}

func newSelection(universe Universe) *Selection {
	valid := make(map[string]struct{})
	for _, member := range universe.Flatten() {
		valid[member] = struct{}{}
	}
	return &Selection{
		universe: universe,
		valid:    valid,
		members:  make(map[string]struct{}),
	}
}

// Toggle includes or excludes a single member.
func (s *Selection) Toggle(member string, included bool) error {
	if _, ok := s.valid[member]; !ok {
		return fmt.Errorf("unknown member %q in set %q", member, s.universe.Name)
	}
	if included {
		s.members[member] = struct{}{}
	} else {
		delete(s.members, member)
	}
	return nil
}

// SetAll selects the full universe or clears the selection.
func (s *Selection) SetAll(included bool) {
	if !included {
		s.members = make(map[string]struct{})
		return
	}
	for member := range s.valid {
		s.members[member] = struct{}{}
	}
}

// IsAllSelected reports whether every universe member is selected. Derived
// from membership on every call, never cached.
func (s *Selection) IsAllSelected() bool {
	return len(s.members) == len(s.valid) && len(s.valid) > 0
}

// Contains reports whether a member is currently selected.
func (s *Selection) Contains(member string) bool {
	_, ok := s.members[member]
	return ok
}

// Members returns the flattened selection in universe order.
func (s *Selection) Members() []string {
	out := make([]string, 0, len(s.members))
	for _, member := range s.universe.Flatten() {
		if _, ok := s.members[member]; ok {
			out = append(out, member)
		}
	}
	return out
}

// Len reports the number of selected members.
func (s *Selection) Len() int {
	return len(s.members)
}

// Universe returns the full member universe backing this selection.
func (s *Selection) Universe() Universe {
	return s.universe
}

// Model groups the named selections of the distribution step.
type Model struct {
	sets map[string]*Selection
}

// NewModel builds a model over the provided universes, or the defaults when
// none are given. All selections start empty.
func NewModel(universes ...Universe) *Model {
	if len(universes) == 0 {
		universes = DefaultUniverses()
	}
	sets := make(map[string]*Selection, len(universes))
	for _, universe := range universes {
		sets[universe.Name] = newSelection(universe)
	}
	return &Model{sets: sets}
}

// ToggleMember includes or excludes one member of a named set.
func (m *Model) ToggleMember(setName, member string, included bool) error {
	selection, err := m.selection(setName)
	if err != nil {
		return err
	}
	return selection.Toggle(member, included)
}

// ToggleSelectAll selects the full universe of a named set or clears it.
func (m *Model) ToggleSelectAll(setName string, included bool) error {
	selection, err := m.selection(setName)
	if err != nil {
		return err
	}
	selection.SetAll(included)
	return nil
}

// IsAllSelected reports the derived select-all state for a named set.
func (m *Model) IsAllSelected(setName string) bool {
	selection, err := m.selection(setName)
	if err != nil {
		return false
	}
	return selection.IsAllSelected()
}

// Members returns the flattened selection of a named set.
func (m *Model) Members(setName string) []string {
	selection, err := m.selection(setName)
	if err != nil {
		return nil
	}
	return selection.Members()
}

// Clear empties the selection of a named set.
func (m *Model) Clear(setName string) {
	if selection, err := m.selection(setName); err == nil {
		selection.SetAll(false)
	}
}

// SetNames returns the configured set names in sorted order.
func (m *Model) SetNames() []string {
	names := make([]string, 0, len(m.sets))
	for name := range m.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Model) selection(setName string) (*Selection, error) {
	selection, ok := m.sets[setName]
	if !ok {
		return nil, fmt.Errorf("unknown selection set %q", setName)
	}
	return selection, nil
}

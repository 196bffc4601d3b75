package recipient

import "sort"

// ChangeTracker is the capability an owning resource must expose to
// receive change notifications. Any object with an addressable set of
// dirty field names can own a Recipient or a List; no inheritance or
// registration is involved.
type ChangeTracker interface {
	// TrackedChanges returns the owner's dirty-field set, or nil when
	// change tracking is not engaged.
	TrackedChanges() *FieldSet
}

// FieldSet records which fields of a resource must be re-sent on the
// next persist. The recipient layer only ever adds to it; reading and
// clearing belong to the owning resource.
type FieldSet struct {
	fields map[string]struct{}
}

// NewFieldSet returns an empty FieldSet.
func NewFieldSet() *FieldSet {
	return &FieldSet{fields: make(map[string]struct{})}
}

// Add marks a field as dirty.
func (s *FieldSet) Add(field string) {
	if s.fields == nil {
		s.fields = make(map[string]struct{})
	}
	s.fields[field] = struct{}{}
}

// Has reports whether a field is marked dirty.
func (s *FieldSet) Has(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// Len returns the number of dirty fields.
func (s *FieldSet) Len() int {
	return len(s.fields)
}

// Names returns the dirty field names in sorted order.
func (s *FieldSet) Names() []string {
	names := make([]string, 0, len(s.fields))
	for field := range s.fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

// Clear removes all dirty marks.
func (s *FieldSet) Clear() {
	s.fields = make(map[string]struct{})
}

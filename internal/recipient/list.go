package recipient

import (
	"errors"
	"fmt"
)

// ErrInvalidRecipient is returned when Add receives a value that is not
// an address string, an Entry, a *Recipient, or a slice of these.
var ErrInvalidRecipient = errors.New("recipient must be an address string, an Entry, a *Recipient, or a slice of these")

// Entry is a (display name, address) pair, the loose input shape used
// at call sites that have both values but no Recipient yet.
type Entry struct {
	Name    string
	Address string
}

// List is an ordered collection of Recipients attached to one field of
// one owning resource. Duplicate addresses are permitted; insertion
// order is the only iteration order. List is not safe for concurrent
// mutation.
type List struct {
	owner   ChangeTracker
	field   string
	items   []*Recipient
	untrack bool
}

// NewList builds a List owned by owner under the given field name,
// pre-populated from input, which accepts the same shapes as Add.
// Construction never marks the owner dirty: hydrating a fresh resource
// is not a change.
func NewList(input any, owner ChangeTracker, field string) (*List, error) {
	l := &List{owner: owner, field: field}
	l.untrack = true
	defer func() { l.untrack = false }()
	if err := l.Add(input); err != nil {
		return nil, err
	}
	return l, nil
}

// newList builds an empty untracked-capable List for in-package bulk
// construction.
func newList(owner ChangeTracker, field string) *List {
	return &List{owner: owner, field: field}
}

// Add normalizes input into zero or more Recipients appended in
// encounter order. Accepted shapes: a non-empty address string, an
// Entry, a *Recipient, or an arbitrarily nested slice of these
// ([]string, []Entry, []*Recipient, []any). An Entry with an empty
// address is dropped, not appended: an addressee without an address is
// meaningless for delivery. Anything else fails with
// ErrInvalidRecipient before the list is touched. At most one
// notification fires per call, and only if something was appended.
func (l *List) Add(input any) error {
	normalized, err := normalize(input)
	if err != nil {
		return err
	}
	if len(normalized) == 0 {
		return nil
	}
	for _, r := range normalized {
		r.attach(l, l.field)
		l.items = append(l.items, r)
	}
	l.notify()
	return nil
}

// normalize flattens input into the Recipients it denotes, without
// attaching owners. It is pure: an invalid element anywhere rejects the
// whole input before any mutation happens.
func normalize(input any) ([]*Recipient, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []*Recipient{{address: v}}, nil
	case Entry:
		if v.Address == "" {
			return nil, nil
		}
		return []*Recipient{{address: v.Address, name: v.Name}}, nil
	case *Recipient:
		if v == nil {
			return nil, nil
		}
		return []*Recipient{v}, nil
	case []string:
		out := make([]*Recipient, 0, len(v))
		for _, s := range v {
			if s != "" {
				out = append(out, &Recipient{address: s})
			}
		}
		return out, nil
	case []Entry:
		out := make([]*Recipient, 0, len(v))
		for _, e := range v {
			if e.Address != "" {
				out = append(out, &Recipient{address: e.Address, name: e.Name})
			}
		}
		return out, nil
	case []*Recipient:
		out := make([]*Recipient, 0, len(v))
		for _, r := range v {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	case []any:
		var out []*Recipient
		for _, item := range v {
			sub, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidRecipient, input)
	}
}

// Remove drops every Recipient whose address is in the given set.
// Matching is by address only; display names are ignored. A
// notification fires only when the length actually changed, so removing
// an absent address twice is a silent no-op.
func (l *List) Remove(addresses ...string) {
	drop := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		drop[a] = struct{}{}
	}

	kept := make([]*Recipient, 0, len(l.items))
	for _, r := range l.items {
		if _, gone := drop[r.address]; !gone {
			kept = append(kept, r)
		}
	}
	if len(kept) != len(l.items) {
		l.notify()
	}
	l.items = kept
}

// Clear empties the list. The notification fires unconditionally, even
// on an already-empty list: callers use Clear to force a resend.
func (l *List) Clear() {
	l.items = nil
	l.notify()
}

// Contains reports whether any Recipient in the list has the given
// address.
func (l *List) Contains(address string) bool {
	for _, r := range l.items {
		if r.address == address {
			return true
		}
	}
	return false
}

// Len returns the number of Recipients, counting duplicates.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the Recipient at position i in insertion order.
func (l *List) At(i int) *Recipient {
	return l.items[i]
}

// All returns the Recipients in insertion order. The returned slice is
// a copy; the Recipients themselves are shared.
func (l *List) All() []*Recipient {
	out := make([]*Recipient, len(l.items))
	copy(out, l.items)
	return out
}

// FirstWithAddress returns the first Recipient with a non-empty
// address, or nil when every entry is blank.
func (l *List) FirstWithAddress() *Recipient {
	for _, r := range l.items {
		if r.address != "" {
			return r
		}
	}
	return nil
}

// String summarizes the list for diagnostics.
func (l *List) String() string {
	return fmt.Sprintf("recipients: %d", len(l.items))
}

// TrackedChanges forwards to the owning resource's dirty set, letting
// the list itself own its Recipients: a mutation three levels down
// reaches the resource through this chain without the resource walking
// its children.
func (l *List) TrackedChanges() *FieldSet {
	if l.owner == nil {
		return nil
	}
	return l.owner.TrackedChanges()
}

// notify marks the list's field dirty on the owner, unless suppressed
// during bulk construction.
func (l *List) notify() {
	if l.untrack || l.field == "" || l.owner == nil {
		return
	}
	if set := l.owner.TrackedChanges(); set != nil {
		set.Add(l.field)
	}
}

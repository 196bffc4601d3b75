// Package recipient models email addressees with field-granular change
// tracking. A Recipient or a List holds a back-reference to its owning
// resource plus the name of the field it represents; every mutation
// writes that single field name into the owner's dirty set, so the
// owner learns what to re-send without walking its object graph.
package recipient

import "fmt"

// Recipient is a single addressee: an email address with an optional
// display name.
type Recipient struct {
	address string
	name    string
	owner   ChangeTracker
	field   string
}

// New creates a Recipient reporting to the given owner under the given
// field name. Owner may be nil for a detached recipient.
func New(address, name string, owner ChangeTracker, field string) *Recipient {
	return &Recipient{
		address: address,
		name:    name,
		owner:   owner,
		field:   field,
	}
}

// Address returns the email address.
func (r *Recipient) Address() string {
	return r.address
}

// Name returns the display name.
func (r *Recipient) Name() string {
	return r.name
}

// SetAddress replaces the email address and marks the owning field dirty.
func (r *Recipient) SetAddress(address string) {
	r.address = address
	r.markDirty()
}

// SetName replaces the display name and marks the owning field dirty.
func (r *Recipient) SetName(name string) {
	r.name = name
	r.markDirty()
}

// IsValid reports whether the recipient has an address. The display
// name never participates: a named recipient without an address is not
// deliverable.
func (r *Recipient) IsValid() bool {
	return r != nil && r.address != ""
}

// String renders "name (address)" when a display name is set, otherwise
// the bare address. Diagnostic only; the wire format lives in Codec.
func (r *Recipient) String() string {
	if r.name != "" {
		return fmt.Sprintf("%s (%s)", r.name, r.address)
	}
	return r.address
}

// markDirty records this recipient's field on the owner's dirty set,
// when an owner with engaged tracking is attached.
func (r *Recipient) markDirty() {
	if r.field == "" || r.owner == nil {
		return
	}
	if set := r.owner.TrackedChanges(); set != nil {
		set.Add(r.field)
	}
}

// attach points the recipient at a new owner and field.
func (r *Recipient) attach(owner ChangeTracker, field string) {
	r.owner = owner
	r.field = field
}

package recipient

// wire field names, logical camelCase spelling. The codec's casing
// function maps these to whatever the target API dialect expects.
const (
	keyEmailAddress = "emailAddress"
	keyAddress      = "address"
	keyName         = "name"
)

// Codec converts between the wire shape
//
//	{"emailAddress": {"address": "...", "name": "..."}}
//
// and Recipient values. It is a pure transformation layer: no I/O, no
// state beyond the owner and casing function it is parameterized with.
type Codec struct {
	// Owner is attached to every hydrated Recipient and List so later
	// mutations report back to it.
	Owner ChangeTracker
	// CC maps a logical field name to its wire spelling. Nil means
	// identity (the logical names are already camelCase).
	CC func(string) string
}

// cc applies the casing function.
func (c Codec) cc(field string) string {
	if c.CC == nil {
		return field
	}
	return c.CC(field)
}

// FromCloud hydrates an ordered wire list into a List owned by
// c.Owner under the given field name. Hydration is untracked: data
// that just arrived from the server is by definition not dirty.
func (c Codec) FromCloud(raw []map[string]any, field string) *List {
	l := newList(c.Owner, field)
	for _, item := range raw {
		r := c.SingleFromCloud(item, field)
		r.attach(l, field)
		l.items = append(l.items, r)
	}
	return l
}

// SingleFromCloud hydrates one wire item. The item may carry the
// emailAddress envelope or already be the flat {address, name} mapping;
// an empty or absent item degrades to an empty Recipient rather than
// failing, because the server's shape is not this layer's to police.
func (c Codec) SingleFromCloud(raw map[string]any, field string) *Recipient {
	if len(raw) == 0 {
		return &Recipient{}
	}

	flat := raw
	if env, ok := raw[c.cc(keyEmailAddress)].(map[string]any); ok {
		flat = env
	}

	address, _ := flat[c.cc(keyAddress)].(string)
	name, _ := flat[c.cc(keyName)].(string)
	return New(address, name, c.Owner, field)
}

// ToCloud serializes a Recipient into its wire shape. A nil or empty
// Recipient yields nil, never an empty object, so callers can tell "no
// recipient" from "recipient with blank fields". The name key is
// omitted, not nulled, when there is no display name.
func (c Codec) ToCloud(r *Recipient) map[string]any {
	if !r.IsValid() {
		return nil
	}

	inner := map[string]any{c.cc(keyAddress): r.address}
	if r.name != "" {
		inner[c.cc(keyName)] = r.name
	}
	return map[string]any{c.cc(keyEmailAddress): inner}
}

// ListToCloud serializes every deliverable Recipient in the list,
// preserving order and skipping blank entries.
func (c Codec) ListToCloud(l *List) []map[string]any {
	if l == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(l.items))
	for _, r := range l.items {
		if item := c.ToCloud(r); item != nil {
			out = append(out, item)
		}
	}
	return out
}

package recipient

import "testing"

// trackedOwner is a minimal ChangeTracker used across the package tests.
type trackedOwner struct {
	changes *FieldSet
}

func newTrackedOwner() *trackedOwner {
	return &trackedOwner{changes: NewFieldSet()}
}

func (o *trackedOwner) TrackedChanges() *FieldSet {
	return o.changes
}

// untrackedOwner exposes no dirty set; mutations against it must be
// silently ignored.
type untrackedOwner struct{}

func (untrackedOwner) TrackedChanges() *FieldSet { return nil }

func TestRecipient_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		expect  bool
	}{
		{name: "non-empty address", address: "a@example.com", expect: true},
		{name: "empty address", address: "", expect: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(tt.address, "ignored", nil, "")
			if got := r.IsValid(); got != tt.expect {
				t.Errorf("IsValid(): got %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestRecipient_IsValid_NilReceiver(t *testing.T) {
	t.Parallel()

	var r *Recipient
	if r.IsValid() {
		t.Error("IsValid() on nil receiver: got true, want false")
	}
}

func TestRecipient_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		display string
		want    string
	}{
		{name: "with display name", address: "bob@example.com", display: "Bob", want: "Bob (bob@example.com)"},
		{name: "address only", address: "bob@example.com", display: "", want: "bob@example.com"},
		{name: "empty", address: "", display: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(tt.address, tt.display, nil, "")
			if got := r.String(); got != tt.want {
				t.Errorf("String(): got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecipient_SettersMarkOwnerDirty(t *testing.T) {
	t.Parallel()

	owner := newTrackedOwner()
	r := New("old@example.com", "Old", owner, "toRecipients")

	r.SetAddress("new@example.com")
	if r.Address() != "new@example.com" {
		t.Errorf("Address(): got %q, want %q", r.Address(), "new@example.com")
	}
	if !owner.changes.Has("toRecipients") {
		t.Error("SetAddress did not mark toRecipients dirty")
	}

	owner.changes.Clear()

	r.SetName("New")
	if r.Name() != "New" {
		t.Errorf("Name(): got %q, want %q", r.Name(), "New")
	}
	if !owner.changes.Has("toRecipients") {
		t.Error("SetName did not mark toRecipients dirty")
	}
}

func TestRecipient_SetterWithoutOwnerIsSafe(t *testing.T) {
	t.Parallel()

	r := New("a@example.com", "", nil, "toRecipients")
	r.SetAddress("b@example.com")
	if r.Address() != "b@example.com" {
		t.Errorf("Address(): got %q, want %q", r.Address(), "b@example.com")
	}
}

func TestRecipient_SetterWithDisengagedTracking(t *testing.T) {
	t.Parallel()

	r := New("a@example.com", "", untrackedOwner{}, "toRecipients")
	r.SetName("A")
	if r.Name() != "A" {
		t.Errorf("Name(): got %q, want %q", r.Name(), "A")
	}
}

func TestRecipient_SetterWithoutFieldDoesNotMark(t *testing.T) {
	t.Parallel()

	owner := newTrackedOwner()
	r := New("a@example.com", "", owner, "")
	r.SetAddress("b@example.com")
	if owner.changes.Len() != 0 {
		t.Errorf("dirty fields: got %v, want none", owner.changes.Names())
	}
}

func TestFieldSet(t *testing.T) {
	t.Parallel()

	s := NewFieldSet()
	if s.Len() != 0 {
		t.Errorf("Len(): got %d, want 0", s.Len())
	}

	s.Add("subject")
	s.Add("toRecipients")
	s.Add("subject") // duplicate

	if s.Len() != 2 {
		t.Errorf("Len(): got %d, want 2", s.Len())
	}
	if !s.Has("subject") || !s.Has("toRecipients") {
		t.Errorf("Has: missing expected fields, got %v", s.Names())
	}
	if s.Has("body") {
		t.Error("Has(body): got true, want false")
	}

	want := []string{"subject", "toRecipients"}
	got := s.Names()
	if len(got) != len(want) {
		t.Fatalf("Names(): got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d]: got %q, want %q", i, got[i], want[i])
		}
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear: got %d, want 0", s.Len())
	}
}

func TestFieldSet_ZeroValueAdd(t *testing.T) {
	t.Parallel()

	var s FieldSet
	s.Add("subject")
	if !s.Has("subject") {
		t.Error("Add on zero-value FieldSet did not record the field")
	}
}

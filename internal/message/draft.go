// Package message provides the Draft resource: a client-side mail
// message whose recipient lists, subject and body track their own
// changes, so only the fields a caller actually touched are re-sent.
package message

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/plexkit/draftsync/internal/casing"
	"github.com/plexkit/draftsync/internal/recipient"
)

// Logical field names, camelCase per the Graph API. These are the keys
// written into the dirty set and, after casing, onto the wire.
const (
	FieldFrom        = "from"
	FieldTo          = "toRecipients"
	FieldCc          = "ccRecipients"
	FieldBcc         = "bccRecipients"
	FieldReplyTo     = "replyTo"
	FieldSubject     = "subject"
	FieldBody        = "body"
	FieldAttachments = "attachments"
)

// Attachment is a file attached to a draft.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Draft is a mail message being composed or edited locally. It owns its
// recipient lists and implements recipient.ChangeTracker, so every
// mutation anywhere below it lands in one dirty-field set that Patch
// turns into a minimal wire fragment.
type Draft struct {
	changes *recipient.FieldSet
	codec   recipient.Codec

	internetMessageID string
	subject           string
	textBody          string
	htmlBody          string

	from    *recipient.Recipient
	to      *recipient.List
	cc      *recipient.List
	bcc     *recipient.List
	replyTo *recipient.List

	attachments []Attachment
}

// NewDraft creates an empty draft with a generated internet message ID
// and no dirty fields.
func NewDraft() *Draft {
	d := &Draft{
		changes:           recipient.NewFieldSet(),
		internetMessageID: fmt.Sprintf("<%s@draftsync.local>", uuid.NewString()),
	}
	d.codec = recipient.Codec{Owner: d, CC: casing.Camel}
	d.from = recipient.New("", "", d, FieldFrom)
	d.to = d.codec.FromCloud(nil, FieldTo)
	d.cc = d.codec.FromCloud(nil, FieldCc)
	d.bcc = d.codec.FromCloud(nil, FieldBcc)
	d.replyTo = d.codec.FromCloud(nil, FieldReplyTo)
	return d
}

// TrackedChanges implements recipient.ChangeTracker.
func (d *Draft) TrackedChanges() *recipient.FieldSet {
	return d.changes
}

// HasChanges reports whether any field needs re-sending.
func (d *Draft) HasChanges() bool {
	return d.changes.Len() > 0
}

// ResetChanges clears the dirty set, typically after a successful
// persist. Clearing is the draft's right alone; the recipient layer
// only ever adds.
func (d *Draft) ResetChanges() {
	d.changes.Clear()
}

// To returns the primary recipient list.
func (d *Draft) To() *recipient.List { return d.to }

// Cc returns the carbon-copy recipient list.
func (d *Draft) Cc() *recipient.List { return d.cc }

// Bcc returns the blind-carbon-copy recipient list.
func (d *Draft) Bcc() *recipient.List { return d.bcc }

// ReplyTo returns the reply-to recipient list.
func (d *Draft) ReplyTo() *recipient.List { return d.replyTo }

// From returns the sender.
func (d *Draft) From() *recipient.Recipient { return d.from }

// SetFrom replaces the sender and marks the from field dirty.
func (d *Draft) SetFrom(address, name string) {
	d.from = recipient.New(address, name, d, FieldFrom)
	d.changes.Add(FieldFrom)
}

// Subject returns the subject line.
func (d *Draft) Subject() string { return d.subject }

// SetSubject replaces the subject and marks it dirty.
func (d *Draft) SetSubject(subject string) {
	d.subject = subject
	d.changes.Add(FieldSubject)
}

// TextBody returns the plain-text body.
func (d *Draft) TextBody() string { return d.textBody }

// SetTextBody replaces the plain-text body and marks the body dirty.
func (d *Draft) SetTextBody(body string) {
	d.textBody = body
	d.changes.Add(FieldBody)
}

// HTMLBody returns the HTML body.
func (d *Draft) HTMLBody() string { return d.htmlBody }

// SetHTMLBody replaces the HTML body and marks the body dirty.
func (d *Draft) SetHTMLBody(body string) {
	d.htmlBody = body
	d.changes.Add(FieldBody)
}

// Attachments returns the draft's attachments.
func (d *Draft) Attachments() []Attachment { return d.attachments }

// AddAttachment appends an attachment and marks attachments dirty.
func (d *Draft) AddAttachment(att Attachment) {
	d.attachments = append(d.attachments, att)
	d.changes.Add(FieldAttachments)
}

// InternetMessageID returns the RFC 5322 message identifier.
func (d *Draft) InternetMessageID() string { return d.internetMessageID }

// SetInternetMessageID overrides the generated message identifier, used
// when importing a message that already carries one.
func (d *Draft) SetInternetMessageID(id string) {
	d.internetMessageID = id
}

// Codec returns the draft's recipient codec.
func (d *Draft) Codec() recipient.Codec { return d.codec }

// key applies the draft's casing function to a logical field name.
func (d *Draft) key(field string) string {
	if d.codec.CC == nil {
		return field
	}
	return d.codec.CC(field)
}

package message

import (
	"encoding/base64"
)

// bodyContentText and bodyContentHTML are the Graph body contentType
// discriminators.
const (
	bodyContentText = "text"
	bodyContentHTML = "html"
)

// HydrateDraft builds a Draft from Graph-shaped JSON, either the
// sendMail envelope {"message": {...}} or the bare message object.
// Hydration is total over whatever the server returned: missing or
// malformed fields degrade to zero values, and the resulting draft has
// no dirty fields.
func HydrateDraft(raw map[string]any) *Draft {
	d := NewDraft()

	if msg, ok := raw["message"].(map[string]any); ok {
		raw = msg
	}

	if id, ok := raw[d.key("internetMessageId")].(string); ok && id != "" {
		d.internetMessageID = id
	}
	if subject, ok := raw[d.key(FieldSubject)].(string); ok {
		d.subject = subject
	}

	if body, ok := raw[d.key(FieldBody)].(map[string]any); ok {
		content, _ := body[d.key("content")].(string)
		if contentType, _ := body[d.key("contentType")].(string); contentType == bodyContentHTML {
			d.htmlBody = content
		} else {
			d.textBody = content
		}
	}

	if from, ok := raw[d.key(FieldFrom)].(map[string]any); ok {
		d.from = d.codec.SingleFromCloud(from, FieldFrom)
	}
	d.to = d.codec.FromCloud(rawList(raw[d.key(FieldTo)]), FieldTo)
	d.cc = d.codec.FromCloud(rawList(raw[d.key(FieldCc)]), FieldCc)
	d.bcc = d.codec.FromCloud(rawList(raw[d.key(FieldBcc)]), FieldBcc)
	d.replyTo = d.codec.FromCloud(rawList(raw[d.key(FieldReplyTo)]), FieldReplyTo)

	for _, item := range rawList(raw[d.key(FieldAttachments)]) {
		name, _ := item[d.key("name")].(string)
		contentType, _ := item[d.key("contentType")].(string)
		encoded, _ := item[d.key("contentBytes")].(string)
		content, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			content = nil
		}
		d.attachments = append(d.attachments, Attachment{
			Filename:    name,
			ContentType: contentType,
			Content:     content,
		})
	}

	return d
}

// rawList coerces a decoded JSON value into a list of objects,
// tolerating both []any (the usual encoding/json output) and
// pre-typed []map[string]any.
func rawList(v any) []map[string]any {
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			} else {
				out = append(out, nil)
			}
		}
		return out
	default:
		return nil
	}
}

// CloudJSON serializes the whole draft into the Graph sendMail request
// body shape.
func (d *Draft) CloudJSON() map[string]any {
	msg := map[string]any{
		d.key(FieldSubject):        d.subject,
		d.key(FieldBody):           d.bodyJSON(),
		d.key(FieldTo):             d.codec.ListToCloud(d.to),
		d.key("internetMessageId"): d.internetMessageID,
	}

	if from := d.codec.ToCloud(d.from); from != nil {
		msg[d.key(FieldFrom)] = from
	}
	if d.cc.Len() > 0 {
		msg[d.key(FieldCc)] = d.codec.ListToCloud(d.cc)
	}
	if d.bcc.Len() > 0 {
		msg[d.key(FieldBcc)] = d.codec.ListToCloud(d.bcc)
	}
	if d.replyTo.Len() > 0 {
		msg[d.key(FieldReplyTo)] = d.codec.ListToCloud(d.replyTo)
	}
	if len(d.attachments) > 0 {
		msg[d.key(FieldAttachments)] = d.attachmentsJSON()
	}

	return map[string]any{"message": msg}
}

// Patch serializes only the dirty fields, the fragment an owner sends
// to update an existing server-side message.
func (d *Draft) Patch() map[string]any {
	patch := make(map[string]any, d.changes.Len())
	for _, field := range d.changes.Names() {
		switch field {
		case FieldSubject:
			patch[d.key(FieldSubject)] = d.subject
		case FieldBody:
			patch[d.key(FieldBody)] = d.bodyJSON()
		case FieldFrom:
			patch[d.key(FieldFrom)] = d.codec.ToCloud(d.from)
		case FieldTo:
			patch[d.key(FieldTo)] = d.codec.ListToCloud(d.to)
		case FieldCc:
			patch[d.key(FieldCc)] = d.codec.ListToCloud(d.cc)
		case FieldBcc:
			patch[d.key(FieldBcc)] = d.codec.ListToCloud(d.bcc)
		case FieldReplyTo:
			patch[d.key(FieldReplyTo)] = d.codec.ListToCloud(d.replyTo)
		case FieldAttachments:
			patch[d.key(FieldAttachments)] = d.attachmentsJSON()
		}
	}
	return patch
}

// bodyJSON renders the Graph body object, preferring HTML when both
// bodies are set, as the delivery side does.
func (d *Draft) bodyJSON() map[string]any {
	contentType, content := bodyContentText, d.textBody
	if d.htmlBody != "" {
		contentType, content = bodyContentHTML, d.htmlBody
	}
	return map[string]any{
		d.key("contentType"): contentType,
		d.key("content"):     content,
	}
}

// attachmentsJSON renders attachments as Graph fileAttachment objects.
func (d *Draft) attachmentsJSON() []map[string]any {
	out := make([]map[string]any, 0, len(d.attachments))
	for _, att := range d.attachments {
		out = append(out, map[string]any{
			"@odata.type":         "#microsoft.graph.fileAttachment",
			d.key("name"):         att.Filename,
			d.key("contentType"):  att.ContentType,
			d.key("contentBytes"): base64.StdEncoding.EncodeToString(att.Content),
		})
	}
	return out
}

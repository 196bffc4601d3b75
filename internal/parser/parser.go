// Package parser provides RFC 5322 email message parsing with MIME multipart support.
package parser

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"

	"github.com/plexkit/draftsync/internal/message"
	"github.com/plexkit/draftsync/internal/recipient"
)

// Parse parses a raw RFC 5322 email message into a Draft.
// It handles plain text messages, multipart messages with text/html bodies,
// and attachments. Unrecognized MIME parts are logged as warnings.
// The returned draft has no dirty fields; importing is not editing.
func Parse(raw []byte) (*message.Draft, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	d := message.NewDraft()

	if from := msg.Header.Get("From"); from != "" {
		if addr, err := mail.ParseAddress(from); err == nil {
			d.SetFrom(addr.Address, addr.Name)
		} else {
			d.SetFrom(strings.TrimSpace(from), "")
		}
	}
	d.SetSubject(msg.Header.Get("Subject"))
	if id := msg.Header.Get("Message-Id"); id != "" {
		d.SetInternetMessageID(id)
	}

	headers := []struct {
		name string
		list *recipient.List
	}{
		{"To", d.To()},
		{"Cc", d.Cc()},
		{"Bcc", d.Bcc()},
		{"Reply-To", d.ReplyTo()},
	}
	for _, h := range headers {
		entries := parseAddressList(msg.Header.Get(h.name))
		if len(entries) == 0 {
			continue
		}
		if err := h.list.Add(entries); err != nil {
			return nil, fmt.Errorf("invalid %s header: %w", h.name, err)
		}
	}

	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// If content type is unparseable, treat as plain text
		slog.Warn("failed to parse content type, treating as plain text",
			"content_type", contentType,
			"error", err,
		)
		body, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read message body: %w", readErr)
		}
		d.SetTextBody(string(body))
		d.ResetChanges()
		return d, nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, fmt.Errorf("multipart message missing boundary")
		}
		if err := parseMultipart(msg.Body, boundary, d); err != nil {
			return nil, fmt.Errorf("failed to parse multipart message: %w", err)
		}
	} else {
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read message body: %w", err)
		}
		switch mediaType {
		case "text/plain":
			d.SetTextBody(string(body))
		case "text/html":
			d.SetHTMLBody(string(body))
		default:
			slog.Warn("unrecognized top-level content type",
				"content_type", mediaType,
			)
			d.SetTextBody(string(body))
		}
	}

	d.ResetChanges()
	return d, nil
}

// parseMultipart processes a multipart MIME message body, extracting text/plain,
// text/html parts and attachments into the draft.
func parseMultipart(body io.Reader, boundary string, d *message.Draft) error {
	reader := multipart.NewReader(body, boundary)

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read next part: %w", err)
		}

		partContentType := part.Header.Get("Content-Type")
		if partContentType == "" {
			partContentType = "text/plain"
		}

		mediaType, params, err := mime.ParseMediaType(partContentType)
		if err != nil {
			slog.Warn("failed to parse part content type, skipping",
				"content_type", partContentType,
				"error", err,
			)
			continue
		}

		contentDisposition := part.Header.Get("Content-Disposition")
		isAttachment := strings.HasPrefix(contentDisposition, "attachment")

		// Check for nested multipart
		if strings.HasPrefix(mediaType, "multipart/") {
			nestedBoundary := params["boundary"]
			if nestedBoundary == "" {
				slog.Warn("nested multipart missing boundary, skipping")
				continue
			}
			if err := parseMultipart(part, nestedBoundary, d); err != nil {
				slog.Warn("failed to parse nested multipart",
					"error", err,
				)
			}
			continue
		}

		content, err := readPartContent(part)
		if err != nil {
			slog.Warn("failed to read part content",
				"content_type", mediaType,
				"error", err,
			)
			continue
		}

		if isAttachment {
			filename := extractFilename(part, params)
			d.AddAttachment(message.Attachment{
				Filename:    filename,
				ContentType: mediaType,
				Content:     content,
			})
			continue
		}

		switch mediaType {
		case "text/plain":
			if d.TextBody() == "" {
				d.SetTextBody(string(content))
			}
		case "text/html":
			if d.HTMLBody() == "" {
				d.SetHTMLBody(string(content))
			}
		default:
			// Check if it has a filename even without attachment disposition
			filename := extractFilename(part, params)
			if filename != "" {
				d.AddAttachment(message.Attachment{
					Filename:    filename,
					ContentType: mediaType,
					Content:     content,
				})
			} else {
				slog.Warn("unrecognized MIME part, skipping",
					"content_type", mediaType,
					"disposition", contentDisposition,
				)
			}
		}
	}

	return nil
}

// readPartContent reads the full content of a MIME part, handling
// Content-Transfer-Encoding (base64, quoted-printable).
func readPartContent(part *multipart.Part) ([]byte, error) {
	encoding := part.Header.Get("Content-Transfer-Encoding")
	encoding = strings.ToLower(strings.TrimSpace(encoding))

	raw, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}

	switch encoding {
	case "base64":
		cleaned := strings.NewReplacer("\r", "", "\n", "").Replace(string(raw))
		decoded, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			// Try with RawStdEncoding for unpadded base64
			decoded, err = base64.RawStdEncoding.DecodeString(cleaned)
			if err != nil {
				return nil, fmt.Errorf("failed to decode base64 content: %w", err)
			}
		}
		return decoded, nil
	default:
		// For "7bit", "8bit", "binary", "quoted-printable", or empty,
		// return raw content. Go's multipart reader handles QP internally.
		return raw, nil
	}
}

// extractFilename extracts the filename from a MIME part, checking both
// Content-Disposition and Content-Type parameters.
func extractFilename(part *multipart.Part, params map[string]string) string {
	// Try Content-Disposition filename first (via multipart.Part)
	if fn := part.FileName(); fn != "" {
		return fn
	}
	// Fall back to Content-Type "name" parameter
	if name, ok := params["name"]; ok && name != "" {
		return name
	}
	// Generate fallback name from media type to satisfy Graph API's required "name" property
	if mediaType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type")); err == nil {
		parts := strings.SplitN(mediaType, "/", 2)
		if len(parts) == 2 {
			return "attachment." + parts[1]
		}
	}
	return "attachment"
}

// parseAddressList splits a comma-separated address header into
// (name, address) pairs, preserving display names.
func parseAddressList(raw string) []recipient.Entry {
	if raw == "" {
		return nil
	}

	addresses, err := mail.ParseAddressList(raw)
	if err != nil {
		// Fall back to simple comma split if RFC 5322 parsing fails
		parts := strings.Split(raw, ",")
		entries := make([]recipient.Entry, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				entries = append(entries, recipient.Entry{Address: trimmed})
			}
		}
		return entries
	}

	entries := make([]recipient.Entry, 0, len(addresses))
	for _, addr := range addresses {
		entries = append(entries, recipient.Entry{Name: addr.Name, Address: addr.Address})
	}
	return entries
}

// Package stdout implements a Provider that prints drafts to standard output.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/plexkit/draftsync/internal/message"
	"github.com/plexkit/draftsync/internal/recipient"
)

// Provider prints drafts to stdout in a human-readable format.
type Provider struct {
	// writer is the output destination, defaulting to os.Stdout.
	writer io.Writer
}

// New creates a new stdout Provider that writes to os.Stdout.
func New() *Provider {
	return &Provider{writer: os.Stdout}
}

// NewWithWriter creates a new stdout Provider that writes to the given writer.
// This is useful for testing.
func NewWithWriter(w io.Writer) *Provider {
	return &Provider{writer: w}
}

// Send prints the draft to stdout in a readable format.
// It always returns nil (success).
func (p *Provider) Send(_ context.Context, d *message.Draft) error {
	var b strings.Builder

	b.WriteString("========================================\n")
	if from := d.From(); from.IsValid() {
		b.WriteString(fmt.Sprintf("From: %s\n", from))
	}
	b.WriteString(fmt.Sprintf("To: %s\n", joinRecipients(d.To())))

	if d.Cc().Len() > 0 {
		b.WriteString(fmt.Sprintf("Cc: %s\n", joinRecipients(d.Cc())))
	}
	if d.Bcc().Len() > 0 {
		b.WriteString(fmt.Sprintf("Bcc: %s\n", joinRecipients(d.Bcc())))
	}

	b.WriteString(fmt.Sprintf("Subject: %s\n", d.Subject()))
	b.WriteString("Body:\n")

	body := d.TextBody()
	if body == "" {
		body = d.HTMLBody()
	}
	b.WriteString(body + "\n")

	if len(d.Attachments()) > 0 {
		attachments := make([]string, 0, len(d.Attachments()))
		for _, att := range d.Attachments() {
			attachments = append(attachments, fmt.Sprintf("%s (%s)", att.Filename, formatSize(len(att.Content))))
		}
		b.WriteString(fmt.Sprintf("Attachments: %s\n", strings.Join(attachments, ", ")))
	}

	b.WriteString("========================================\n")

	_, err := fmt.Fprint(p.writer, b.String())
	if err != nil {
		// Log the write error but still return nil since the provider
		// contract says stdout always succeeds conceptually
		return nil
	}

	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "stdout"
}

// joinRecipients renders a recipient list using each recipient's
// diagnostic form, "name (address)" or bare address.
func joinRecipients(l *recipient.List) string {
	parts := make([]string, 0, l.Len())
	for _, r := range l.All() {
		if r.IsValid() {
			parts = append(parts, r.String())
		}
	}
	return strings.Join(parts, ", ")
}

// formatSize formats a byte count into a human-readable string.
func formatSize(bytes int) string {
	const (
		kb = 1024
		mb = kb * 1024
	)

	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

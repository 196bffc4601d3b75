package parser

import (
	"strings"
	"testing"
)

func TestParsePlainTextEmail(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: recipient@example.com",
		"Subject: Test Subject",
		"Message-Id: <test123@example.com>",
		"Content-Type: text/plain",
		"",
		"Hello, this is a plain text email.",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.From().Address() != "sender@example.com" {
		t.Errorf("From: got %q, want %q", d.From().Address(), "sender@example.com")
	}
	if d.To().Len() != 1 || d.To().At(0).Address() != "recipient@example.com" {
		t.Errorf("To: got %v, want one recipient@example.com", d.To())
	}
	if d.Subject() != "Test Subject" {
		t.Errorf("Subject: got %q, want %q", d.Subject(), "Test Subject")
	}
	if d.InternetMessageID() != "<test123@example.com>" {
		t.Errorf("InternetMessageID: got %q, want %q", d.InternetMessageID(), "<test123@example.com>")
	}
	if d.TextBody() != "Hello, this is a plain text email." {
		t.Errorf("TextBody: got %q, want %q", d.TextBody(), "Hello, this is a plain text email.")
	}
	if d.HTMLBody() != "" {
		t.Errorf("HTMLBody: got %q, want empty", d.HTMLBody())
	}
	if len(d.Attachments()) != 0 {
		t.Errorf("Attachments: got %d, want 0", len(d.Attachments()))
	}
}

func TestParseImportedDraftIsClean(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: recipient@example.com",
		"Subject: Clean Import",
		"Content-Type: text/plain",
		"",
		"Body",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.HasChanges() {
		t.Errorf("imported draft should have no dirty fields, got %v", d.TrackedChanges().Names())
	}

	if err := d.Cc().Add("late@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.TrackedChanges().Has("ccRecipients") {
		t.Error("editing an imported draft should mark the edited field dirty")
	}
}

func TestParseDisplayNames(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: \"Ann Example\" <ann@example.com>",
		"To: \"Bob\" <bob@example.com>, carol@example.com",
		"Reply-To: \"Support\" <support@example.com>",
		"Subject: Names",
		"Content-Type: text/plain",
		"",
		"Body",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.From().Address() != "ann@example.com" || d.From().Name() != "Ann Example" {
		t.Errorf("From: got %q %q, want ann@example.com with name Ann Example",
			d.From().Address(), d.From().Name())
	}
	if d.To().Len() != 2 {
		t.Fatalf("To: got %d recipients, want 2", d.To().Len())
	}
	if d.To().At(0).Name() != "Bob" {
		t.Errorf("To[0] name: got %q, want %q", d.To().At(0).Name(), "Bob")
	}
	if d.To().At(1).Name() != "" {
		t.Errorf("To[1] name: got %q, want empty", d.To().At(1).Name())
	}
	if d.ReplyTo().Len() != 1 || d.ReplyTo().At(0).Address() != "support@example.com" {
		t.Errorf("ReplyTo: got %v, want one support@example.com", d.ReplyTo())
	}
}

func TestParseMultipartTextAndHTML(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: alice@example.com, bob@example.com",
		"Cc: carol@example.com",
		"Subject: Multipart Test",
		"Content-Type: multipart/alternative; boundary=boundary123",
		"",
		"--boundary123",
		"Content-Type: text/plain",
		"",
		"Plain text body",
		"--boundary123",
		"Content-Type: text/html",
		"",
		"<html><body><p>HTML body</p></body></html>",
		"--boundary123--",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.From().Address() != "sender@example.com" {
		t.Errorf("From: got %q, want %q", d.From().Address(), "sender@example.com")
	}
	if d.To().Len() != 2 {
		t.Fatalf("To: got %d recipients, want 2", d.To().Len())
	}
	if d.To().At(0).Address() != "alice@example.com" {
		t.Errorf("To[0]: got %q, want %q", d.To().At(0).Address(), "alice@example.com")
	}
	if d.To().At(1).Address() != "bob@example.com" {
		t.Errorf("To[1]: got %q, want %q", d.To().At(1).Address(), "bob@example.com")
	}
	if d.Cc().Len() != 1 || d.Cc().At(0).Address() != "carol@example.com" {
		t.Errorf("Cc: got %v, want one carol@example.com", d.Cc())
	}
	if d.TextBody() != "Plain text body" {
		t.Errorf("TextBody: got %q, want %q", d.TextBody(), "Plain text body")
	}
	if d.HTMLBody() != "<html><body><p>HTML body</p></body></html>" {
		t.Errorf("HTMLBody: got %q, want %q", d.HTMLBody(), "<html><body><p>HTML body</p></body></html>")
	}
}

func TestParseEmailWithAttachments(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: recipient@example.com",
		"Subject: With Attachment",
		"Content-Type: multipart/mixed; boundary=mixedboundary",
		"",
		"--mixedboundary",
		"Content-Type: text/plain",
		"",
		"Email body text",
		"--mixedboundary",
		"Content-Type: application/pdf; name=\"report.pdf\"",
		"Content-Disposition: attachment; filename=\"report.pdf\"",
		"Content-Transfer-Encoding: base64",
		"",
		"SGVsbG8gV29ybGQ=",
		"--mixedboundary--",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.TextBody() != "Email body text" {
		t.Errorf("TextBody: got %q, want %q", d.TextBody(), "Email body text")
	}
	if len(d.Attachments()) != 1 {
		t.Fatalf("Attachments: got %d, want 1", len(d.Attachments()))
	}

	att := d.Attachments()[0]
	if att.Filename != "report.pdf" {
		t.Errorf("Attachment Filename: got %q, want %q", att.Filename, "report.pdf")
	}
	if att.ContentType != "application/pdf" {
		t.Errorf("Attachment ContentType: got %q, want %q", att.ContentType, "application/pdf")
	}
	if string(att.Content) != "Hello World" {
		t.Errorf("Attachment Content: got %q, want %q", string(att.Content), "Hello World")
	}
}

func TestParseMalformedMIME(t *testing.T) {
	t.Parallel()

	t.Run("completely invalid message", func(t *testing.T) {
		t.Parallel()
		raw := []byte("not a valid email at all\x00\x01\x02")
		_, err := Parse(raw)
		if err == nil {
			t.Error("expected error for completely invalid message, got nil")
		}
	})

	t.Run("missing content type defaults to text/plain", func(t *testing.T) {
		t.Parallel()
		raw := []byte(strings.Join([]string{
			"From: sender@example.com",
			"To: recipient@example.com",
			"Subject: No Content Type",
			"",
			"Body without content type header",
		}, "\r\n"))

		d, err := Parse(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.TextBody() != "Body without content type header" {
			t.Errorf("TextBody: got %q, want %q", d.TextBody(), "Body without content type header")
		}
	})

	t.Run("multipart missing boundary", func(t *testing.T) {
		t.Parallel()
		raw := []byte(strings.Join([]string{
			"From: sender@example.com",
			"To: recipient@example.com",
			"Content-Type: multipart/mixed",
			"",
			"some body",
		}, "\r\n"))

		_, err := Parse(raw)
		if err == nil {
			t.Error("expected error for multipart missing boundary, got nil")
		}
	})
}

func TestParseMultipleRecipients(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: alice@example.com, bob@example.com, carol@example.com",
		"Bcc: secret@example.com",
		"Subject: Multiple Recipients",
		"Content-Type: text/plain",
		"",
		"Hello everyone",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.To().Len() != 3 {
		t.Fatalf("To: got %d recipients, want 3", d.To().Len())
	}
	if d.Bcc().Len() != 1 || d.Bcc().At(0).Address() != "secret@example.com" {
		t.Errorf("Bcc: got %v, want one secret@example.com", d.Bcc())
	}
}

func TestParseEmptyAddressFields(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"Subject: No To",
		"Content-Type: text/plain",
		"",
		"Body",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.To().Len() != 0 {
		t.Errorf("To: got %d recipients, want 0", d.To().Len())
	}
	if d.Cc().Len() != 0 {
		t.Errorf("Cc: got %d recipients, want 0", d.Cc().Len())
	}
	if d.Bcc().Len() != 0 {
		t.Errorf("Bcc: got %d recipients, want 0", d.Bcc().Len())
	}
}

func TestParseKeepsGeneratedMessageID(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: recipient@example.com",
		"Subject: No Message-Id",
		"Content-Type: text/plain",
		"",
		"Body",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.InternetMessageID() == "" {
		t.Error("InternetMessageID should fall back to the generated identifier")
	}
}

func TestParseBase64AttachmentWithCRLF(t *testing.T) {
	t.Parallel()

	raw := []byte("From: sender@example.com\r\n" +
		"To: recipient@example.com\r\n" +
		"Subject: CRLF Base64\r\n" +
		"Content-Type: multipart/mixed; boundary=bound\r\n" +
		"\r\n" +
		"--bound\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"body\r\n" +
		"--bound\r\n" +
		"Content-Type: application/pdf; name=\"file.pdf\"\r\n" +
		"Content-Disposition: attachment; filename=\"file.pdf\"\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"SGVs\r\n" +
		"bG8g\r\n" +
		"V29y\r\n" +
		"bGQ=\r\n" +
		"--bound--\r\n")

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.Attachments()) != 1 {
		t.Fatalf("Attachments: got %d, want 1", len(d.Attachments()))
	}

	att := d.Attachments()[0]
	if att.Filename != "file.pdf" {
		t.Errorf("Filename: got %q, want %q", att.Filename, "file.pdf")
	}
	if string(att.Content) != "Hello World" {
		t.Errorf("Content: got %q, want %q", string(att.Content), "Hello World")
	}
}

func TestParseAttachmentWithoutFilename(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: recipient@example.com",
		"Subject: No Filename",
		"Content-Type: multipart/mixed; boundary=bound",
		"",
		"--bound",
		"Content-Type: text/plain",
		"",
		"body",
		"--bound",
		"Content-Type: application/pdf",
		"Content-Disposition: attachment",
		"Content-Transfer-Encoding: base64",
		"",
		"SGVsbG8gV29ybGQ=",
		"--bound--",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.Attachments()) != 1 {
		t.Fatalf("Attachments: got %d, want 1", len(d.Attachments()))
	}

	att := d.Attachments()[0]
	if att.Filename == "" {
		t.Error("Filename should not be empty for attachments without explicit filename")
	}
	if att.Filename != "attachment.pdf" {
		t.Errorf("Filename: got %q, want %q", att.Filename, "attachment.pdf")
	}
	if string(att.Content) != "Hello World" {
		t.Errorf("Content: got %q, want %q", string(att.Content), "Hello World")
	}
}

func TestParseNestedMultipart(t *testing.T) {
	t.Parallel()

	raw := []byte(strings.Join([]string{
		"From: sender@example.com",
		"To: recipient@example.com",
		"Subject: Nested Multipart",
		"Content-Type: multipart/mixed; boundary=outer",
		"",
		"--outer",
		"Content-Type: multipart/alternative; boundary=inner",
		"",
		"--inner",
		"Content-Type: text/plain",
		"",
		"Plain text part",
		"--inner",
		"Content-Type: text/html",
		"",
		"<p>HTML part</p>",
		"--inner--",
		"--outer",
		"Content-Type: application/octet-stream; name=\"data.bin\"",
		"Content-Disposition: attachment; filename=\"data.bin\"",
		"",
		"binarydata",
		"--outer--",
	}, "\r\n"))

	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.TextBody() != "Plain text part" {
		t.Errorf("TextBody: got %q, want %q", d.TextBody(), "Plain text part")
	}
	if d.HTMLBody() != "<p>HTML part</p>" {
		t.Errorf("HTMLBody: got %q, want %q", d.HTMLBody(), "<p>HTML part</p>")
	}
	if len(d.Attachments()) != 1 {
		t.Fatalf("Attachments: got %d, want 1", len(d.Attachments()))
	}
	if d.Attachments()[0].Filename != "data.bin" {
		t.Errorf("Attachment Filename: got %q, want %q", d.Attachments()[0].Filename, "data.bin")
	}
}

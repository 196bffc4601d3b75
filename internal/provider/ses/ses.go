// Package ses implements a Provider that sends drafts via AWS SES v2.
package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/plexkit/draftsync/internal/message"
	"github.com/plexkit/draftsync/internal/recipient"
)

// maxRetries is the maximum number of retry attempts for transient failures.
const maxRetries = 3

// baseRetryDelay is the initial delay for exponential backoff.
const baseRetryDelay = 1 * time.Second

// Config holds the settings for creating a Provider.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// Provider sends drafts via the AWS SES v2 API.
type Provider struct {
	sender string
	client SendEmailAPI
}

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
// Used for testing with mock implementations.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// New creates a Provider with the given configuration.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	var opts []func(*awsconfig.LoadOptions) error

	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Provider{
		sender: cfg.Sender,
		client: sesv2.NewFromConfig(awsCfg),
	}, nil
}

// NewWithClient creates a Provider with a custom client, used for testing.
func NewWithClient(sender string, client SendEmailAPI) *Provider {
	return &Provider{
		sender: sender,
		client: client,
	}
}

// Send delivers a draft via AWS SES v2. Drafts with attachments go out
// as raw MIME; plain drafts use the SES simple email format. Recipient
// display names survive in both paths.
func (p *Provider) Send(ctx context.Context, d *message.Draft) error {
	var input *sesv2.SendEmailInput

	if len(d.Attachments()) > 0 {
		raw, err := buildRawMessage(p.fromHeader(d), d)
		if err != nil {
			return fmt.Errorf("failed to build raw message: %w", err)
		}
		input = &sesv2.SendEmailInput{
			Content: &types.EmailContent{
				Raw: &types.RawMessage{
					Data: raw,
				},
			},
		}
	} else {
		input = p.buildSimpleInput(d)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			slog.Debug("retrying SES API request",
				"attempt", attempt,
				"max_retries", maxRetries,
			)
			delay := backoffDelay(attempt)
			if err := sleepWithContext(ctx, delay); err != nil {
				return fmt.Errorf("context cancelled during retry wait: %w", err)
			}
		}

		_, err := p.client.SendEmail(ctx, input)
		if err == nil {
			return nil
		}

		lastErr = err
		slog.Warn("SES API error",
			"attempt", attempt,
			"error", err,
		)
	}

	return fmt.Errorf("SES API request failed after %d retries: %w", maxRetries, lastErr)
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "ses"
}

// fromHeader renders the sender address, preferring the draft's own
// from recipient over the provider's configured sender.
func (p *Provider) fromHeader(d *message.Draft) string {
	if from := d.From(); from.IsValid() {
		return formatAddress(from)
	}
	return p.sender
}

// formatAddress renders one recipient as an RFC 5322 address, keeping
// the display name when present.
func formatAddress(r *recipient.Recipient) string {
	if r.Name() == "" {
		return r.Address()
	}
	addr := mail.Address{Name: r.Name(), Address: r.Address()}
	return addr.String()
}

// formatAddresses renders a recipient list, skipping blank entries.
func formatAddresses(l *recipient.List) []string {
	out := make([]string, 0, l.Len())
	for _, r := range l.All() {
		if r.IsValid() {
			out = append(out, formatAddress(r))
		}
	}
	return out
}

// buildSimpleInput creates a SES SendEmailInput for drafts without attachments.
func (p *Provider) buildSimpleInput(d *message.Draft) *sesv2.SendEmailInput {
	body := &types.Body{}

	if d.HTMLBody() != "" {
		body.Html = &types.Content{
			Data:    aws.String(d.HTMLBody()),
			Charset: aws.String("UTF-8"),
		}
	}
	if d.TextBody() != "" {
		body.Text = &types.Content{
			Data:    aws.String(d.TextBody()),
			Charset: aws.String("UTF-8"),
		}
	}

	dest := &types.Destination{
		ToAddresses:  formatAddresses(d.To()),
		CcAddresses:  formatAddresses(d.Cc()),
		BccAddresses: formatAddresses(d.Bcc()),
	}

	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(p.fromHeader(d)),
		Destination:      dest,
		ReplyToAddresses: formatAddresses(d.ReplyTo()),
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(d.Subject()),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	}
}

// buildRawMessage constructs a raw MIME message for drafts with attachments.
func buildRawMessage(sender string, d *message.Draft) ([]byte, error) {
	var buf bytes.Buffer

	// Write headers
	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	if to := formatAddresses(d.To()); len(to) > 0 {
		fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	}
	if cc := formatAddresses(d.Cc()); len(cc) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(cc, ", "))
	}
	if replyTo := formatAddresses(d.ReplyTo()); len(replyTo) > 0 {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", strings.Join(replyTo, ", "))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", d.Subject())
	if d.InternetMessageID() != "" {
		fmt.Fprintf(&buf, "Message-ID: %s\r\n", d.InternetMessageID())
	}
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	// Write body part
	bodyHeader := make(textproto.MIMEHeader)
	if d.HTMLBody() != "" {
		bodyHeader.Set("Content-Type", "text/html; charset=UTF-8")
		part, err := writer.CreatePart(bodyHeader)
		if err != nil {
			return nil, fmt.Errorf("failed to create body part: %w", err)
		}
		part.Write([]byte(d.HTMLBody()))
	} else if d.TextBody() != "" {
		bodyHeader.Set("Content-Type", "text/plain; charset=UTF-8")
		part, err := writer.CreatePart(bodyHeader)
		if err != nil {
			return nil, fmt.Errorf("failed to create body part: %w", err)
		}
		part.Write([]byte(d.TextBody()))
	}

	// Write attachments
	for _, att := range d.Attachments() {
		attHeader := make(textproto.MIMEHeader)
		attHeader.Set("Content-Type", att.ContentType)
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attHeader.Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s", mime.QEncoding.Encode("UTF-8", att.Filename)))

		part, err := writer.CreatePart(attHeader)
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}

		encoded := encodeBase64WithLineBreaks(att.Content)
		part.Write([]byte(encoded))
	}

	writer.Close()
	return buf.Bytes(), nil
}

// encodeBase64WithLineBreaks encodes bytes to base64 with 76-character line breaks per RFC 2045.
func encodeBase64WithLineBreaks(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var lines []string
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		lines = append(lines, encoded[i:end])
	}
	return strings.Join(lines, "\r\n")
}

// backoffDelay returns the exponential backoff delay for the given attempt number.
func backoffDelay(attempt int) time.Duration {
	delay := baseRetryDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// sleepWithContext waits for the specified duration or until the context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

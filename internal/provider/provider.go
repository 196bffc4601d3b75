// Package provider defines the interface for draft delivery backends.
package provider

import (
	"context"

	"github.com/plexkit/draftsync/internal/message"
)

// Provider is the interface that delivery backends must implement.
// Each provider turns a locally composed Draft into an outbound send
// against its target service (Microsoft Graph, AWS SES, stdout).
type Provider interface {
	// Send delivers a draft through this provider.
	// It returns an error if the delivery fails.
	Send(ctx context.Context, d *message.Draft) error

	// Name returns the human-readable name of this provider.
	Name() string
}

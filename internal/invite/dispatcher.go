// File: internal/invite/dispatcher.go
package invite

import (
	"context"
	"fmt"
	"time"

	"climatework_backend/internal/notification"
	"climatework_backend/internal/platform/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Invitee is one email to invite into an organization.
type Invitee struct {
	Email string
	Role  *string
}

// Batch carries everything the dispatcher needs about one provisioned
// organization.
type Batch struct {
	OrganizationID   uuid.UUID
	OrganizationName string
	InviterID        uuid.UUID
	Invitees         []Invitee
}

// Dispatcher creates and delivers team invites, best-effort. Invites are
// decoupled from the onboarding transaction: row creation or delivery
// failures are logged and never surface to the caller.
type Dispatcher struct {
	repo    Repository
	sender  notification.Sender
	baseURL string
	logger  *zap.Logger
}

// NewDispatcher creates a new invite dispatcher.
func NewDispatcher(repo Repository, sender notification.Sender, baseURL string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, sender: sender, baseURL: baseURL, logger: logger}
}

// Dispatch launches delivery in the background and returns immediately. The
// detached context outlives the originating request on purpose.
func (d *Dispatcher) Dispatch(batch Batch) {
	if len(batch.Invitees) == 0 {
		return
	}
	go d.deliver(context.Background(), batch)
}

func (d *Dispatcher) deliver(ctx context.Context, batch Batch) {
	for _, invitee := range batch.Invitees {
		token, err := crypto.GenerateSecureRandomString(32)
		if err != nil {
			d.logInviteFailure("Failed to generate invite token", err, batch, invitee)
			continue
		}

		inv := &TeamInvite{
			OrganizationID: batch.OrganizationID,
			InviterID:      batch.InviterID,
			Email:          invitee.Email,
			Role:           invitee.Role,
			Token:          token,
			Status:         StatusPending,
			ExpiresAt:      time.Now().UTC().AddDate(0, 0, ExpiryDays),
		}
		if err := d.repo.Create(ctx, inv); err != nil {
			d.logInviteFailure("Failed to create team invite", err, batch, invitee)
			continue
		}

		msg := notification.Message{
			To:       invitee.Email,
			Template: "team-invite",
			Data: map[string]string{
				"organization": batch.OrganizationName,
				"acceptUrl":    fmt.Sprintf("%s/invites/accept?token=%s", d.baseURL, token),
			},
		}
		if err := d.sender.Send(ctx, msg); err != nil {
			d.logInviteFailure("Failed to send team invite notification", err, batch, invitee)
			continue
		}

		d.logger.Info("Team invite dispatched",
			zap.String("organizationID", batch.OrganizationID.String()),
			zap.String("recipient", invitee.Email),
		)
	}
}

func (d *Dispatcher) logInviteFailure(msg string, err error, batch Batch, invitee Invitee) {
	d.logger.Error(msg,
		zap.Error(err),
		zap.String("organizationID", batch.OrganizationID.String()),
		zap.String("inviterID", batch.InviterID.String()),
		zap.String("recipient", invitee.Email),
	)
}

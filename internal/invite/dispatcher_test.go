package invite

import (
	"context"
	"errors"
	"testing"
	"time"

	"climatework_backend/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInviteRepo struct {
	created   []*TeamInvite
	createErr map[string]error
}

func (f *fakeInviteRepo) Create(_ context.Context, inv *TeamInvite) error {
	if err := f.createErr[inv.Email]; err != nil {
		return err
	}
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeInviteRepo) ExpireStale(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type recordingSender struct {
	sent    []notification.Message
	sendErr map[string]error
}

func (r *recordingSender) Send(_ context.Context, msg notification.Message) error {
	if err := r.sendErr[msg.To]; err != nil {
		return err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func testBatch(invitees ...Invitee) Batch {
	return Batch{
		OrganizationID:   uuid.New(),
		OrganizationName: "Solaris Energy Co.",
		InviterID:        uuid.New(),
		Invitees:         invitees,
	}
}

func TestDeliverCreatesInvitesAndSends(t *testing.T) {
	repo := &fakeInviteRepo{}
	sender := &recordingSender{}
	d := NewDispatcher(repo, sender, "http://localhost:3000", zap.NewNop())

	d.deliver(context.Background(), testBatch(
		Invitee{Email: "a@example.com"},
		Invitee{Email: "b@example.com"},
	))

	require.Len(t, repo.created, 2)
	require.Len(t, sender.sent, 2)

	inv := repo.created[0]
	assert.Equal(t, StatusPending, inv.Status)
	assert.NotEmpty(t, inv.Token)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, ExpiryDays), inv.ExpiresAt, time.Minute)

	msg := sender.sent[0]
	assert.Equal(t, "a@example.com", msg.To)
	assert.Equal(t, "team-invite", msg.Template)
	assert.Contains(t, msg.Data["acceptUrl"], inv.Token)
}

func TestDeliverTokensAreUnique(t *testing.T) {
	repo := &fakeInviteRepo{}
	d := NewDispatcher(repo, &recordingSender{}, "http://localhost:3000", zap.NewNop())

	d.deliver(context.Background(), testBatch(
		Invitee{Email: "a@example.com"},
		Invitee{Email: "b@example.com"},
	))

	require.Len(t, repo.created, 2)
	assert.NotEqual(t, repo.created[0].Token, repo.created[1].Token)
}

func TestDeliverContinuesPastFailures(t *testing.T) {
	repo := &fakeInviteRepo{
		createErr: map[string]error{"broken@example.com": errors.New("row create failed")},
	}
	sender := &recordingSender{
		sendErr: map[string]error{"bounce@example.com": errors.New("send failed")},
	}
	d := NewDispatcher(repo, sender, "http://localhost:3000", zap.NewNop())

	d.deliver(context.Background(), testBatch(
		Invitee{Email: "broken@example.com"},
		Invitee{Email: "bounce@example.com"},
		Invitee{Email: "fine@example.com"},
	))

	// The broken row never reaches the sender; the bounced send leaves its
	// row in place; the healthy invite goes through.
	require.Len(t, repo.created, 2)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "fine@example.com", sender.sent[0].To)
}

func TestDispatchWithNoInviteesIsNoop(t *testing.T) {
	repo := &fakeInviteRepo{}
	d := NewDispatcher(repo, &recordingSender{}, "http://localhost:3000", zap.NewNop())

	d.Dispatch(Batch{OrganizationID: uuid.New(), InviterID: uuid.New()})

	assert.Empty(t, repo.created)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/repository"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

func TestListRenderedEmptyQueue(t *testing.T) {
	svc := NewEscalationService(repository.NewMemoryEscalationRepository(), nil)

	rendered, err := svc.ListRendered(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "No escalations.", rendered)
}

func TestListRenderedLineFormat(t *testing.T) {
	repo := repository.NewMemoryEscalationRepository()
	svc := NewEscalationService(repo, nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, "broken checkout", 5)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "question about sizes", 3)
	require.NoError(t, err)

	rendered, err := svc.ListRendered(ctx, "")
	require.NoError(t, err)
	assert.Equal(t,
		"id=1 | priority=5 | status=open | query=broken checkout\n"+
			"id=2 | priority=3 | status=open | query=question about sizes",
		rendered)
}

func TestListRenderedStatusFilter(t *testing.T) {
	repo := repository.NewMemoryEscalationRepository()
	svc := NewEscalationService(repo, nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, "first", 3)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "second", 3)
	require.NoError(t, err)
	_, err = repo.Resolve(ctx, 1, "done")
	require.NoError(t, err)

	open, err := svc.ListRendered(ctx, "open")
	require.NoError(t, err)
	assert.Equal(t, "id=2 | priority=3 | status=open | query=second", open)

	bogus, err := svc.ListRendered(ctx, "pending")
	require.NoError(t, err)
	assert.Equal(t, "No escalations.", bogus)
}

func TestRespondResolvesAndPublishes(t *testing.T) {
	repo := repository.NewMemoryEscalationRepository()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventEscalationResolved, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewEscalationService(repo, dispatcher)
	ctx := context.Background()

	_, err := repo.Create(ctx, "needs a human", 4)
	require.NoError(t, err)

	ack, err := svc.Respond(ctx, 1, "We have refunded your order.")
	require.NoError(t, err)
	assert.Equal(t, "Escalation id=1 marked resolved. Human response:\n\nWe have refunded your order.", ack)

	rendered, err := svc.ListRendered(ctx, "resolved")
	require.NoError(t, err)
	assert.Contains(t, rendered, "status=resolved")

	require.Len(t, published, 1)
	assert.Equal(t, int64(1), published[0].TicketID)
}

func TestRespondUnknownTicketIsNotFound(t *testing.T) {
	svc := NewEscalationService(repository.NewMemoryEscalationRepository(), nil)

	_, err := svc.Respond(context.Background(), 99, "anything")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

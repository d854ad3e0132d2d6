package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/repository"
)

func TestRespondAnswersEachFAQTopic(t *testing.T) {
	repo := repository.NewMemoryEscalationRepository()
	svc := NewSupportService(repo, nil, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		query        string
		wantFragment string
	}{
		{"What is your REFUND policy?", "request within 14 days"},
		{"where is my tracking info", "https://example.com/track"},
		{"I want to cancel my order", "within 2 hours of purchase"},
		{"does the laptop have a warranty", "1-year limited warranty"},
	}
	for _, tc := range cases {
		response, err := svc.Respond(ctx, tc.query)
		require.NoError(t, err)
		assert.Contains(t, response, "📞 Customer Care: ")
		assert.Contains(t, response, tc.wantFragment)
	}

	tickets, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestRespondRefundWinsTieBreak(t *testing.T) {
	svc := NewSupportService(repository.NewMemoryEscalationRepository(), nil, zap.NewNop())

	response, err := svc.Respond(context.Background(), "refund for an order I want to cancel, tracking says delivered")
	require.NoError(t, err)
	assert.Contains(t, response, "Our refund policy")
	assert.NotContains(t, response, "cancelled")
}

func TestRespondUnmatchedQueryEscalates(t *testing.T) {
	repo := repository.NewMemoryEscalationRepository()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventEscalationCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewSupportService(repo, dispatcher, zap.NewNop())

	response, err := svc.Respond(context.Background(), "my smart fridge is haunted")
	require.NoError(t, err)
	assert.Equal(t, "📞 Customer Care: I couldn't confidently answer — I've created an escalation (id=1) for a human operator to handle.", response)

	tickets, err := repo.List(context.Background(), "open")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, 3, tickets[0].Priority)
	assert.Equal(t, "my smart fridge is haunted", tickets[0].Query)

	require.Len(t, published, 1)
	assert.Equal(t, int64(1), published[0].TicketID)
}

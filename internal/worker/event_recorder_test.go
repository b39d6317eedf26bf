package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
)

func TestEventRecorderCountsByLabel(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	metrics := observability.NewMetrics()
	StartEventRecorder(dispatcher, metrics, zap.NewNop())

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{
		Type:    events.EventTicketActionPerformed,
		Payload: events.TicketActionPayload{Action: domain.ActionResolve, NewStatus: domain.TicketStatusResolved},
	})
	_ = dispatcher.Publish(ctx, events.Event{
		Type:    events.EventManagerAssigned,
		Payload: events.ManagerAssignedPayload{UserID: "a", ManagerID: "b"},
	})

	if got := metrics.EventCount(string(events.EventTicketActionPerformed), string(domain.TicketStatusResolved)); got != 1 {
		t.Fatalf("expected one resolved action, got %d", got)
	}
	if got := metrics.EventCount(string(events.EventManagerAssigned), ""); got != 1 {
		t.Fatalf("expected one manager assignment, got %d", got)
	}
}

package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
)

// StartEventRecorder subscribes to every domain event and mirrors it into the
// metrics counters and the structured log.
func StartEventRecorder(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	recorder := &eventRecorder{metrics: metrics, logger: logger.Named("events")}
	for _, eventType := range events.AllEventTypes() {
		dispatcher.Subscribe(eventType, recorder.handle)
	}
}

type eventRecorder struct {
	metrics *observability.Metrics
	logger  *zap.Logger
}

func (r *eventRecorder) handle(_ context.Context, event events.Event) error {
	label := ""
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("actor_id", event.ActorID),
	}
	if event.TicketID != "" {
		fields = append(fields, zap.String("ticket_id", event.TicketID))
	}

	switch p := event.Payload.(type) {
	case events.TicketCreatedPayload:
		label = string(p.Status)
		fields = append(fields, zap.String("status", string(p.Status)), zap.Bool("requires_approval", p.RequiresApproval))
	case events.TicketActionPayload:
		label = string(p.NewStatus)
		fields = append(fields,
			zap.String("action", string(p.Action)),
			zap.String("from", string(p.OldStatus)),
			zap.String("to", string(p.NewStatus)),
		)
	case events.FeedbackGivenPayload:
		label = string(p.TargetRole)
		fields = append(fields, zap.String("given_to", p.GivenToID), zap.Int("rating", p.Rating))
	case events.ManagerAssignedPayload:
		fields = append(fields, zap.String("user_id", p.UserID), zap.String("manager_id", p.ManagerID))
	}

	r.metrics.RecordEvent(string(event.Type), label)
	r.logger.Info("domain event", fields...)
	return nil
}

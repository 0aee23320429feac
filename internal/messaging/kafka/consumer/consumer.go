package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sohada-a2it/A2itHRMServer/internal/audit"
	"github.com/sohada-a2it/A2itHRMServer/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle turns leave.approved events into audit trail entries.
// Redelivered events are absorbed by the (action, entity) unique index.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveApprovedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = auditService.Record(ctx, audit.RecordEntry{
			ActorID:    event.ApprovedBy,
			Action:     event.EventType,
			EntityType: "leave",
			EntityID:   event.LeaveID,
			Metadata:   json.RawMessage(msg.Value),
		})
		if err != nil {
			if errors.Is(err, audit.ErrDuplicateEntry) {
				log.Warn("audit entry already recorded for event, skipping",
					zap.String("leave_id", event.LeaveID),
					zap.String("event_type", event.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("record audit entry from event failed",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("audit entry recorded from leave lifecycle event",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
		)
	}
}

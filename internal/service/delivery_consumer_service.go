// FILE: internal/service/delivery_consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"agrocalc-be/internal/dto"
	"agrocalc-be/internal/pkg/apperr"
	"agrocalc-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IDeliveryConsumerService interface {
	Consume(ctx context.Context) error
}

// deliveryConsumerService drains the delivery topic and mails the calendar
// artifact for each queued user.
type deliveryConsumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	scheduleService IScheduleService
	logger          logger.ILogger
}

func NewDeliveryConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	scheduleService IScheduleService,
	log logger.ILogger,
) IDeliveryConsumerService {
	return &deliveryConsumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		scheduleService: scheduleService,
		logger:          log,
	}
}

func (cs *deliveryConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *deliveryConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ScheduleDeliveryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("delivery", "malformed delivery message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid on retry
		return
	}

	err := cs.scheduleService.DeliverCalendar(ctx, payload.UserId)
	if err == nil {
		cs.logger.Info("delivery", "schedule delivered", map[string]interface{}{
			"user_id": payload.UserId.String(),
		})
		msg.Ack()
		return
	}

	if apperr.Is(err, apperr.KindCollaborator) {
		// SMTP or database hiccup: retriable.
		cs.logger.Warn("delivery", "delivery failed, will retry", map[string]interface{}{
			"user_id": payload.UserId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	// Validation / not-found errors will fail the same way every retry.
	cs.logger.Error("delivery", "delivery dropped", map[string]interface{}{
		"user_id": payload.UserId.String(),
		"error":   err.Error(),
	})
	msg.Ack()
}

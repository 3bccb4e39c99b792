// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"anantara-be/internal/dto"
	"anantara-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var job dto.EmailJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		log.Printf("[ERROR] Failed to unmarshal email job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	var err error
	switch job.Type {
	case dto.EmailJobWelcome:
		err = cs.emailService.SendWelcome(job.To, job.Name)
	case dto.EmailJobPasswordReset:
		err = cs.emailService.SendResetToken(job.To, job.Token)
	default:
		log.Printf("[WARN] Unknown email job type %q", job.Type)
		msg.Ack()
		return
	}

	if err != nil {
		log.Printf("[ERROR] Failed to deliver %s email to %s: %v", job.Type, job.To, err)
		msg.Nack() // Retry
		return
	}

	msg.Ack()
}

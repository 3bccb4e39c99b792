// FILE: internal/service/publisher_service.go
package service

import (
	"context"
	"encoding/json"

	"anantara-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EmailJobsTopic carries transactional-email jobs over the in-process bus.
const EmailJobsTopic = "email_jobs"

type IPublisherService interface {
	PublishEmailJob(ctx context.Context, job dto.EmailJob) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
	}
}

func (ps *publisherService) PublishEmailJob(ctx context.Context, job dto.EmailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(EmailJobsTopic, msg)
}

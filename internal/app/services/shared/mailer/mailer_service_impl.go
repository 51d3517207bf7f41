package mailer

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/drivers/mailer"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/dto/requests"
	"cybersentry-service/internal/pkg/exceptions"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

type mailerService struct {
	Channel               *amqp091.Channel
	Client                *mailer.SMTPClient
	Queue                 string
	codeValidityInMinutes int
	downloadExpiryInHours int
}

// NewMailerService declares the mailer queue and returns a service that
// publishes mail payloads onto it. Delivery happens in DeliveryWorker.
func NewMailerService(client *mailer.SMTPClient, rabbitMQConnection *amqp091.Connection, queue string, codeValidityInMinutes, downloadExpiryInHours int) (contracts.MailerService, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &mailerService{
		Channel:               channel,
		Client:                client,
		Queue:                 queue,
		codeValidityInMinutes: codeValidityInMinutes,
		downloadExpiryInHours: downloadExpiryInHours,
	}, nil
}

func (s *mailerService) SendOperationCode(ctx context.Context, to, code string) error {
	payload := &requests.EmailPayload{
		Subject: constvars.EmailOperationCodeSubjectMessage,
		From:    s.Client.EmailSender,
		To:      []string{to},
		Body:    fmt.Sprintf(constvars.EmailBodyOperationCode, code, s.codeValidityInMinutes),
	}
	return s.publish(ctx, payload)
}

func (s *mailerService) SendScanResult(ctx context.Context, to, downloadURL string) error {
	payload := &requests.EmailPayload{
		Subject: constvars.EmailScanResultSubjectMessage,
		From:    s.Client.EmailSender,
		To:      []string{to},
		Body:    fmt.Sprintf(constvars.EmailBodyScanResult, downloadURL, s.downloadExpiryInHours),
	}
	return s.publish(ctx, payload)
}

func (s *mailerService) publish(ctx context.Context, payload *requests.EmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrMailerPublish(err, s.Queue)
	}

	return nil
}

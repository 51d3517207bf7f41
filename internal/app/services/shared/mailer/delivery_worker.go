package mailer

import (
	"context"
	"cybersentry-service/internal/app/drivers/mailer"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/dto/requests"
	"fmt"
	"net/smtp"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DeliveryWorker drains the mailer queue and delivers messages over SMTP. A
// failed delivery is requeued once to ride out a transient SMTP blip; a
// redelivered failure is dropped, since the operation email is only useful
// inside the validity window and endless retries would just spam.
type DeliveryWorker struct {
	log      *zap.Logger
	channel  *amqp091.Channel
	client   *mailer.SMTPClient
	queue    string
	sendMail func(payload *requests.EmailPayload) error
}

func NewDeliveryWorker(log *zap.Logger, rabbitMQConnection *amqp091.Connection, client *mailer.SMTPClient, queue string) (*DeliveryWorker, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	worker := &DeliveryWorker{
		log:     log,
		channel: channel,
		client:  client,
		queue:   queue,
	}
	worker.sendMail = worker.smtpSend
	return worker, nil
}

func (w *DeliveryWorker) Start(ctx context.Context) error {
	deliveries, err := w.channel.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				w.handleDelivery(delivery)
			}
		}
	}()

	return nil
}

func (w *DeliveryWorker) handleDelivery(delivery amqp091.Delivery) {
	var payload requests.EmailPayload
	if err := json.Unmarshal(delivery.Body, &payload); err != nil {
		w.log.Error("mailer.DeliveryWorker cannot unmarshal payload",
			zap.String(constvars.LoggingQueueKey, w.queue),
			zap.Error(err),
		)
		delivery.Nack(false, false)
		return
	}

	if err := w.sendMail(&payload); err != nil {
		// First failure goes back on the queue once; a redelivered failure
		// is dropped.
		requeue := !delivery.Redelivered
		w.log.Error("mailer.DeliveryWorker failed to deliver email",
			zap.String(constvars.LoggingQueueKey, w.queue),
			zap.Strings("to", payload.To),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		delivery.Nack(false, requeue)
		return
	}

	delivery.Ack(false)
}

func (w *DeliveryWorker) smtpSend(payload *requests.EmailPayload) error {
	format := constvars.EmailSendBasicEmailSubjectFormat
	if payload.HTML {
		format = constvars.EmailSendHTMLEmailSubjectFormat
	}

	addr := fmt.Sprintf("%s:%d", w.client.Host, w.client.Port)
	for _, to := range payload.To {
		msg := []byte(fmt.Sprintf(format, to, payload.Subject, payload.Body))
		if err := smtp.SendMail(addr, w.client.Auth, w.client.EmailSender, []string{to}, msg); err != nil {
			return err
		}
	}
	return nil
}

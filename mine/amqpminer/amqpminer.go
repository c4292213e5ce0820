// Package amqpminer calls an external discovery service over RabbitMQ. The
// participant's event log goes out as JSON, the mined model comes back as
// PNML on an exclusive reply queue.
package amqpminer

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/eventlog"
	"github.com/jt05610/magnet/mine"
	"github.com/jt05610/magnet/pnml"
)

var _ mine.Miner = (*Miner)(nil)

func failOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}

// Miner is safe for concurrent Mine calls: every call opens its own
// channel and declares its own exclusive reply queue, since the
// orchestrator mines all participants at once and amqp channels must not
// be shared between goroutines.
type Miner struct {
	conn   *amqp.Connection
	queue  string
	codec  *pnml.Service
	logger *zap.Logger
}

func New(conn *amqp.Connection, queue string, logger *zap.Logger) *Miner {
	ch, err := conn.Channel()
	failOnError(err, "Failed to open a channel")
	defer func() {
		_ = ch.Close()
	}()
	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	failOnError(err, "Failed to declare the miner queue")
	return &Miner{
		conn:   conn,
		queue:  queue,
		codec:  &pnml.Service{},
		logger: logger,
	}
}

// NewRequest builds the RPC publishing for one participant's sub-log.
func NewRequest(events eventlog.Log, replyTo, correlationID string) (amqp.Publishing, error) {
	body, err := json.Marshal(events)
	if err != nil {
		var zero amqp.Publishing
		return zero, err
	}
	return amqp.Publishing{
		Body:          body,
		ContentType:   "application/json",
		CorrelationId: correlationID,
		ReplyTo:       replyTo,
		Headers: amqp.Table{
			"x-event-count": int32(len(events)),
		},
	}, nil
}

func (m *Miner) Mine(ctx context.Context, events eventlog.Log) (*magnet.Net, error) {
	ch, err := m.conn.Channel()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = ch.Close()
	}()

	reply, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	msgs, err := ch.Consume(
		reply.Name, // queue
		"",         // consumer
		true,       // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return nil, err
	}

	corr := uuid.NewString()
	req, err := NewRequest(events, reply.Name, corr)
	if err != nil {
		return nil, err
	}
	err = ch.PublishWithContext(
		ctx,
		"",      // exchange
		m.queue, // routing key
		false,   // mandatory
		false,   // immediate
		req,
	)
	if err != nil {
		return nil, err
	}
	m.logger.Info("requested local model",
		zap.String("queue", m.queue),
		zap.Int("events", len(events)))

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case d := <-msgs:
			if d.CorrelationId != corr {
				continue
			}
			net, err := m.codec.Load(ctx, bytes.NewReader(d.Body))
			if err != nil {
				return nil, err
			}
			m.logger.Info("received local model",
				zap.String("net", net.ID),
				zap.Int("places", len(net.Places)),
				zap.Int("transitions", len(net.Transitions)))
			return net, nil
		}
	}
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "warehouse.jobs"
	queueName    = "warehouse.fulfillment"
	routingKey   = "fulfillment"
)

// Consumer reads fulfillment jobs off RabbitMQ and dispatches them to the
// command handlers. Business rejections (validation, conflicts, unknown ids)
// are dropped as permanently failed; everything else is requeued for retry.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel

	allocateOrders       commands.AllocateOrdersCommandHandler
	createPickingTask    commands.CreatePickingTaskCommandHandler
	recordItemCompletion commands.RecordItemCompletionCommandHandler
	recordShortPick      commands.RecordShortPickCommandHandler
}

// NewConsumer declares the durable exchange, queue, and binding, and wires
// the command handlers the jobs dispatch to.
func NewConsumer(
	conn *amqp.Connection,
	allocateOrders commands.AllocateOrdersCommandHandler,
	createPickingTask commands.CreatePickingTaskCommandHandler,
	recordItemCompletion commands.RecordItemCompletionCommandHandler,
	recordShortPick commands.RecordShortPickCommandHandler,
) (*Consumer, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = channel.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	queue, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err = channel.QueueBind(queue.Name, routingKey, exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &Consumer{
		conn:                 conn,
		channel:              channel,
		allocateOrders:       allocateOrders,
		createPickingTask:    createPickingTask,
		recordItemCompletion: recordItemCompletion,
		recordShortPick:      recordShortPick,
	}, nil
}

// Start consumes jobs until the context is cancelled. One message is in
// flight at a time per consumer; scale with more consumer instances.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := c.channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
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
				c.dispatch(ctx, delivery)
			}
		}
	}()

	return nil
}

// Close releases the channel. The connection belongs to the caller.
func (c *Consumer) Close() error {
	return c.channel.Close()
}

func (c *Consumer) dispatch(ctx context.Context, delivery amqp.Delivery) {
	err := c.handle(ctx, delivery.Body)
	switch {
	case err == nil:
		if ackErr := delivery.Ack(false); ackErr != nil {
			log.Errorf("ack job: %v", ackErr)
		}
	case isPermanent(err):
		log.Errorf("dropping failed job: %v", err)
		if nackErr := delivery.Nack(false, false); nackErr != nil {
			log.Errorf("nack job: %v", nackErr)
		}
	default:
		log.Warnf("requeueing job: %v", err)
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			log.Errorf("nack job: %v", nackErr)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var env jobEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("job envelope", err)
	}

	switch env.Type {
	case JobTypeAllocateOrders:
		return c.handleAllocateOrders(ctx, env.Payload)
	case JobTypeCreatePickingTask:
		return c.handleCreatePickingTask(ctx, env.Payload)
	case JobTypeRecordItemCompletion:
		return c.handleRecordItemCompletion(ctx, env.Payload)
	case JobTypeRecordShortPick:
		return c.handleRecordShortPick(ctx, env.Payload)
	default:
		return errs.NewValueIsInvalidErrorWithCause("job type",
			fmt.Errorf("%q is not a known job type", env.Type))
	}
}

func (c *Consumer) handleAllocateOrders(ctx context.Context, payload json.RawMessage) error {
	var job AllocateOrdersJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("allocate orders job", err)
	}

	orderIDs, err := parseUUIDs(job.OrderIDs, "orderIds")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAllocateOrdersCommand(orderIDs, job.AllowPartial)
	if err != nil {
		return err
	}

	result, err := c.allocateOrders.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	log.Infof("allocation pass finished: %d orders, %d failed", len(orderIDs), len(result.Errors))
	return nil
}

func (c *Consumer) handleCreatePickingTask(ctx context.Context, payload json.RawMessage) error {
	var job CreatePickingTaskJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("create picking task job", err)
	}

	orderIDs, err := parseUUIDs(job.OrderIDs, "orderIds")
	if err != nil {
		return err
	}
	priority, err := parsePriority(job.Priority)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreatePickingTaskCommand(job.IdempotencyKey, orderIDs, priority)
	if err != nil {
		return err
	}

	t, err := c.createPickingTask.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	log.Infof("picking task %s ready with %d items", t.ID(), t.TotalItems())
	return nil
}

func (c *Consumer) handleRecordItemCompletion(ctx context.Context, payload json.RawMessage) error {
	var job RecordItemCompletionJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("record item completion job", err)
	}

	taskItemID, err := kernel.UUIDFromString(job.TaskItemID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("taskItemId", err)
	}
	userID, err := kernel.UUIDFromString(job.UserID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userId", err)
	}

	cmd, err := commands.NewRecordItemCompletionCommand(taskItemID, userID, job.ActualQty)
	if err != nil {
		return err
	}

	_, err = c.recordItemCompletion.Handle(ctx, cmd)
	return err
}

func (c *Consumer) handleRecordShortPick(ctx context.Context, payload json.RawMessage) error {
	var job RecordShortPickJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("record short pick job", err)
	}

	taskItemID, err := kernel.UUIDFromString(job.TaskItemID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("taskItemId", err)
	}
	userID, err := kernel.UUIDFromString(job.UserID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userId", err)
	}

	cmd, err := commands.NewRecordShortPickCommand(taskItemID, userID)
	if err != nil {
		return err
	}

	return c.recordShortPick.Handle(ctx, cmd)
}

// isPermanent reports whether retrying the job can never succeed. Malformed
// payloads and business rejections stay failed; infrastructure errors are
// worth another delivery.
func isPermanent(err error) bool {
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrInvalidTransition)
}

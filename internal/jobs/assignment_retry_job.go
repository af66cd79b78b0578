package jobs

import (
	"context"
	"log/slog"

	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/commands"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/events"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AssignmentRetryJob periodically gives stranded pending orders another
// chance at assignment. An order ends up stranded when selection failed with
// capacity_mismatch: the fleet had drivers and vehicles, just none big
// enough. The job republishes order_created for each pending order so the
// fleet service re-runs selection against the current fleet.
type AssignmentRetryJob struct {
	uowFactory commands.OrderUoWFactory
	publisher  ports.EventPublisher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAssignmentRetryJob creates a job that retries assignment for pending
// orders every 30 seconds.
func NewAssignmentRetryJob(
	uowFactory commands.OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "assignment_retry_job"),
	}
}

// Start begins the retry job on a 30 second schedule.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Assignment retry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the retry job.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}

func (j *AssignmentRetryJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	pending, err := uow.OrderRepository().GetAllInPendingStatus(ctx)
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, target := range pending {
		event := events.OrderCreatedEvent{
			Meta:            events.NewMeta(events.SourceOrders),
			OrderID:         target.ID().String(),
			CustomerName:    target.CustomerName(),
			CustomerEmail:   target.CustomerEmail(),
			PickupAddress:   target.PickupAddress(),
			DeliveryAddress: target.DeliveryAddress(),
			CargoType:       target.CargoType(),
			CargoWeight:     target.CargoWeight(),
			CargoVolume:     target.CargoVolume(),
			Notes:           target.Notes(),
		}

		if err = j.publisher.Publish(ctx, events.OrderCreated, event); err != nil {
			j.logger.WarnContext(ctx, "Failed to republish order for retry",
				"orderId", target.ID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Republished pending order for assignment retry",
			"orderId", target.ID().String())
	}

	return nil
}

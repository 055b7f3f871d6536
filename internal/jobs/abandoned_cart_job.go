package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AbandonedCartJob periodically cancels cart-stage orders that were created
// longer ago than the configured time-to-live. Runs every minute.
type AbandonedCartJob struct {
	handler commands.ExpireAbandonedCartsCommandHandler
	cartTTL time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAbandonedCartJob creates a job that expires carts older than cartTTL.
func NewAbandonedCartJob(
	handler commands.ExpireAbandonedCartsCommandHandler,
	cartTTL time.Duration,
	logger *slog.Logger,
) *AbandonedCartJob {
	return &AbandonedCartJob{
		handler: handler,
		cartTTL: cartTTL,
		cron:    cron.New(),
		logger:  logger.With("component", "abandoned_cart_job"),
	}
}

// Start begins the abandoned cart job to run every minute.
func (j *AbandonedCartJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireAbandonedCartsCommand(time.Now().UTC().Add(-j.cartTTL))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Abandoned cart job misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Abandoned cart job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Abandoned cart job started (running every minute)",
		"cart_ttl", j.cartTTL.String())
	return nil
}

// Stop stops the abandoned cart job.
func (j *AbandonedCartJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Abandoned cart job stopped")
}

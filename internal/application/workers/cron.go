package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
	"filestore-api/internal/domain/command"
)

// Cron fires one command on a fixed interval. Errors are logged and
// the next tick tries again.
type Cron struct {
	log      *zap.Logger
	bus      ports.Bus
	name     string
	interval time.Duration
	make     func() command.Command
}

func NewCron(logger *zap.Logger, bus ports.Bus, name string, interval time.Duration, make func() command.Command) *Cron {
	return &Cron{
		log:      logger,
		bus:      bus,
		name:     name,
		interval: interval,
		make:     make,
	}
}

func (c *Cron) Run(ctx context.Context) error {
	c.log.Info("starting cron", zap.String("cron", c.name), zap.Duration("interval", c.interval))
	defer c.log.Info("cron gracefully stopped", zap.String("cron", c.name))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := c.bus.Handle(ctx, c.make()); err != nil {
				c.log.Error("cron run error", zap.String("cron", c.name), zap.Error(err))
			}
		case <-ctx.Done():
			return nil
		}
	}
}

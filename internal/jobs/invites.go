// Package jobs holds the scheduled background work of the platform.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/service"
)

// StartInviteExpiry schedules the hourly sweep that flips overdue pending
// invites to expired. Returns the cron so the caller can stop it on shutdown.
func StartInviteExpiry(ctx context.Context, invites *service.InviteService, log zerolog.Logger) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		invites.ExpireStale(ctx)
	})
	if err != nil {
		log.Error().Err(err).Msg("schedule invite expiry sweep failed")
		return c
	}

	c.Start()
	log.Info().Msg("invite expiry sweep scheduled hourly")
	return c
}

package healthcheck

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultInterval = time.Minute

var logger zerolog.Logger = log.Logger

// terminate is replaced in tests.
var terminate = terminateService

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

// Check reports whether a dependency the service cannot run without is
// still reachable.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// StartHealthCheckCron runs every check once per interval and stops the
// process when one fails. The queues reconnect only on restart and a store
// that cannot be read leaves the engine unable to accept commands.
func StartHealthCheckCron(ctx context.Context, interval time.Duration, checks ...Check) error {
	c := cron.New()
	logger.Info().Int("checks", len(checks)).Msg("Initiated Health Check Cron")

	if interval <= 0 {
		interval = defaultInterval
	}

	cronSpec := fmt.Sprintf("@every %s", interval)
	_, err := c.AddFunc(cronSpec, func() {
		runChecks(ctx, checks)
	})
	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

func runChecks(ctx context.Context, checks []Check) bool {
	for _, check := range checks {
		if err := check.Run(ctx); err != nil {
			logger.Error().Err(err).Str("check", check.Name).Msg("health check failed")
			terminate()
			return false
		}
	}
	return true
}

func terminateService() {
	logger.Fatal().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}

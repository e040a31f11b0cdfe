package healthcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRunChecks(t *testing.T) {
	SetLogger(zerolog.Nop())
	terminated := 0
	terminate = func() { terminated++ }
	t.Cleanup(func() { terminate = terminateService })

	var ran []string
	ok := func(name string) Check {
		return Check{Name: name, Run: func(context.Context) error { ran = append(ran, name); return nil }}
	}
	failing := Check{Name: "queues", Run: func(context.Context) error { ran = append(ran, "queues"); return errors.New("closed") }}

	assert.True(t, runChecks(context.Background(), []Check{ok("store"), ok("db")}))
	assert.Zero(t, terminated)

	ran = nil
	assert.False(t, runChecks(context.Background(), []Check{ok("store"), failing, ok("db")}))
	assert.Equal(t, 1, terminated)
	assert.Equal(t, []string{"store", "queues"}, ran)
}

func TestStartHealthCheckCron_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, StartHealthCheckCron(ctx, 0))
}

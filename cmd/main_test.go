package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_DatabaseUnreachable(t *testing.T) {
	t.Setenv("ENV", "development")
	// Port 1 refuses connections, so startup fails fast at the db dial.
	t.Setenv("DATABASE_URL", "postgres://127.0.0.1:1/teamlogger?sslmode=disable")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := Run(ctx)
	assert.Error(t, err)
}

func TestRun_InvalidDatabaseURL(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DATABASE_URL", "not-a-connection-string")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := Run(ctx)
	assert.Error(t, err)
}

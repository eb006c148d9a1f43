// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/rookery/internal/platform/ctxutil"
	"github.com/taibuivan/rookery/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Person verifies that PersonClaims can be stored in context.
*/
func TestContext_Person(t *testing.T) {
	ctx := context.Background()
	claims := &sec.PersonClaims{
		PersonID: "person-123",
		Handle:   "tux",
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetPerson(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithPerson(ctx, claims)
	retrieved := ctxutil.GetPerson(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "person-123", retrieved.PersonID)
	assert.Equal(t, "tux", retrieved.Handle)
}

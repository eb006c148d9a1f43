// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rookery/internal/platform/lock"
)

/*
TestMemoryLocker_Exclusive checks a held key blocks a second acquirer until
release.
*/
func TestMemoryLocker_Exclusive(t *testing.T) {
	locker := lock.NewMemoryLocker()

	release, err := locker.Acquire(context.Background(), "person-1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		secondRelease, err := locker.Acquire(context.Background(), "person-1")
		assert.NoError(t, err)
		secondRelease()
		close(acquired)
	}()

	// The competing goroutine must not get the lock while it is held.
	select {
	case <-acquired:
		t.Fatal("lock acquired while held")
	case <-time.After(50 * time.Millisecond):
	}

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock never handed over after release")
	}
}

/*
TestMemoryLocker_IndependentKeys checks unrelated persons never contend.
*/
func TestMemoryLocker_IndependentKeys(t *testing.T) {
	locker := lock.NewMemoryLocker()

	releaseFirst, err := locker.Acquire(context.Background(), "person-1")
	require.NoError(t, err)
	defer releaseFirst()

	releaseSecond, err := locker.Acquire(context.Background(), "person-2")
	require.NoError(t, err)
	releaseSecond()
}

/*
TestMemoryLocker_ContextCancellation checks a waiting acquirer gives up with
ErrContended when its context is cancelled.
*/
func TestMemoryLocker_ContextCancellation(t *testing.T) {
	locker := lock.NewMemoryLocker()

	release, err := locker.Acquire(context.Background(), "person-1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Acquire(ctx, "person-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, lock.ErrContended)
}

/*
TestMemoryLocker_ReleaseIdempotent checks double release is harmless.
*/
func TestMemoryLocker_ReleaseIdempotent(t *testing.T) {
	locker := lock.NewMemoryLocker()

	release, err := locker.Acquire(context.Background(), "person-1")
	require.NoError(t, err)

	release()
	release()

	again, err := locker.Acquire(context.Background(), "person-1")
	require.NoError(t, err)
	again()
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLocksBlockSameUserOnly(t *testing.T) {
	locks := newUserLocks()

	releaseFirst, err := locks.acquire(context.Background(), 1)
	require.NoError(t, err)

	releaseOther, err := locks.acquire(context.Background(), 2)
	require.NoError(t, err)
	releaseOther()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locks.acquire(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	releaseFirst()
	releaseFirst()

	releaseAgain, err := locks.acquire(context.Background(), 1)
	require.NoError(t, err)
	releaseAgain()

	assert.Zero(t, locks.size())
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleanupStorage struct {
	before  time.Time
	deleted int64
	err     error
	calls   int
}

func (f *fakeCleanupStorage) DeleteCompletedOrdersBefore(_ context.Context, before time.Time) (int64, error) {
	f.calls++
	f.before = before
	return f.deleted, f.err
}

func TestCleanupServiceCleanup(t *testing.T) {
	storage := &fakeCleanupStorage{deleted: 3}
	service := NewCleanupService(storage, &inlineQueue{})
	service.now = func() time.Time { return orderTestNow }

	deleted, err := service.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, time.Date(2025, 12, 20, 10, 7, 3, 0, time.UTC), storage.before)

	storage.err = errors.New("db down")
	_, err = service.Cleanup(context.Background())
	assert.Error(t, err)
}

func TestCleanupServiceStartReschedules(t *testing.T) {
	storage := &fakeCleanupStorage{err: errors.New("db down")}
	queue := &inlineQueue{}
	service := NewCleanupService(storage, queue)

	require.NoError(t, service.Start(time.Hour))

	assert.Equal(t, 1, storage.calls)
	assert.Equal(t, []time.Duration{time.Hour}, queue.scheduled)
}

func TestCleanupServiceStartOnClosedQueue(t *testing.T) {
	service := NewCleanupService(&fakeCleanupStorage{}, &inlineQueue{err: ErrJobQueueClosed})
	assert.ErrorIs(t, service.Start(time.Hour), ErrJobQueueClosed)
}

package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2025, 12, 27, 10, 0, 0, 0, time.UTC)

	msg, err := newPublishing(map[string]string{"kind": "order_placed"}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "order_placed", decoded["kind"])
}

func TestNewPublishingRejectsUnserializableEvent(t *testing.T) {
	_, err := newPublishing(make(chan int), time.Now())
	assert.Error(t, err)
}

type fakeChannel struct {
	closed    bool
	published []amqp.Publishing
}

func (c *fakeChannel) ExchangeDeclare(string, string, bool, bool, bool, bool, amqp.Table) error {
	return nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConnection struct {
	closed   bool
	channels []*fakeChannel
}

func (c *fakeConnection) Channel() (channel, error) {
	ch := &fakeChannel{}
	c.channels = append(c.channels, ch)
	return ch, nil
}

func (c *fakeConnection) IsClosed() bool { return c.closed }

func (c *fakeConnection) Close() error {
	c.closed = true
	return nil
}

type fakeDialer struct {
	conns []*fakeConnection
	err   error
}

func (d *fakeDialer) dial(string) (connection, error) {
	if d.err != nil {
		return nil, d.err
	}
	conn := &fakeConnection{}
	d.conns = append(d.conns, conn)
	return conn, nil
}

func TestPublisherReopensOnlyChannelOnLiveConnection(t *testing.T) {
	dialer := &fakeDialer{}
	publisher, err := newPublisher("amqp://test", NotificationsExchange, dialer.dial)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, map[string]string{"n": "1"}))
	require.Len(t, dialer.conns, 1)

	conn := dialer.conns[0]
	conn.channels[0].closed = true

	require.NoError(t, publisher.Publish(ctx, map[string]string{"n": "2"}))
	assert.Len(t, dialer.conns, 1)
	assert.False(t, conn.closed)
	require.Len(t, conn.channels, 2)
	assert.Len(t, conn.channels[1].published, 1)
}

func TestPublisherRedialsClosedConnection(t *testing.T) {
	dialer := &fakeDialer{}
	publisher, err := newPublisher("amqp://test", NotificationsExchange, dialer.dial)
	require.NoError(t, err)

	dialer.conns[0].closed = true

	require.NoError(t, publisher.Publish(context.Background(), map[string]string{"n": "1"}))
	require.Len(t, dialer.conns, 2)
	assert.Len(t, dialer.conns[1].channels[0].published, 1)
}

func TestPublisherAfterClose(t *testing.T) {
	dialer := &fakeDialer{}
	publisher, err := newPublisher("amqp://test", NotificationsExchange, dialer.dial)
	require.NoError(t, err)

	require.NoError(t, publisher.Close())
	assert.True(t, dialer.conns[0].closed)

	err = publisher.Publish(context.Background(), map[string]string{"n": "1"})
	assert.ErrorIs(t, err, ErrPublisherClosed)
	assert.Len(t, dialer.conns, 1)
}

func TestNewPublisherDialError(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}

	_, err := newPublisher("amqp://test", NotificationsExchange, dialer.dial)
	assert.ErrorContains(t, err, "connection refused")
}

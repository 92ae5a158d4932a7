package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(ch, "badgr.audit")

	e := Event{
		Type:       EventFailedLogin,
		Account:    "user@example.com",
		Address:    "127.0.0.1",
		Endpoint:   "/o/token",
		Failures:   1,
		OccurredAt: time.Now(),
	}
	require.NoError(t, p.Publish(context.Background(), e))

	require.Equal(t, "badgr.audit", ch.exchange)
	require.Equal(t, "auth.FailedLoginAttempt", ch.key)
	require.Len(t, ch.msgs, 1)
	require.Equal(t, "application/json", ch.msgs[0].ContentType)
	require.NotEmpty(t, ch.msgs[0].MessageId)

	var got map[string]any
	require.NoError(t, json.Unmarshal(ch.msgs[0].Body, &got))
	require.Equal(t, "user@example.com", got["username"])
	require.Equal(t, "127.0.0.1", got["client_ip"])

	require.NoError(t, p.Close())
	require.True(t, ch.closed)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := slogx.WithContext(context.Background(), logger)

	require.NoError(t, LogPublisher{}.Publish(ctx, Event{Type: EventLockedOut, Account: "a@b.c"}))
	require.Contains(t, buf.String(), `"event":"LoginLockedOut"`)
	require.Contains(t, buf.String(), `"username":"a@b.c"`)
}

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &fakeChannel{}
	bad := &fakeChannel{err: boom}

	p := Multi(newAMQPPublisher(ok, "x"), newAMQPPublisher(bad, "x"))
	err := p.Publish(context.Background(), Event{Type: EventFailedLogin})
	require.ErrorIs(t, err, boom)
	require.Len(t, ok.msgs, 1)
	require.NoError(t, p.Close())
}

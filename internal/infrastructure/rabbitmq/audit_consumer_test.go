package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
	"github.com/avenstek/avenstek-api/internal/infrastructure/memory"
	"github.com/avenstek/avenstek-api/pkg/helpers"
)

// fakeAck records how a delivery was settled.
type fakeAck struct {
	mu      sync.Mutex
	acked   int
	nacked  int
	requeue bool
}

func (a *fakeAck) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked++
	return nil
}

func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *fakeAck) Reject(_ uint64, requeue bool) error {
	return a.Nack(0, false, requeue)
}

type failingStore struct{}

func (failingStore) Record(context.Context, *entity.AuthEvent) error {
	return errors.New("db down")
}

func delivery(t *testing.T, ack *fakeAck, body any) amqp.Delivery {
	t.Helper()
	msg, err := helpers.JSONPublishing(body, "m-1")
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: msg.Body, MessageId: msg.MessageId}
}

func TestAuditConsumer_StoresAndAcks(t *testing.T) {
	store := memory.NewAuthEventRecorder()
	c := NewAuditConsumer(store, helpers.NewDiscardLogger())
	ack := &fakeAck{}

	c.Handle(context.Background(), delivery(t, ack, entity.AuthEvent{
		ID:     "ev-1",
		Email:  "a@x.com",
		Action: entity.ActionLoginFailed,
	}))

	assert.Equal(t, 1, ack.acked)
	require.Len(t, store.Events(), 1)
	assert.Equal(t, "ev-1", store.Events()[0].ID)
}

func TestAuditConsumer_DropsUndecodable(t *testing.T) {
	store := memory.NewAuthEventRecorder()
	c := NewAuditConsumer(store, helpers.NewDiscardLogger())
	ack := &fakeAck{}

	c.Handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("not json")})

	assert.Equal(t, 1, ack.nacked)
	assert.False(t, ack.requeue)
	assert.Empty(t, store.Events())
}

func TestAuditConsumer_RequeuesOnStoreFailure(t *testing.T) {
	c := NewAuditConsumer(failingStore{}, helpers.NewDiscardLogger())
	ack := &fakeAck{}

	c.Handle(context.Background(), delivery(t, ack, entity.AuthEvent{ID: "ev-2", Action: entity.ActionLogout}))

	assert.Equal(t, 1, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestAuditConsumer_RunStopsWhenChannelCloses(t *testing.T) {
	store := memory.NewAuthEventRecorder()
	c := NewAuditConsumer(store, helpers.NewDiscardLogger())
	ack := &fakeAck{}

	msgs := make(chan amqp.Delivery, 2)
	msgs <- delivery(t, ack, entity.AuthEvent{ID: "a", Action: entity.ActionRegister})
	msgs <- delivery(t, ack, entity.AuthEvent{ID: "b", Action: entity.ActionLogout})
	close(msgs)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background(), msgs)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the channel closed")
	}
	assert.Equal(t, 2, ack.acked)
	assert.Len(t, store.Events(), 2)
}

func TestAuditConsumer_RunStopsOnCancel(t *testing.T) {
	c := NewAuditConsumer(memory.NewAuthEventRecorder(), helpers.NewDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		c.Run(ctx, make(chan amqp.Delivery))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

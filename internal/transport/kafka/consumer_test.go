package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/orders"
	testlog "courier-dispatch/internal/testutil"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return "t" }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func eventMessage(t *testing.T, ev orders.Event) *sarama.ConsumerMessage {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Value: b}
}

func TestNewConsumer_DisabledWithoutBrokers(t *testing.T) {
	t.Parallel()

	c, err := NewConsumer(nil, "g", "t", nil, logx.Nop())
	require.NoError(t, err)
	require.Nil(t, c)

	c, err = NewConsumer([]string{"b:9092"}, "g", "  ", nil, logx.Nop())
	require.NoError(t, err)
	require.Nil(t, c)

	require.NoError(t, c.Run(context.Background()), "nil consumer runs as a no-op")
	require.NoError(t, c.Close())
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, orders.Event) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: []byte("not-json")}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount(), "poison message is marked consumed")
}

func TestConsumeClaim_MissingOrderID_Skips(t *testing.T) {
	t.Parallel()

	calls := 0
	c := &Consumer{
		logger: logx.Nop(),
		handler: func(context.Context, orders.Event) error {
			calls++
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- eventMessage(t, orders.Event{Weight: 1, Region: 1})
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 0, calls)
	require.Equal(t, 1, sess.MarkedCount())
}

func TestConsumeClaim_HandlesEvent(t *testing.T) {
	t.Parallel()

	var got orders.Event
	c := &Consumer{
		logger: logx.Nop(),
		handler: func(_ context.Context, ev orders.Event) error {
			got = ev
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- eventMessage(t, orders.Event{
		OrderID:       10,
		Weight:        2.5,
		Region:        1,
		DeliveryHours: []string{"10:00-12:00"},
	})
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, int64(10), got.OrderID)
	require.Equal(t, 2.5, got.Weight)
	require.Equal(t, 1, sess.MarkedCount())
}

func TestConsumeClaim_HandlerErrorStopsAndUnmarks(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	c := &Consumer{
		logger:  logx.Nop(),
		handler: func(context.Context, orders.Event) error { return boom },
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- eventMessage(t, orders.Event{OrderID: 10, Weight: 1, Region: 1})
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, sess.MarkedCount(), "failed message stays unmarked for redelivery")
}

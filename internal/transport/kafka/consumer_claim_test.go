package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	testlog "cargo-dispatch-service/internal/testutil"
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

func oneMessage(value []byte) chan *sarama.ConsumerMessage {
	ch := make(chan *sarama.ConsumerMessage, 1)
	ch <- &sarama.ConsumerMessage{Value: value}
	close(ch)
	return ch
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, LocationEvent) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, fakeClaim{ch: oneMessage([]byte("not-json"))})
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, hasMsg(rec.Entries(), "kafka bad json"))
}

func TestConsumeClaim_EmptyDriverID_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, LocationEvent) error {
			calls++
			return nil
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(LocationEventDTO{DriverID: "   ", Lat: 12.9, Lng: 77.6})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, fakeClaim{ch: oneMessage(b)})
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, 0, calls)
	require.True(t, hasMsg(rec.Entries(), "kafka empty driver_id"))
}

func TestConsumeClaim_PermanentError_SkipsButMarks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, LocationEvent) error {
			return Permanent(errors.New("unknown driver"))
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(LocationEventDTO{DriverID: "drv-1", Lat: 12.9, Lng: 77.6})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, fakeClaim{ch: oneMessage(b)})
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, hasMsg(rec.Entries(), "kafka handle failed, skipping message"))
}

func TestConsumeClaim_TransientError_Retries(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("db down")
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, LocationEvent) error {
			return sentinel
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(LocationEventDTO{DriverID: "drv-1", Lat: 12.9, Lng: 77.6})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, fakeClaim{ch: oneMessage(b)})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 0, sess.MarkedCount())
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(_ context.Context, ev LocationEvent) error {
			calls++
			require.Equal(t, "drv-1", ev.DriverID)
			require.Equal(t, 12.9, ev.Location.Lat)
			return nil
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(LocationEventDTO{DriverID: "drv-1", Lat: 12.9, Lng: 77.6, RecordedAt: time.Now().UTC()})
	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, fakeClaim{ch: oneMessage(b)})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sess.MarkedCount())
}

func hasMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

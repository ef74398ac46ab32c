package dispatcher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/usecase"
)

func TestProcessCommandsPublishesAndMarks(t *testing.T) {
	outbox := &stubOutbox{commands: []*domain.Command{cmd("cmd-1", "k1")}}
	pub := &stubPublisher{}
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	d := newTestDispatcher(outbox, pub, nil, m)

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands failed: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected one published command, got %d", len(pub.published))
	}
	if len(outbox.marked) != 1 || outbox.marked[0] != "cmd-1" {
		t.Fatalf("expected command to be marked published, got %#v", outbox.marked)
	}
	if got := testutil.ToFloat64(m.CommandsDispatched.WithLabelValues(string(domain.CommandReclassRun))); got != 1 {
		t.Fatalf("dispatched metric = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CommandDispatchBacklog); got != 1 {
		t.Fatalf("backlog metric = %v, want 1", got)
	}
}

func TestProcessCommandsContinuesOnPublishError(t *testing.T) {
	outbox := &stubOutbox{commands: []*domain.Command{cmd("cmd-1", "k1"), cmd("cmd-2", "k2")}}
	pub := &stubPublisher{permanent: map[string]error{"cmd-1": errors.New("fail")}}
	dedupe := newStubDedupe()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	d := newTestDispatcher(outbox, pub, dedupe, m)

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands returned error: %v", err)
	}

	if len(pub.published) != 1 || pub.published[0].ID != "cmd-2" {
		t.Fatalf("expected only cmd-2 to be published, got %#v", pub.published)
	}
	if len(outbox.marked) != 1 || outbox.marked[0] != "cmd-2" {
		t.Fatalf("expected only cmd-2 to be marked, got %#v", outbox.marked)
	}
	if _, held := dedupe.state["k1"]; held {
		t.Fatalf("failed command kept its dedupe claim")
	}
	if dedupe.state["k2"] != domain.DedupeApplied {
		t.Fatalf("published command was not confirmed")
	}
	if got := testutil.ToFloat64(m.CommandDispatchErrors.WithLabelValues(string(domain.CommandReclassRun))); got != 1 {
		t.Fatalf("error metric = %v, want 1", got)
	}
}

func TestDispatchRetriesTransientFailures(t *testing.T) {
	outbox := &stubOutbox{commands: []*domain.Command{cmd("cmd-1", "k1")}}
	pub := &stubPublisher{transient: map[string]int{"cmd-1": 2}}
	d := newTestDispatcher(outbox, pub, nil, nil)

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands failed: %v", err)
	}

	if pub.attempts["cmd-1"] != 3 {
		t.Fatalf("expected 3 attempts, got %d", pub.attempts["cmd-1"])
	}
	if len(outbox.marked) != 1 {
		t.Fatalf("expected command to be marked after retries, got %#v", outbox.marked)
	}
}

func TestDispatchSkipsAlreadyAppliedKey(t *testing.T) {
	outbox := &stubOutbox{commands: []*domain.Command{cmd("cmd-2", "k1")}}
	pub := &stubPublisher{}
	dedupe := newStubDedupe()
	dedupe.state["k1"] = domain.DedupeApplied
	d := newTestDispatcher(outbox, pub, dedupe, nil)

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands failed: %v", err)
	}

	if len(pub.published) != 0 {
		t.Fatalf("already applied command was published again")
	}
	if len(outbox.marked) != 1 || outbox.marked[0] != "cmd-2" {
		t.Fatalf("expected command to be marked, got %#v", outbox.marked)
	}
}

func TestDispatchConfirmsKeyAfterPublish(t *testing.T) {
	outbox := &stubOutbox{commands: []*domain.Command{cmd("cmd-1", "k1")}}
	pub := &stubPublisher{}
	dedupe := newStubDedupe()
	d := newTestDispatcher(outbox, pub, dedupe, nil)

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands failed: %v", err)
	}

	if dedupe.state["k1"] != domain.DedupeApplied {
		t.Fatalf("key state = %v, want applied", dedupe.state["k1"])
	}
}

// A worker that claimed k1 and died before publishing must not cause the
// command to be marked published without ever reaching the publisher.
func TestDispatchStaleClaimKeepsCommandPending(t *testing.T) {
	outbox := &stubOutbox{commands: []*domain.Command{cmd("cmd-1", "k1")}}
	pub := &stubPublisher{}
	dedupe := newStubDedupe()
	dedupe.state["k1"] = domain.DedupeClaimed
	d := newTestDispatcher(outbox, pub, dedupe, nil)

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands failed: %v", err)
	}
	if len(pub.published) != 0 || len(outbox.marked) != 0 {
		t.Fatalf("in-flight command must stay pending, published=%d marked=%v", len(pub.published), outbox.marked)
	}

	// lease expired
	delete(dedupe.state, "k1")

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands failed: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0].ID != "cmd-1" {
		t.Fatalf("expected cmd-1 published after lease expiry, got %#v", pub.published)
	}
	if len(outbox.marked) != 1 || outbox.marked[0] != "cmd-1" {
		t.Fatalf("expected cmd-1 marked, got %#v", outbox.marked)
	}
}

func TestDispatchLeavesCommandWhenDedupeFails(t *testing.T) {
	outbox := &stubOutbox{commands: []*domain.Command{cmd("cmd-1", "k1")}}
	pub := &stubPublisher{}
	dedupe := newStubDedupe()
	dedupe.err = errors.New("redis down")
	d := newTestDispatcher(outbox, pub, dedupe, nil)

	if err := d.processCommands(context.Background()); err != nil {
		t.Fatalf("processCommands failed: %v", err)
	}

	if len(pub.published) != 0 || len(outbox.marked) != 0 {
		t.Fatalf("command must stay pending, published=%d marked=%d", len(pub.published), len(outbox.marked))
	}
}

func TestCleanupDeletesOldPublished(t *testing.T) {
	outbox := &stubOutbox{}
	d := newTestDispatcher(outbox, &stubPublisher{}, nil, nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	if err := d.cleanup(context.Background()); err != nil {
		t.Fatalf("cleanup without retention: %v", err)
	}
	if outbox.deletedBefore != nil {
		t.Fatalf("cleanup ran without retention")
	}

	d.retention = 24 * time.Hour
	if err := d.cleanup(context.Background()); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if outbox.deletedBefore == nil || !outbox.deletedBefore.Equal(now.Add(-24*time.Hour)) {
		t.Fatalf("unexpected cutoff %v", outbox.deletedBefore)
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	outbox := &stubOutbox{}
	d := newTestDispatcher(outbox, &stubPublisher{}, nil, nil)
	d.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancel")
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	first := &stubPublisher{permanent: map[string]error{"cmd-1": errors.New("down")}}
	second := &stubPublisher{}

	err := Chain{first, second}.Publish(context.Background(), cmd("cmd-1", "k1"))
	if err == nil {
		t.Fatal("expected chain error")
	}
	if len(second.published) != 0 {
		t.Fatalf("second publisher ran after failure")
	}
}

func TestLogPublisherWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	c := cmd("cmd-1", "k1")
	c.Payload = map[string]any{"ledgerId": "L1"}
	if err := p.Publish(context.Background(), c); err != nil {
		t.Fatalf("publish: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"command_id":"cmd-1"`, `"payload":{"ledgerId":"L1"}`, `"command_type":"gl.reclass.run"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q does not contain %s", out, want)
		}
	}
}

func cmd(id, key string) *domain.Command {
	return &domain.Command{ID: id, IdempotencyKey: key, Type: domain.CommandReclassRun, AggregateType: domain.AggregateTypeLedger, AggregateID: "L1"}
}

func newTestDispatcher(outbox *stubOutbox, pub *stubPublisher, dedupe Deduper, m *metrics.Metrics) *Dispatcher {
	return New(Config{
		Outbox:          outbox,
		Publisher:       pub,
		Dedupe:          dedupe,
		Logger:          zerolog.Nop(),
		Metrics:         m,
		BatchSize:       10,
		Interval:        5 * time.Millisecond,
		InitialInterval: time.Millisecond,
	})
}

type stubOutbox struct {
	commands      []*domain.Command
	marked        []string
	deletedBefore *time.Time
}

func (s *stubOutbox) Enqueue(ctx context.Context, tx usecase.Transaction, c *domain.Command) (bool, error) {
	s.commands = append(s.commands, c)
	return true, nil
}

func (s *stubOutbox) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Command, error) {
	return nil, domain.ErrCommandNotFound
}

func (s *stubOutbox) GetUnpublished(ctx context.Context, limit int) ([]*domain.Command, error) {
	if len(s.commands) <= limit {
		return append([]*domain.Command(nil), s.commands...), nil
	}
	return append([]*domain.Command(nil), s.commands[:limit]...), nil
}

func (s *stubOutbox) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	s.marked = append(s.marked, id)
	return nil
}

func (s *stubOutbox) DeletePublished(ctx context.Context, before time.Time) error {
	s.deletedBefore = &before
	return nil
}

type stubPublisher struct {
	published []*domain.Command
	permanent map[string]error
	transient map[string]int
	attempts  map[string]int
}

func (s *stubPublisher) Publish(ctx context.Context, c *domain.Command) error {
	if s.attempts == nil {
		s.attempts = map[string]int{}
	}
	s.attempts[c.ID]++

	if err := s.permanent[c.ID]; err != nil {
		return err
	}
	if s.transient[c.ID] > 0 {
		s.transient[c.ID]--
		return errors.New("temporarily unavailable")
	}

	s.published = append(s.published, c)
	return nil
}

type stubDedupe struct {
	state map[string]domain.DedupeState
	err   error
}

func newStubDedupe() *stubDedupe {
	return &stubDedupe{state: map[string]domain.DedupeState{}}
}

func (s *stubDedupe) Claim(ctx context.Context, key, commandID string) (domain.DedupeState, error) {
	if s.err != nil {
		return domain.DedupeInFlight, s.err
	}
	switch state, ok := s.state[key]; {
	case !ok:
		s.state[key] = domain.DedupeClaimed
		return domain.DedupeClaimed, nil
	case state == domain.DedupeApplied:
		return domain.DedupeApplied, nil
	default:
		return domain.DedupeInFlight, nil
	}
}

func (s *stubDedupe) Confirm(ctx context.Context, key, commandID string) error {
	s.state[key] = domain.DedupeApplied
	return nil
}

func (s *stubDedupe) Release(ctx context.Context, key string) error {
	delete(s.state, key)
	return nil
}

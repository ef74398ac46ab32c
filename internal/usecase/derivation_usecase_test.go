package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
	"github.com/iho/glkernel/internal/usecase"
	"github.com/iho/glkernel/internal/usecase/mocks"
)

func saleMapping() *domain.MappingVersion {
	return &domain.MappingVersion{
		EventType:     "sale",
		VersionNumber: 2,
		IsCurrent:     true,
		Rules: []domain.MappingRule{
			{DebitAccountID: "1100", CreditAccountID: "4000", Fraction: decimal.RequireFromString("0.9")},
			{DebitAccountID: "1100", CreditAccountID: "2200", Fraction: decimal.RequireFromString("0.1")},
		},
	}
}

type derivationFixture struct {
	uc      *usecase.DerivationUseCase
	events  *mocks.MockEventReader
	maps    *mocks.MockMappingRepository
	outbox  *mocks.InMemoryOutbox
	tx      *mocks.FakeTransactionManager
	metrics *metrics.Metrics
}

func newDerivationFixture(t *testing.T) derivationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := derivationFixture{
		events:  mocks.NewMockEventReader(ctrl),
		maps:    mocks.NewMockMappingRepository(ctrl),
		outbox:  mocks.NewInMemoryOutbox(),
		tx:      mocks.NewFakeTransactionManager(),
		metrics: metrics.NewWithRegisterer(prometheus.NewRegistry()),
	}
	f.uc = usecase.NewDerivationUseCase(f.tx, f.events, f.maps, f.outbox, mocks.NewSequentialIDGenerator(), zerolog.Nop(), f.metrics)
	return f
}

func TestDerivationUseCase_Derive(t *testing.T) {
	f := newDerivationFixture(t)

	f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(&domain.AccountingEvent{
		EventID: "evt-1", EventType: "sale", AmountMinor: 10000, CurrencyCode: "USD",
	}, nil)
	f.maps.EXPECT().GetCurrent(gomock.Any(), "sale").Return(saleMapping(), nil)

	out, err := f.uc.Derive(context.Background(), "evt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Duplicate {
		t.Fatal("first derivation reported as duplicate")
	}

	if out.Result.TotalDebitMinor != 10000 || out.Result.TotalCreditMinor != 10000 {
		t.Fatalf("unexpected totals: %+v", out.Result)
	}

	if out.Command.Type != domain.CommandDeriveCommit {
		t.Fatalf("expected %s, got %s", domain.CommandDeriveCommit, out.Command.Type)
	}

	if !strings.HasPrefix(out.Command.IdempotencyKey, "acct.derive.commit:") {
		t.Fatalf("unexpected idempotency key %q", out.Command.IdempotencyKey)
	}

	if out.Command.Payload["derivationId"] != out.Result.DerivationID {
		t.Fatalf("payload derivationId = %v, want %s", out.Command.Payload["derivationId"], out.Result.DerivationID)
	}

	if f.tx.Commits != 1 {
		t.Fatalf("expected 1 commit, got %d", f.tx.Commits)
	}
}

func TestDerivationUseCase_DeriveReplayIsDuplicate(t *testing.T) {
	f := newDerivationFixture(t)

	f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(&domain.AccountingEvent{
		EventID: "evt-1", EventType: "sale", AmountMinor: 10000, CurrencyCode: "USD",
	}, nil).Times(2)
	f.maps.EXPECT().GetCurrent(gomock.Any(), "sale").Return(saleMapping(), nil).Times(2)

	first, err := f.uc.Derive(context.Background(), "evt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := f.uc.Derive(context.Background(), "evt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !second.Duplicate {
		t.Fatal("replay not reported as duplicate")
	}

	if first.Result.DerivationID != second.Result.DerivationID {
		t.Fatalf("derivation ids differ: %s vs %s", first.Result.DerivationID, second.Result.DerivationID)
	}

	if second.Command.ID != first.Command.ID {
		t.Fatalf("expected original command %s, got %s", first.Command.ID, second.Command.ID)
	}

	if n := len(f.outbox.Commands()); n != 1 {
		t.Fatalf("expected 1 stored command, got %d", n)
	}

	if got := testutil.ToFloat64(f.metrics.Derivations.WithLabelValues("duplicate")); got != 1 {
		t.Fatalf("expected 1 duplicate derivation, got %v", got)
	}
}

func TestDerivationUseCase_DeriveErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f derivationFixture)
		wantErr error
	}{
		{
			name: "event not found",
			setup: func(f derivationFixture) {
				f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(nil, domain.ErrEventNotFound)
			},
			wantErr: domain.ErrEventNotFound,
		},
		{
			name: "no current mapping",
			setup: func(f derivationFixture) {
				f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(&domain.AccountingEvent{
					EventID: "evt-1", EventType: "refund", AmountMinor: 1, CurrencyCode: "USD",
				}, nil)
				f.maps.EXPECT().GetCurrent(gomock.Any(), "refund").Return(nil, domain.ErrMappingNotFound)
			},
			wantErr: domain.ErrMappingNotFound,
		},
		{
			name: "empty rule set",
			setup: func(f derivationFixture) {
				f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(&domain.AccountingEvent{
					EventID: "evt-1", EventType: "sale", AmountMinor: 1, CurrencyCode: "USD",
				}, nil)
				f.maps.EXPECT().GetCurrent(gomock.Any(), "sale").Return(&domain.MappingVersion{EventType: "sale", VersionNumber: 1}, nil)
			},
			wantErr: domain.ErrValidationFailed,
		},
		{
			name: "unknown currency",
			setup: func(f derivationFixture) {
				f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(&domain.AccountingEvent{
					EventID: "evt-1", EventType: "sale", AmountMinor: 1, CurrencyCode: "usd",
				}, nil)
			},
			wantErr: domain.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDerivationFixture(t)
			tt.setup(f)

			_, err := f.uc.Derive(context.Background(), "evt-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if n := len(f.outbox.Commands()); n != 0 {
				t.Fatalf("expected no commands, got %d", n)
			}
		})
	}
}

func TestDerivationUseCase_DeriveCountsValidationFailures(t *testing.T) {
	f := newDerivationFixture(t)

	f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(&domain.AccountingEvent{
		EventID: "evt-1", EventType: "sale", AmountMinor: 1, CurrencyCode: "USD",
	}, nil)
	f.maps.EXPECT().GetCurrent(gomock.Any(), "sale").Return(&domain.MappingVersion{EventType: "sale", VersionNumber: 1}, nil)

	_, _ = f.uc.Derive(context.Background(), "evt-1")

	if got := testutil.ToFloat64(f.metrics.ValidationFailures.WithLabelValues("derive", "empty_input")); got != 1 {
		t.Fatalf("expected 1 validation failure, got %v", got)
	}
}

func TestDerivationUseCase_Preview(t *testing.T) {
	f := newDerivationFixture(t)

	result, err := f.uc.Preview(context.Background(), kernel.DerivationInput{
		EventID:        "evt-9",
		AmountMinor:    3,
		CurrencyCode:   "EUR",
		MappingVersion: 1,
		Rules:          saleMapping().Rules,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 * 0.1 rounds to 0.
	if len(result.SkippedRules) != 1 || result.SkippedRules[0].RuleIndex != 1 {
		t.Fatalf("expected rule 1 skipped, got %+v", result.SkippedRules)
	}

	if n := len(f.outbox.Commands()); n != 0 {
		t.Fatalf("preview enqueued %d commands", n)
	}
}

func TestDerivationUseCase_WithRetrier(t *testing.T) {
	f := newDerivationFixture(t)
	retrier := mocks.NewMockRetrier(gomock.NewController(t))
	f.uc.WithRetrier(retrier)

	f.events.EXPECT().GetAccountingEvent(gomock.Any(), "evt-1").Return(&domain.AccountingEvent{
		EventID: "evt-1", EventType: "sale", AmountMinor: 500, CurrencyCode: "USD",
	}, nil)
	f.maps.EXPECT().GetCurrent(gomock.Any(), "sale").Return(saleMapping(), nil)
	retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, op func() error) error {
		return op()
	})

	if _, err := f.uc.Derive(context.Background(), "evt-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

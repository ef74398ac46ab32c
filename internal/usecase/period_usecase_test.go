package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
	"github.com/iho/glkernel/internal/usecase/mocks"
)

func testLedgers() mocks.StaticLedgers {
	return mocks.StaticLedgers{
		"L1":     {LedgerID: "L1", LedgerType: domain.LedgerTypePrimary, CompanyID: "C1", BaseCurrency: "USD", IsActive: true},
		"L-dead": {LedgerID: "L-dead", LedgerType: domain.LedgerTypeAdjustment, CompanyID: "C1", BaseCurrency: "USD", IsActive: false},
	}
}

func januaryOpen() domain.PostingPeriod {
	return domain.PostingPeriod{
		PeriodKey: "FY2026-P01", LedgerID: "L1", CompanyID: "C1",
		StartDate: "2026-01-01", EndDate: "2026-01-31", Status: domain.PeriodStatusOpen,
	}
}

func newPeriodUseCase(periods *mocks.InMemoryPeriodRepository, outbox *mocks.InMemoryOutbox) *usecase.PeriodUseCase {
	return usecase.NewPeriodUseCase(
		mocks.NewFakeTransactionManager(), testLedgers(), periods, outbox,
		mocks.NewSequentialIDGenerator(), zerolog.Nop(), nil,
	)
}

func TestPeriodUseCase_OpenPeriod(t *testing.T) {
	periods := mocks.NewInMemoryPeriodRepository(januaryOpen())
	outbox := mocks.NewInMemoryOutbox()

	locks := 0
	periods.LockLedgerFunc = func(_ context.Context, _ usecase.Transaction, ledgerID, companyID string) error {
		if ledgerID != "L1" || companyID != "C1" {
			t.Fatalf("unexpected lock %s/%s", ledgerID, companyID)
		}
		locks++
		return nil
	}

	uc := newPeriodUseCase(periods, outbox)

	out, err := uc.OpenPeriod(context.Background(), usecase.OpenPeriodInput{
		LedgerID: "L1", PeriodKey: domain.PeriodKey(2026, 2), StartDate: "2026-02-01", EndDate: "2026-02-28",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if locks != 1 {
		t.Fatalf("expected ledger lock once, got %d", locks)
	}

	if out.Period.Status != domain.PeriodStatusOpen || out.Period.CompanyID != "C1" {
		t.Fatalf("unexpected period %+v", out.Period)
	}

	if out.Command.Type != domain.CommandPeriodOpen {
		t.Fatalf("expected %s, got %s", domain.CommandPeriodOpen, out.Command.Type)
	}

	stored, err := periods.GetPeriod(context.Background(), "L1", "FY2026-P02")
	if err != nil || stored.EndDate != "2026-02-28" {
		t.Fatalf("period not stored: %+v, %v", stored, err)
	}
}

func TestPeriodUseCase_OpenPeriodOverlap(t *testing.T) {
	outbox := mocks.NewInMemoryOutbox()
	uc := newPeriodUseCase(mocks.NewInMemoryPeriodRepository(januaryOpen()), outbox)

	_, err := uc.OpenPeriod(context.Background(), usecase.OpenPeriodInput{
		LedgerID: "L1", PeriodKey: "FY2026-PX", StartDate: "2026-01-15", EndDate: "2026-02-15",
	})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	if !strings.Contains(err.Error(), "FY2026-PX") || !strings.Contains(err.Error(), "FY2026-P01") {
		t.Fatalf("error should name both periods: %v", err)
	}

	if n := len(outbox.Commands()); n != 0 {
		t.Fatalf("expected no commands, got %d", n)
	}
}

func TestPeriodUseCase_LedgerGate(t *testing.T) {
	uc := newPeriodUseCase(mocks.NewInMemoryPeriodRepository(), mocks.NewInMemoryOutbox())

	_, err := uc.OpenPeriod(context.Background(), usecase.OpenPeriodInput{
		LedgerID: "L-dead", PeriodKey: "FY2026-P01", StartDate: "2026-01-01", EndDate: "2026-01-31",
	})
	if !errors.Is(err, domain.ErrLedgerInactive) {
		t.Fatalf("expected inactive ledger, got %v", err)
	}

	_, err = uc.OpenPeriod(context.Background(), usecase.OpenPeriodInput{
		LedgerID: "L-missing", PeriodKey: "FY2026-P01", StartDate: "2026-01-01", EndDate: "2026-01-31",
	})
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Fatalf("expected missing ledger, got %v", err)
	}
}

func TestPeriodUseCase_ClosePeriod(t *testing.T) {
	periods := mocks.NewInMemoryPeriodRepository(januaryOpen())
	outbox := mocks.NewInMemoryOutbox()
	uc := newPeriodUseCase(periods, outbox)
	ctx := context.Background()

	soft, err := uc.ClosePeriod(ctx, usecase.ClosePeriodInput{LedgerID: "L1", PeriodKey: "FY2026-P01", CloseType: domain.CloseTypeSoft})
	if err != nil {
		t.Fatalf("soft close: %v", err)
	}
	if soft.Period.Status != domain.PeriodStatusSoftClose {
		t.Fatalf("expected soft_close, got %s", soft.Period.Status)
	}

	hard, err := uc.ClosePeriod(ctx, usecase.ClosePeriodInput{LedgerID: "L1", PeriodKey: "FY2026-P01", CloseType: domain.CloseTypeHard})
	if err != nil {
		t.Fatalf("hard close: %v", err)
	}
	if hard.Period.Status != domain.PeriodStatusHardClose {
		t.Fatalf("expected hard_close, got %s", hard.Period.Status)
	}

	if soft.Command.IdempotencyKey == hard.Command.IdempotencyKey {
		t.Fatal("soft and hard close share an idempotency key")
	}

	_, err = uc.ClosePeriod(ctx, usecase.ClosePeriodInput{LedgerID: "L1", PeriodKey: "FY2026-P01", CloseType: domain.CloseTypeSoft})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected regression to be rejected, got %v", err)
	}

	stored, _ := periods.GetPeriod(ctx, "L1", "FY2026-P01")
	if stored.Status != domain.PeriodStatusHardClose {
		t.Fatalf("stored status regressed to %s", stored.Status)
	}

	if n := len(outbox.Commands()); n != 2 {
		t.Fatalf("expected 2 commands, got %d", n)
	}
}

func TestPeriodUseCase_ClosePeriodUnknownType(t *testing.T) {
	uc := newPeriodUseCase(mocks.NewInMemoryPeriodRepository(januaryOpen()), mocks.NewInMemoryOutbox())

	_, err := uc.ClosePeriod(context.Background(), usecase.ClosePeriodInput{LedgerID: "L1", PeriodKey: "FY2026-P01", CloseType: "final"})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestPeriodUseCase_CheckPosting(t *testing.T) {
	closed := januaryOpen()
	closed.PeriodKey = "FY2025-P12"
	closed.StartDate, closed.EndDate = "2025-12-01", "2025-12-31"
	closed.Status = domain.PeriodStatusSoftClose

	uc := newPeriodUseCase(mocks.NewInMemoryPeriodRepository(januaryOpen(), closed), mocks.NewInMemoryOutbox())
	ctx := context.Background()

	if _, err := uc.CheckPosting(ctx, "L1", "FY2026-P01"); err != nil {
		t.Fatalf("open period rejected: %v", err)
	}

	_, err := uc.CheckPosting(ctx, "L1", "FY2025-P12")
	if !errors.Is(err, domain.ErrPeriodNotOpen) {
		t.Fatalf("expected period not open, got %v", err)
	}

	_, err = uc.CheckPosting(ctx, "L1", "FY2030-P01")
	if !errors.Is(err, domain.ErrPeriodNotFound) {
		t.Fatalf("expected period not found, got %v", err)
	}
}

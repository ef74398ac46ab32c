package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
)

// NumberingUseCase hands out document numbers and validates line dimensions.
type NumberingUseCase struct {
	txManager     TransactionManager
	sequences     SequenceRepository
	dimensions    DimensionReader
	warnThreshold float64
	observe       observer
	logger        zerolog.Logger
	metrics       *metrics.Metrics
	retrier       Retrier
}

// NewNumberingUseCase creates a new NumberingUseCase. A sequence whose
// utilization reaches warnThreshold is logged at warn level.
func NewNumberingUseCase(
	txManager TransactionManager,
	sequences SequenceRepository,
	dimensions DimensionReader,
	warnThreshold float64,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *NumberingUseCase {
	logger = logger.With().Str("usecase", "numbering").Logger()
	return &NumberingUseCase{
		txManager:     txManager,
		sequences:     sequences,
		dimensions:    dimensions,
		warnThreshold: warnThreshold,
		observe:       observer{metrics: m, logger: logger},
		logger:        logger,
		metrics:       m,
	}
}

// WithRetrier retries the allocation transaction on transient database errors.
func (uc *NumberingUseCase) WithRetrier(r Retrier) *NumberingUseCase {
	uc.retrier = r
	return uc
}

// AllocateNumbersOutput lists the reserved numbers and the sequence usage.
type AllocateNumbersOutput struct {
	SequenceID   string               `json:"sequenceId"`
	Numbers      []string             `json:"numbers"`
	Usage        domain.SequenceUsage `json:"usage"`
	NearCapacity bool                 `json:"nearCapacity"`
}

// AllocateNumbers reserves count numbers from the sequence under a row lock.
func (uc *NumberingUseCase) AllocateNumbers(ctx context.Context, sequenceID string, count int) (*AllocateNumbersOutput, error) {
	const op = "numbering_allocate"
	defer uc.observe.time(op)()

	if err := domain.ValidateIdentifier("sequenceId", sequenceID); err != nil {
		return nil, uc.observe.fail(op, err)
	}

	var out *AllocateNumbersOutput
	err := inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		seq, err := uc.sequences.GetForUpdate(ctx, tx, sequenceID)
		if err != nil {
			return fmt.Errorf("load sequence %s: %w", sequenceID, err)
		}

		numbers, next, usage, err := kernel.AllocateNumbers(*seq, count)
		if err != nil {
			return err
		}

		if err := uc.sequences.UpdateLastNumber(ctx, tx, sequenceID, next.LastNumber); err != nil {
			return fmt.Errorf("advance sequence %s: %w", sequenceID, err)
		}

		out = &AllocateNumbersOutput{
			SequenceID:   sequenceID,
			Numbers:      numbers,
			Usage:        usage,
			NearCapacity: kernel.NearCapacity(usage, uc.warnThreshold),
		}
		return nil
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	if uc.metrics != nil {
		uc.metrics.SequenceUtilization.WithLabelValues(sequenceID).Set(out.Usage.Utilization)
	}

	if out.NearCapacity {
		uc.logger.Warn().
			Str("sequence_id", sequenceID).
			Int64("remaining", out.Usage.Remaining).
			Float64("utilization", out.Usage.Utilization).
			Msg("document sequence near capacity")
	}

	return out, nil
}

// ValidateDimensions checks lines against the company's dimension definitions.
func (uc *NumberingUseCase) ValidateDimensions(ctx context.Context, companyID string, lines []domain.DimensionedLine) error {
	const op = "dimensions_validate"

	if err := domain.ValidateIdentifier("companyId", companyID); err != nil {
		return uc.observe.fail(op, err)
	}

	defs, err := uc.dimensions.ListDimensions(ctx, companyID)
	if err != nil {
		return fmt.Errorf("load dimensions for %s: %w", companyID, err)
	}

	if err := kernel.ValidateDimensions(lines, defs); err != nil {
		return uc.observe.fail(op, err)
	}
	return nil
}

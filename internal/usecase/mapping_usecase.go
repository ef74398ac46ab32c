package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
)

// MappingUseCase publishes mapping rule versions.
type MappingUseCase struct {
	txManager TransactionManager
	mappings  MappingRepository
	commands  commandWriter
	observe   observer
	retrier   Retrier
}

// NewMappingUseCase creates a new MappingUseCase.
func NewMappingUseCase(
	txManager TransactionManager,
	mappings MappingRepository,
	outbox CommandOutbox,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *MappingUseCase {
	logger = logger.With().Str("usecase", "mapping").Logger()
	return &MappingUseCase{
		txManager: txManager,
		mappings:  mappings,
		commands:  commandWriter{outbox: outbox, idGen: idGen, metrics: m, logger: logger},
		observe:   observer{metrics: m, logger: logger},
	}
}

// WithRetrier retries the publish transaction on transient database errors.
func (uc *MappingUseCase) WithRetrier(r Retrier) *MappingUseCase {
	uc.retrier = r
	return uc
}

// PublishMappingOutput is the newly current version and its command.
type PublishMappingOutput struct {
	Version *domain.MappingVersion `json:"version"`
	CommandResult
}

// Publish validates rules, stores them as the next version of eventType and
// enqueues acct.mapping.publish in the same transaction.
func (uc *MappingUseCase) Publish(ctx context.Context, eventType string, rules []domain.MappingRule) (*PublishMappingOutput, error) {
	const op = "mapping_publish"
	defer uc.observe.time(op)()

	if err := domain.ValidateIdentifier("eventType", eventType); err != nil {
		return nil, uc.observe.fail(op, err)
	}

	if len(rules) == 0 {
		return nil, uc.observe.fail(op, domain.NewValidationError(domain.CategoryEmptyInput,
			map[string]any{"eventType": eventType},
			"mapping for %s has no rules", eventType))
	}

	for i, rule := range rules {
		if err := kernel.ValidateMappingRule(i, rule); err != nil {
			return nil, uc.observe.fail(op, err)
		}
	}

	hash, err := rulesHash(rules)
	if err != nil {
		return nil, fmt.Errorf("hash rules: %w", err)
	}

	var out *PublishMappingOutput
	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		current, err := uc.mappings.CurrentVersionForUpdate(ctx, tx, eventType)
		if err != nil {
			return fmt.Errorf("current mapping version: %w", err)
		}

		version := &domain.MappingVersion{
			EventType:     eventType,
			VersionNumber: current + 1,
			Rules:         rules,
			IsCurrent:     true,
		}

		if err := uc.mappings.Publish(ctx, tx, version); err != nil {
			return fmt.Errorf("publish mapping version: %w", err)
		}

		res, err := uc.commands.enqueue(ctx, tx, commandDraft{
			Type:          domain.CommandMappingPublish,
			AggregateType: domain.AggregateTypeMapping,
			AggregateID:   eventType,
			Identity: map[string]any{
				"eventType":     eventType,
				"versionNumber": version.VersionNumber,
				"rulesHash":     hash,
			},
			Payload: map[string]any{"ruleCount": len(rules)},
		})
		if err != nil {
			return err
		}

		out = &PublishMappingOutput{Version: version, CommandResult: *res}
		return nil
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	return out, nil
}

// Current returns the current mapping version of eventType.
func (uc *MappingUseCase) Current(ctx context.Context, eventType string) (*domain.MappingVersion, error) {
	if err := domain.ValidateIdentifier("eventType", eventType); err != nil {
		return nil, err
	}
	return uc.mappings.GetCurrent(ctx, eventType)
}

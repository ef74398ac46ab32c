package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

// JournalPoster applies dispatched commands that carry journal lines to the
// posted_lines read model. Each command is posted at most once.
type JournalPoster struct {
	txManager       usecase.TransactionManager
	lines           *PostedLineRepository
	defaultLedgerID string
	logger          zerolog.Logger
}

// NewJournalPoster creates a JournalPoster. Derivation commits carry no
// ledger; they are posted to defaultLedgerID, or skipped when it is empty.
func NewJournalPoster(txManager usecase.TransactionManager, lines *PostedLineRepository, defaultLedgerID string, logger zerolog.Logger) *JournalPoster {
	return &JournalPoster{
		txManager:       txManager,
		lines:           lines,
		defaultLedgerID: defaultLedgerID,
		logger:          logger.With().Str("component", "journal_poster").Logger(),
	}
}

type journalPayload struct {
	LedgerID    string                      `json:"ledgerId"`
	PostingDate string                      `json:"postingDate"`
	Lines       []domain.DerivedJournalLine `json:"lines"`
}

// Publish posts the lines of cmd. Commands without lines are ignored.
func (p *JournalPoster) Publish(ctx context.Context, cmd *domain.Command) error {
	payload, err := decodeJournalPayload(cmd.Payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", cmd.Type, err)
	}

	if len(payload.Lines) == 0 {
		return nil
	}

	ledgerID := payload.LedgerID
	if ledgerID == "" {
		ledgerID = p.defaultLedgerID
	}
	if ledgerID == "" {
		p.logger.Debug().
			Str("command_id", cmd.ID).
			Str("command_type", string(cmd.Type)).
			Msg("no ledger for command, lines not posted")
		return nil
	}

	tx, err := p.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	posted, err := p.lines.PostLines(ctx, tx, cmd.ID, ledgerID, payload.PostingDate, payload.Lines)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	p.logger.Info().
		Str("command_id", cmd.ID).
		Str("ledger_id", ledgerID).
		Int("lines", len(payload.Lines)).
		Bool("already_posted", !posted).
		Msg("journal posted")

	return nil
}

// decodeJournalPayload re-encodes the payload map so that values stored as
// JSON and values built in memory decode the same way.
func decodeJournalPayload(m map[string]any) (journalPayload, error) {
	var out journalPayload

	raw, err := json.Marshal(m)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}

	return out, nil
}

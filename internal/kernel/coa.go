package kernel

import (
	"fmt"
	"strings"

	"github.com/iho/glkernel/internal/domain"
)

// CoaReport summarises a chart of accounts that passed integrity validation.
type CoaReport struct {
	Valid         bool   `json:"valid"`
	AccountCount  int    `json:"accountCount"`
	RootCount     int    `json:"rootCount"`
	PostableCount int    `json:"postableCount"`
	Summary       string `json:"summary"`
}

type coaIndex struct {
	byID     map[string]domain.AccountNode
	children map[string][]string
	roots    []string
}

func indexAccounts(accounts []domain.AccountNode) coaIndex {
	idx := coaIndex{
		byID:     make(map[string]domain.AccountNode, len(accounts)),
		children: make(map[string][]string),
	}
	for _, a := range accounts {
		if _, seen := idx.byID[a.ID]; seen {
			continue
		}
		idx.byID[a.ID] = a
		if a.IsRoot() {
			idx.roots = append(idx.roots, a.ID)
			continue
		}
		idx.children[a.ParentAccountID] = append(idx.children[a.ParentAccountID], a.ID)
	}
	return idx
}

// GetSubtree returns accounts below rootID in depth-first order, children in
// input order. An empty rootID walks every root together with its descendants.
// Nodes already visited are not revisited, so a cyclic input still terminates.
func GetSubtree(rootID string, accounts []domain.AccountNode) []domain.AccountNode {
	idx := indexAccounts(accounts)
	visited := make(map[string]bool, len(accounts))
	out := make([]domain.AccountNode, 0)

	var walk func(id string)
	walk = func(id string) {
		for _, childID := range idx.children[id] {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			out = append(out, idx.byID[childID])
			walk(childID)
		}
	}

	if rootID == "" {
		for _, id := range idx.roots {
			visited[id] = true
			out = append(out, idx.byID[id])
			walk(id)
		}
		return out
	}

	if _, ok := idx.byID[rootID]; !ok {
		return out
	}
	visited[rootID] = true
	walk(rootID)
	return out
}

// GetAncestors returns the chain from accountID up to its root, leaf first.
func GetAncestors(accountID string, accounts []domain.AccountNode) ([]domain.AccountNode, error) {
	idx := indexAccounts(accounts)
	return ancestors(accountID, idx)
}

func ancestors(accountID string, idx coaIndex) ([]domain.AccountNode, error) {
	current, ok := idx.byID[accountID]
	if !ok {
		return nil, domain.NewValidationError(domain.CategoryStructural,
			map[string]any{"accountId": accountID},
			"account %s is not in the chart of accounts", accountID)
	}

	chain := []domain.AccountNode{current}
	seen := map[string]bool{current.ID: true}

	for !current.IsRoot() {
		parent, ok := idx.byID[current.ParentAccountID]
		if !ok {
			return nil, domain.NewValidationError(domain.CategoryStructural,
				map[string]any{"accountId": current.ID, "accountCode": current.AccountCode, "parentAccountId": current.ParentAccountID},
				"account %s (%s) references missing parent %s", current.ID, current.AccountCode, current.ParentAccountID)
		}
		if seen[parent.ID] {
			return nil, domain.NewValidationError(domain.CategoryStructural,
				map[string]any{"accountId": parent.ID, "accountCode": parent.AccountCode},
				"cycle detected at account %s (%s)", parent.ID, parent.AccountCode)
		}
		seen[parent.ID] = true
		chain = append(chain, parent)
		current = parent
	}

	return chain, nil
}

// ValidateCoaIntegrity checks a chart of accounts for duplicate ids,
// dangling parent references and cycles. The first violation is returned.
func ValidateCoaIntegrity(accounts []domain.AccountNode) (*CoaReport, error) {
	if len(accounts) == 0 {
		return nil, domain.NewValidationError(domain.CategoryEmptyInput, nil, "chart of accounts is empty")
	}

	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if strings.TrimSpace(a.ID) == "" {
			return nil, domain.NewValidationError(domain.CategoryEmptyInput,
				map[string]any{"accountCode": a.AccountCode},
				"account with code %s has no id", a.AccountCode)
		}
		if seen[a.ID] {
			return nil, domain.NewValidationError(domain.CategoryStructural,
				map[string]any{"accountId": a.ID, "accountCode": a.AccountCode},
				"duplicate account id %s (%s)", a.ID, a.AccountCode)
		}
		seen[a.ID] = true
	}

	idx := indexAccounts(accounts)

	for _, a := range accounts {
		if a.IsRoot() {
			continue
		}
		if _, ok := idx.byID[a.ParentAccountID]; !ok {
			return nil, domain.NewValidationError(domain.CategoryStructural,
				map[string]any{"accountId": a.ID, "accountCode": a.AccountCode, "parentAccountId": a.ParentAccountID},
				"account %s (%s) references missing parent %s", a.ID, a.AccountCode, a.ParentAccountID)
		}
	}

	for _, a := range accounts {
		if _, err := ancestors(a.ID, idx); err != nil {
			return nil, err
		}
	}

	report := &CoaReport{Valid: true, AccountCount: len(accounts), RootCount: len(idx.roots)}
	for _, a := range accounts {
		if a.IsPostable {
			report.PostableCount++
		}
	}
	report.Summary = fmt.Sprintf("%d accounts, %d roots, %d postable",
		report.AccountCount, report.RootCount, report.PostableCount)

	return report, nil
}

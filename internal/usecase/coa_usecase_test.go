package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
	"github.com/iho/glkernel/internal/usecase/mocks"
)

func chart() []domain.AccountNode {
	return []domain.AccountNode{
		{ID: "1000", AccountCode: "1000", AccountType: domain.AccountTypeAsset, NormalBalance: domain.SideDebit},
		{ID: "1100", AccountCode: "1100", AccountType: domain.AccountTypeAsset, ParentAccountID: "1000", IsPostable: true, NormalBalance: domain.SideDebit},
		{ID: "2000", AccountCode: "2000", AccountType: domain.AccountTypeLiability, IsPostable: true, NormalBalance: domain.SideCredit},
	}
}

func TestCoAUseCase_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCoARepository(ctrl)
	uc := usecase.NewCoAUseCase(mocks.NewFakeTransactionManager(), repo, mocks.NewInMemoryOutbox(), mocks.NewSequentialIDGenerator(), zerolog.Nop(), nil)

	repo.EXPECT().GetChartOfAccounts(gomock.Any(), "C1").Return(chart(), nil)

	report, err := uc.Validate(context.Background(), "C1")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, 3, report.AccountCount)
	assert.Equal(t, 2, report.RootCount)
}

func TestCoAUseCase_ValidateDangling(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCoARepository(ctrl)
	uc := usecase.NewCoAUseCase(mocks.NewFakeTransactionManager(), repo, mocks.NewInMemoryOutbox(), mocks.NewSequentialIDGenerator(), zerolog.Nop(), nil)

	accounts := append(chart(), domain.AccountNode{ID: "5100", AccountCode: "5100", AccountType: domain.AccountTypeExpense, ParentAccountID: "5000"})
	repo.EXPECT().GetChartOfAccounts(gomock.Any(), "C1").Return(accounts, nil)

	_, err := uc.Validate(context.Background(), "C1")
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Contains(t, err.Error(), "5000")
}

func TestCoAUseCase_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCoARepository(ctrl)
	outbox := mocks.NewInMemoryOutbox()
	uc := usecase.NewCoAUseCase(mocks.NewFakeTransactionManager(), repo, outbox, mocks.NewSequentialIDGenerator(), zerolog.Nop(), nil)

	repo.EXPECT().Replace(gomock.Any(), gomock.Any(), "C1", chart()).Return(nil).Times(2)

	first, err := uc.Publish(context.Background(), "C1", chart())
	require.NoError(t, err)
	assert.Equal(t, domain.CommandCoAPublish, first.Command.Type)
	assert.Equal(t, 2, first.Report.PostableCount)

	second, err := uc.Publish(context.Background(), "C1", chart())
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Command.IdempotencyKey, second.Command.IdempotencyKey)
}

func TestCoAUseCase_PublishRejectsUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCoARepository(ctrl)
	uc := usecase.NewCoAUseCase(mocks.NewFakeTransactionManager(), repo, mocks.NewInMemoryOutbox(), mocks.NewSequentialIDGenerator(), zerolog.Nop(), nil)

	accounts := chart()
	accounts[0].AccountType = "contra"

	_, err := uc.Publish(context.Background(), "C1", accounts)
	require.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestCoAUseCase_Navigation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCoARepository(ctrl)
	uc := usecase.NewCoAUseCase(mocks.NewFakeTransactionManager(), repo, mocks.NewInMemoryOutbox(), mocks.NewSequentialIDGenerator(), zerolog.Nop(), nil)

	repo.EXPECT().GetChartOfAccounts(gomock.Any(), "C1").Return(chart(), nil).Times(3)

	chain, err := uc.Ancestors(context.Background(), "C1", "1100")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "1000", chain[1].ID)

	all, err := uc.Subtree(context.Background(), "C1", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	below, err := uc.Subtree(context.Background(), "C1", "1000")
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, "1100", below[0].ID)
}

func TestCoAUseCase_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCoARepository(ctrl)
	uc := usecase.NewCoAUseCase(mocks.NewFakeTransactionManager(), repo, mocks.NewInMemoryOutbox(), mocks.NewSequentialIDGenerator(), zerolog.Nop(), nil)

	repo.EXPECT().GetChartOfAccounts(gomock.Any(), "C9").Return(nil, domain.ErrCoANotFound)

	_, err := uc.Validate(context.Background(), "C9")
	assert.True(t, errors.Is(err, domain.ErrCoANotFound))
}

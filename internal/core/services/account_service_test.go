package services_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AccountServiceSuite struct {
	LedgerSuite
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) TestCreateAccount() {
	acc := s.createAccount("Cash", domain.AccountAsset)
	s.True(acc.Editable)
	s.True(acc.IsActive)
	s.Equal(domain.Money(0), acc.Balance)
	s.Equal(testUser, acc.CreatedBy)

	list, err := s.svc.Account.ListAccounts(s.ctx, dto.ListAccountsParams{})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *AccountServiceSuite) TestUpdateAccount() {
	acc := s.createAccount("Cash", domain.AccountAsset)
	name, desc := "Main Cash", "till and safe"
	updated, err := s.svc.Account.UpdateAccount(s.ctx, acc.AccountID, dto.UpdateAccountRequest{Name: &name, Description: &desc}, "user-2")
	s.Require().NoError(err)
	s.Equal("Main Cash", updated.Name)
	s.Equal("till and safe", updated.Description)
	s.Equal(domain.AccountAsset, updated.AccountType)
	s.Equal("user-2", updated.LastUpdatedBy)

	_, err = s.svc.Account.UpdateAccount(s.ctx, "missing", dto.UpdateAccountRequest{Name: &name}, testUser)
	s.ErrorIs(err, apperrors.ErrLedgerNotFound)
}

func (s *AccountServiceSuite) TestDeleteAccount() {
	unused := s.createAccount("Unused", domain.AccountExpense)
	s.Require().NoError(s.svc.Account.DeleteAccount(s.ctx, unused.AccountID, testUser))
	_, err := s.svc.Account.GetAccountByID(s.ctx, unused.AccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	cash := s.createAccount("Cash", domain.AccountAsset)
	sales := s.createAccount("Sales", domain.AccountRevenue)
	_, err = s.post(day(2024, 1, 5), debit(cash.AccountID, "10.00"), credit(sales.AccountID, "10.00"))
	s.Require().NoError(err)
	err = s.svc.Account.DeleteAccount(s.ctx, cash.AccountID, testUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	system := domain.Account{
		AccountID:   "sys-retained-earnings",
		Name:        "Retained Earnings",
		AccountType: domain.AccountEquity,
		IsActive:    true,
		Editable:    false,
		AuditFields: domain.NewAuditFields("system", testNow),
	}
	s.Require().NoError(s.store.Repositories().AccountRepo.SaveAccount(s.ctx, system))
	err = s.svc.Account.DeleteAccount(s.ctx, system.AccountID, testUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	err = s.svc.Account.DeleteAccount(s.ctx, "missing", testUser)
	s.ErrorIs(err, apperrors.ErrLedgerNotFound)
}

func (s *AccountServiceSuite) TestArchivedAccountRejectsPostingsButKeepsHistory() {
	cash := s.createAccount("Cash", domain.AccountAsset)
	sales := s.createAccount("Sales", domain.AccountRevenue)
	_, err := s.post(day(2024, 1, 5), debit(cash.AccountID, "10.00"), credit(sales.AccountID, "10.00"))
	s.Require().NoError(err)

	inactive := false
	_, err = s.svc.Account.UpdateAccount(s.ctx, sales.AccountID, dto.UpdateAccountRequest{IsActive: &inactive}, testUser)
	s.Require().NoError(err)

	_, err = s.post(day(2024, 1, 6), debit(cash.AccountID, "5.00"), credit(sales.AccountID, "5.00"))
	s.ErrorIs(err, apperrors.ErrUnknownAccount)

	postings, err := s.svc.Account.ListAccountPostings(s.ctx, sales.AccountID)
	s.Require().NoError(err)
	s.Len(postings, 1)
	s.Equal(money("10.00"), s.balanceOf(sales.AccountID))
}

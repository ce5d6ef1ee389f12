package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		Name:           d.Name,
		AccountNumber:  d.AccountNumber,
		CurrentBalance: int64(d.CurrentBalance),
		IsActive:       d.IsActive,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		Name:           m.Name,
		AccountNumber:  m.AccountNumber,
		CurrentBalance: domain.Money(m.CurrentBalance),
		IsActive:       m.IsActive,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBankAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	return mapSlice(ms, ToDomainBankAccount)
}

func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTransactionID: d.BankTransactionID,
		BankAccountID:     d.BankAccountID,
		TransactionDate:   domain.NormalizeDate(d.TransactionDate),
		Type:              string(d.Type),
		Amount:            int64(d.Amount),
		Description:       d.Description,
		Reference:         d.Reference,
		Reconciled:        d.Reconciled,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID: m.BankTransactionID,
		BankAccountID:     m.BankAccountID,
		TransactionDate:   domain.NormalizeDate(m.TransactionDate),
		Type:              domain.BankTransactionType(m.Type),
		Amount:            domain.Money(m.Amount),
		Description:       m.Description,
		Reference:         m.Reference,
		Reconciled:        m.Reconciled,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	return mapSlice(ms, ToDomainBankTransaction)
}

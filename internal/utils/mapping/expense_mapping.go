package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:          d.ExpenseID,
		CategoryID:         d.CategoryID,
		VendorID:           d.VendorID,
		Description:        d.Description,
		ExpenseDate:        domain.NormalizeDate(d.ExpenseDate),
		Amount:             int64(d.Amount),
		AmountPaid:         int64(d.AmountPaid),
		Status:             string(d.Status),
		RecurringProfileID: d.RecurringProfileID,
		RecurringDueDate:   dateOrNil(d.RecurringDueDate),
		DocumentID:         d.DocumentID,
		Version:            d.Version,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:          m.ExpenseID,
		CategoryID:         m.CategoryID,
		VendorID:           m.VendorID,
		Description:        m.Description,
		ExpenseDate:        domain.NormalizeDate(m.ExpenseDate),
		Amount:             domain.Money(m.Amount),
		AmountPaid:         domain.Money(m.AmountPaid),
		Status:             domain.ExpenseStatus(m.Status),
		RecurringProfileID: m.RecurringProfileID,
		RecurringDueDate:   dateOrNil(m.RecurringDueDate),
		DocumentID:         m.DocumentID,
		Version:            m.Version,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	return mapSlice(ms, ToDomainExpense)
}

func ToModelExpensePayment(d domain.ExpensePayment) models.ExpensePayment {
	return models.ExpensePayment{
		ExpensePaymentID: d.ExpensePaymentID,
		ExpenseID:        d.ExpenseID,
		PaymentDate:      domain.NormalizeDate(d.PaymentDate),
		Method:           string(d.Method),
		Amount:           int64(d.Amount),
		Reference:        d.Reference,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpensePayment(m models.ExpensePayment) domain.ExpensePayment {
	return domain.ExpensePayment{
		ExpensePaymentID: m.ExpensePaymentID,
		ExpenseID:        m.ExpenseID,
		PaymentDate:      domain.NormalizeDate(m.PaymentDate),
		Method:           domain.PaymentMethod(m.Method),
		Amount:           domain.Money(m.Amount),
		Reference:        m.Reference,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainExpensePaymentSlice(ms []models.ExpensePayment) []domain.ExpensePayment {
	return mapSlice(ms, ToDomainExpensePayment)
}

func ToModelRecurringProfile(d domain.RecurringExpenseProfile) models.RecurringExpenseProfile {
	return models.RecurringExpenseProfile{
		ProfileID:         d.ProfileID,
		CategoryID:        d.CategoryID,
		VendorID:          d.VendorID,
		Description:       d.Description,
		Amount:            int64(d.Amount),
		Frequency:         string(d.Frequency),
		StartDate:         domain.NormalizeDate(d.StartDate),
		EndDate:           dateOrNil(d.EndDate),
		Status:            string(d.Status),
		LastGeneratedDate: dateOrNil(d.LastGeneratedDate),
		Version:           d.Version,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainRecurringProfile(m models.RecurringExpenseProfile) domain.RecurringExpenseProfile {
	return domain.RecurringExpenseProfile{
		ProfileID:         m.ProfileID,
		CategoryID:        m.CategoryID,
		VendorID:          m.VendorID,
		Description:       m.Description,
		Amount:            domain.Money(m.Amount),
		Frequency:         domain.Frequency(m.Frequency),
		StartDate:         domain.NormalizeDate(m.StartDate),
		EndDate:           dateOrNil(m.EndDate),
		Status:            domain.RecurringStatus(m.Status),
		LastGeneratedDate: dateOrNil(m.LastGeneratedDate),
		Version:           m.Version,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainRecurringProfileSlice(ms []models.RecurringExpenseProfile) []domain.RecurringExpenseProfile {
	return mapSlice(ms, ToDomainRecurringProfile)
}

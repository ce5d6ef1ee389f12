package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// SignedAmount applies the normal-balance convention:
// DEBIT to ASSET/EXPENSE -> +, CREDIT to ASSET/EXPENSE -> -,
// DEBIT to LIABILITY/EQUITY/REVENUE -> -, CREDIT to LIABILITY/EQUITY/REVENUE -> +.
func SignedAmount(side domain.Side, amount domain.Money, accountType domain.AccountType) (domain.Money, error) {
	if !side.IsValid() {
		return 0, fmt.Errorf("unknown side %q", side)
	}
	if !accountType.IsValid() {
		return 0, fmt.Errorf("unknown account type %q", accountType)
	}
	isDebit := side == domain.Debit
	if accountType.IsDebitNormal() == isDebit {
		return amount, nil
	}
	return amount.Neg(), nil
}

// BalanceChanges sums the signed effect of lines per account; this is what
// the incremental update adds to each materialized balance.
func BalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) (map[string]domain.Money, error) {
	changes := make(map[string]domain.Money)
	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s missing while computing balance changes", l.AccountID)
		}
		signed, err := SignedAmount(l.Side, l.Amount, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.LineNo, err)
		}
		changes[l.AccountID] += signed
	}
	return changes, nil
}

// ApplyRunningBalances fills RunningBalance on each line, starting from the
// balances in accounts (as locked before the journal is applied), in line order.
func ApplyRunningBalances(lines []domain.JournalLine, accounts map[string]domain.Account) error {
	running := make(map[string]domain.Money, len(accounts))
	for id, acc := range accounts {
		running[id] = acc.Balance
	}
	for i := range lines {
		acc, ok := accounts[lines[i].AccountID]
		if !ok {
			return fmt.Errorf("account %s missing while computing running balances", lines[i].AccountID)
		}
		signed, err := SignedAmount(lines[i].Side, lines[i].Amount, acc.AccountType)
		if err != nil {
			return err
		}
		running[acc.AccountID] += signed
		lines[i].RunningBalance = running[acc.AccountID]
	}
	return nil
}

// RecomputeBalance derives an account balance from its complete posting history.
func RecomputeBalance(accountType domain.AccountType, lines []domain.JournalLine) (domain.Money, error) {
	if !accountType.IsValid() {
		return 0, fmt.Errorf("unknown account type %q", accountType)
	}
	var debits, credits domain.Money
	for _, l := range lines {
		switch l.Side {
		case domain.Debit:
			debits += l.Amount
		case domain.Credit:
			credits += l.Amount
		default:
			return 0, fmt.Errorf("line %s has unknown side %q", l.LineID, l.Side)
		}
	}
	if accountType.IsDebitNormal() {
		return debits - credits, nil
	}
	return credits - debits, nil
}

// BankDelta is +amount for deposits and -amount for withdrawals.
func BankDelta(t domain.BankTransactionType, amount domain.Money) (domain.Money, error) {
	switch t {
	case domain.Deposit:
		return amount, nil
	case domain.Withdrawal:
		return amount.Neg(), nil
	}
	return 0, fmt.Errorf("unknown bank transaction type %q", t)
}

// RecomputeBankBalance derives current_balance from transaction history.
func RecomputeBankBalance(txns []domain.BankTransaction) (domain.Money, error) {
	var balance domain.Money
	for _, t := range txns {
		delta, err := BankDelta(t.Type, t.Amount)
		if err != nil {
			return 0, err
		}
		balance += delta
	}
	return balance, nil
}

// RecomputeInvoicePaid derives amount_paid from allocations and credit notes.
func RecomputeInvoicePaid(allocations []domain.InvoicePayment, notes []domain.CreditNote) domain.Money {
	var paid domain.Money
	for _, a := range allocations {
		paid += a.AmountApplied
	}
	for _, n := range notes {
		paid += n.Amount
	}
	return paid
}

// RecomputeExpensePaid derives amount_paid from expense payments.
func RecomputeExpensePaid(payments []domain.ExpensePayment) domain.Money {
	var paid domain.Money
	for _, p := range payments {
		paid += p.Amount
	}
	return paid
}

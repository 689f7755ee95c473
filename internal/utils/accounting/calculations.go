package accounting

import (
	"fmt"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to an amount based on account type and side.
// This is used by the balance calculator for journal lines and raw import rows alike.
func CalculateSignedAmount(amount decimal.Decimal, isDebit bool, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := amount.Abs()

	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	return signedAmount, nil
}

// SignedLineAmount is CalculateSignedAmount for a journal entry line.
func SignedLineAmount(line domain.EntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	return CalculateSignedAmount(line.Amount(), line.IsDebit(), accountType)
}

// SignedImportAmount is CalculateSignedAmount for a raw import row, whose
// amount sign carries the side.
func SignedImportAmount(row domain.ImportRow, accountType domain.AccountType) (decimal.Decimal, error) {
	return CalculateSignedAmount(row.Amount, row.IsDebit(), accountType)
}

// ValidateEntryLines checks the structure of a journal's lines: at least two,
// no negative amounts, no amount finer than domain.AmountScale, and exactly
// one non-zero side per line.
func ValidateEntryLines(journalID string, lines []domain.EntryLine) error {
	if len(lines) < domain.MinJournalLines {
		return apperrors.NewLedgerError(apperrors.ErrInvalidJournalStructure, journalID,
			"journal must have at least %d lines, got %d", domain.MinJournalLines, len(lines))
	}

	for i, l := range lines {
		n := i + 1
		if l.AccountID == "" {
			return apperrors.NewLedgerError(apperrors.ErrInvalidJournalStructure, journalID, "line %d has no account", n)
		}
		if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
			return apperrors.NewLedgerError(apperrors.ErrInvalidJournalStructure, journalID, "line %d has a negative amount", n)
		}
		if !domain.FitsAmountScale(l.DebitAmount) || !domain.FitsAmountScale(l.CreditAmount) {
			return apperrors.NewLedgerError(apperrors.ErrInvalidJournalStructure, journalID,
				"line %d has more than %d decimal places", n, domain.AmountScale)
		}
		debit, credit := !l.DebitAmount.IsZero(), !l.CreditAmount.IsZero()
		switch {
		case debit && credit:
			return apperrors.NewLedgerError(apperrors.ErrInvalidJournalStructure, journalID, "line %d has both a debit and a credit", n)
		case !debit && !credit:
			return apperrors.NewLedgerError(apperrors.ErrEmptyLine, journalID, "line %d has no amount", n)
		}
	}
	return nil
}

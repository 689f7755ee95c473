package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the largest debit/credit difference still treated as balanced.
var BalanceEpsilon = decimal.New(1, -2)

// AmountScale is the number of decimal places stored for every amount.
const AmountScale = 4

// FitsAmountScale reports whether d can be stored without rounding.
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// MinJournalLines is the smallest number of lines a journal can carry.
const MinJournalLines = 2

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft     JournalStatus = "DRAFT"
	JournalPosted    JournalStatus = "POSTED"
	JournalCancelled JournalStatus = "CANCELLED"
)

var journalTransitions = map[JournalStatus][]JournalStatus{
	JournalDraft: {JournalPosted, JournalCancelled},
}

// CanTransitionTo reports whether the journal state machine allows s -> next.
func (s JournalStatus) CanTransitionTo(next JournalStatus) bool {
	for _, allowed := range journalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JournalSource records what produced a journal.
type JournalSource string

const (
	SourceManual     JournalSource = "MANUAL"
	SourcePayroll    JournalSource = "PAYROLL"
	SourceAP         JournalSource = "AP"
	SourceAR         JournalSource = "AR"
	SourceAdjustment JournalSource = "ADJUSTMENT"
	SourceImport     JournalSource = "IMPORT"
)

// IsValid reports whether s is a known source.
func (s JournalSource) IsValid() bool {
	switch s {
	case SourceManual, SourcePayroll, SourceAP, SourceAR, SourceAdjustment, SourceImport:
		return true
	}
	return false
}

// Journal is the header of a dated, multi-line accounting record.
type Journal struct {
	JournalID          string          `json:"journalID"`
	CompanyID          string          `json:"companyID"`
	JournalNumber      string          `json:"journalNumber"`
	JournalSequence    int64           `json:"journalSequence"`
	JournalDate        time.Time       `json:"journalDate"`
	Memo               string          `json:"memo"`
	Source             JournalSource   `json:"source"`
	SourceID           *string         `json:"sourceID,omitempty"`
	Status             JournalStatus   `json:"status"`
	BatchID            *string         `json:"batchID,omitempty"`
	IsBalanced         bool            `json:"isBalanced"`
	TotalDebits        decimal.Decimal `json:"totalDebits"`
	TotalCredits       decimal.Decimal `json:"totalCredits"`
	PostedAt           *time.Time      `json:"postedAt,omitempty"`
	PostedBy           *string         `json:"postedBy,omitempty"`
	OriginalJournalID  *string         `json:"originalJournalID,omitempty"`  // set on a reversal
	ReversingJournalID *string         `json:"reversingJournalID,omitempty"` // set on the reversed journal
	AuditFields
	Lines []EntryLine `json:"lines,omitempty"`
}

// IsBalancedAmounts applies the balance epsilon to a debit and credit total.
func IsBalancedAmounts(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThan(BalanceEpsilon)
}

// RecomputeTotals derives TotalDebits, TotalCredits and IsBalanced from Lines.
func (j *Journal) RecomputeTotals() {
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range j.Lines {
		debits = debits.Add(l.DebitAmount)
		credits = credits.Add(l.CreditAmount)
	}
	j.TotalDebits = debits
	j.TotalCredits = credits
	j.IsBalanced = IsBalancedAmounts(debits, credits)
}

// Renumber assigns line numbers 1..n in slice order and links lines to the journal.
func (j *Journal) Renumber() {
	for i := range j.Lines {
		j.Lines[i].LineNumber = i + 1
		j.Lines[i].JournalID = j.JournalID
	}
}

// InBatch reports whether the journal is a member of a batch.
func (j *Journal) InBatch() bool {
	return j.BatchID != nil && *j.BatchID != ""
}

// EntryLine is one account-amount line within a Journal.
type EntryLine struct {
	LineID       string          `json:"lineID"`
	JournalID    string          `json:"journalID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	EntityType   *string         `json:"entityType,omitempty"`
	EntityID     *string         `json:"entityID,omitempty"`
}

// SetDebit sets the debit side and clears the credit side.
func (l *EntryLine) SetDebit(amount decimal.Decimal) {
	l.DebitAmount = amount
	l.CreditAmount = decimal.Zero
}

// SetCredit sets the credit side and clears the debit side.
func (l *EntryLine) SetCredit(amount decimal.Decimal) {
	l.CreditAmount = amount
	l.DebitAmount = decimal.Zero
}

// IsDebit reports whether the line carries its amount on the debit side.
func (l EntryLine) IsDebit() bool {
	return !l.DebitAmount.IsZero()
}

// Amount returns the non-zero side of the line.
func (l EntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// Flip returns a copy of the line with debit and credit swapped.
func (l EntryLine) Flip() EntryLine {
	flipped := l
	flipped.DebitAmount, flipped.CreditAmount = l.CreditAmount, l.DebitAmount
	return flipped
}

package dto

import (
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one line of a create/update journal request.
// Exactly one of DebitAmount and CreditAmount should be non-zero.
type EntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description" binding:"max=500"`
	EntityType   *string         `json:"entityType"`
	EntityID     *string         `json:"entityID"`
}

// ToDomainLine converts the request into an unsaved domain line.
func (r EntryLineRequest) ToDomainLine() domain.EntryLine {
	return domain.EntryLine{
		AccountID:    r.AccountID,
		DebitAmount:  r.DebitAmount,
		CreditAmount: r.CreditAmount,
		Description:  r.Description,
		EntityType:   r.EntityType,
		EntityID:     r.EntityID,
	}
}

// ToDomainLines converts request lines in order.
func ToDomainLines(reqs []EntryLineRequest) []domain.EntryLine {
	lines := make([]domain.EntryLine, len(reqs))
	for i, r := range reqs {
		lines[i] = r.ToDomainLine()
	}
	return lines
}

// CreateJournalRequest defines the data needed to create a journal.
type CreateJournalRequest struct {
	JournalDate time.Time            `json:"journalDate" binding:"required"`
	Memo        string               `json:"memo" binding:"max=1000"`
	Source      domain.JournalSource `json:"source" binding:"omitempty,oneof=MANUAL PAYROLL AP AR ADJUSTMENT IMPORT"`
	SourceID    *string              `json:"sourceID"`
	Lines       []EntryLineRequest   `json:"lines" binding:"dive"`
}

// UpdateJournalRequest defines the editable fields of a journal.
// A nil Lines leaves the lines untouched; a non-nil Lines replaces them all.
type UpdateJournalRequest struct {
	JournalDate *time.Time         `json:"journalDate"`
	Memo        *string            `json:"memo" binding:"omitempty,max=1000"`
	Lines       []EntryLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ReverseJournalRequest optionally overrides the date and memo of a reversal.
type ReverseJournalRequest struct {
	JournalDate *time.Time `json:"journalDate"`
	Memo        *string    `json:"memo" binding:"omitempty,max=1000"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	BatchID   *string `form:"batchID"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	EntityType   *string         `json:"entityType,omitempty"`
	EntityID     *string         `json:"entityID,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string               `json:"journalID"`
	JournalNumber      string               `json:"journalNumber"`
	JournalDate        time.Time            `json:"journalDate"`
	Memo               string               `json:"memo"`
	Source             domain.JournalSource `json:"source"`
	SourceID           *string              `json:"sourceID,omitempty"`
	Status             domain.JournalStatus `json:"status"`
	BatchID            *string              `json:"batchID,omitempty"`
	IsBalanced         bool                 `json:"isBalanced"`
	TotalDebits        decimal.Decimal      `json:"totalDebits"`
	TotalCredits       decimal.Decimal      `json:"totalCredits"`
	PostedAt           *time.Time           `json:"postedAt,omitempty"`
	PostedBy           *string              `json:"postedBy,omitempty"`
	OriginalJournalID  *string              `json:"originalJournalID,omitempty"`
	ReversingJournalID *string              `json:"reversingJournalID,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	CreatedBy          string               `json:"createdBy"`
	Lines              []EntryLineResponse  `json:"lines,omitempty"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to EntryLineResponse DTO.
func ToEntryLineResponse(l domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:       l.LineID,
		LineNumber:   l.LineNumber,
		AccountID:    l.AccountID,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
		Description:  l.Description,
		EntityType:   l.EntityType,
		EntityID:     l.EntityID,
	}
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		JournalNumber:      j.JournalNumber,
		JournalDate:        j.JournalDate,
		Memo:               j.Memo,
		Source:             j.Source,
		SourceID:           j.SourceID,
		Status:             j.Status,
		BatchID:            j.BatchID,
		IsBalanced:         j.IsBalanced,
		TotalDebits:        j.TotalDebits,
		TotalCredits:       j.TotalCredits,
		PostedAt:           j.PostedAt,
		PostedBy:           j.PostedBy,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(j.Lines))
		for i, l := range j.Lines {
			resp.Lines[i] = ToEntryLineResponse(l)
		}
	}
	return resp
}

// ToJournalResponses converts a slice of domain.Journal.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i, j := range journals {
		res[i] = ToJournalResponse(&j)
	}
	return res
}

package mapping

import (
	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/models"
)

// ToModelJournal converts a domain Journal header to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		CompanyID:          d.CompanyID,
		JournalNumber:      d.JournalNumber,
		JournalSequence:    d.JournalSequence,
		JournalDate:        domain.DateOnly(d.JournalDate),
		Memo:               d.Memo,
		Source:             string(d.Source),
		SourceID:           d.SourceID,
		Status:             models.JournalStatus(d.Status),
		BatchID:            d.BatchID,
		IsBalanced:         d.IsBalanced,
		TotalDebits:        d.TotalDebits,
		TotalCredits:       d.TotalCredits,
		PostedAt:           d.PostedAt,
		PostedBy:           d.PostedBy,
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal without lines
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		CompanyID:          m.CompanyID,
		JournalNumber:      m.JournalNumber,
		JournalSequence:    m.JournalSequence,
		JournalDate:        domain.DateOnly(m.JournalDate),
		Memo:               m.Memo,
		Source:             domain.JournalSource(m.Source),
		SourceID:           m.SourceID,
		Status:             domain.JournalStatus(m.Status),
		BatchID:            m.BatchID,
		IsBalanced:         m.IsBalanced,
		TotalDebits:        m.TotalDebits,
		TotalCredits:       m.TotalCredits,
		PostedAt:           m.PostedAt,
		PostedBy:           m.PostedBy,
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalSlice converts a slice of model Journals to a slice of domain Journals
func ToDomainJournalSlice(ms []models.Journal) []domain.Journal {
	ds := make([]domain.Journal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournal(m)
	}
	return ds
}

// ToModelEntryLine converts a domain EntryLine to a model EntryLine
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:       d.LineID,
		JournalID:    d.JournalID,
		LineNumber:   d.LineNumber,
		AccountID:    d.AccountID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
		EntityType:   d.EntityType,
		EntityID:     d.EntityID,
	}
}

// ToDomainEntryLine converts a model EntryLine to a domain EntryLine
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:       m.LineID,
		JournalID:    m.JournalID,
		LineNumber:   m.LineNumber,
		AccountID:    m.AccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
		EntityType:   m.EntityType,
		EntityID:     m.EntityID,
	}
}

// ToDomainEntryLineSlice converts a slice of model EntryLines to a slice of domain EntryLines
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}

package services

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journals
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, companyID string, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a page of journals, newest first.
	ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) ([]domain.Journal, *string, error)
}

// JournalWriterSvc defines the journal lifecycle
type JournalWriterSvc interface {
	// CreateJournal validates the lines, allocates a journal number and stores a Draft journal.
	CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)

	// UpdateJournal edits the header and optionally replaces every line.
	UpdateJournal(ctx context.Context, companyID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error)

	// AddLine appends a line to a journal.
	AddLine(ctx context.Context, companyID string, journalID string, req dto.EntryLineRequest, userID string) (*domain.Journal, error)

	// DeleteLine removes a line and renumbers the rest.
	DeleteLine(ctx context.Context, companyID string, journalID string, lineID string, userID string) (*domain.Journal, error)

	// PostJournal moves a balanced Draft journal to Posted.
	PostJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error)

	// CancelJournal moves a Draft journal to Cancelled.
	CancelJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error)

	// ReverseJournal creates and posts the offsetting journal of a Posted journal.
	ReverseJournal(ctx context.Context, companyID string, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

package repositories

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
)

// JournalFilter narrows ListJournals.
type JournalFilter struct {
	Status  *domain.JournalStatus
	BatchID *string
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal with its lines.
	FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error)

	// FindJournalByIDForUpdate is FindJournalByID that also locks the journal row
	// for the rest of the surrounding transaction.
	FindJournalByIDForUpdate(ctx context.Context, companyID, journalID string) (*domain.Journal, error)

	// ListJournals retrieves journal headers newest first using token-based pagination.
	// It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, companyID string, filter JournalFilter, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// FindJournalsByBatchID retrieves the headers of every journal in a batch.
	FindJournalsByBatchID(ctx context.Context, companyID, batchID string) ([]domain.Journal, error)
}

// EntryLineReader defines read operations for entry lines
type EntryLineReader interface {
	// ListPostedLines retrieves every line of every POSTED journal of a company.
	ListPostedLines(ctx context.Context, companyID string) ([]domain.EntryLine, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal header and its lines. A taken journal
	// number yields apperrors.ErrDuplicateSequenceNumber.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournal updates the header fields of a journal (status, batch, totals, links, memo, date).
	UpdateJournal(ctx context.Context, journal domain.Journal) error

	// ReplaceJournalLines swaps the stored lines of a journal for journal.Lines.
	ReplaceJournalLines(ctx context.Context, journal domain.Journal) error

	// ReleaseBatchJournals clears batch_id on every DRAFT journal of the batch.
	ReleaseBatchJournals(ctx context.Context, companyID, batchID string, userID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	EntryLineReader
	JournalWriter
}

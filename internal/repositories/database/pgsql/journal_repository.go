package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backend/internal/models"
	"github.com/SscSPs/gl_backend/internal/utils/mapping"
	"github.com/SscSPs/gl_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// journalNumberConstraint is the unique constraint on (company_id, journal_number).
const journalNumberConstraint = "journals_company_id_journal_number_key"

const journalColumns = `journal_id, company_id, journal_number, journal_sequence, journal_date, memo,
		source, source_id, status, batch_id, is_balanced, total_debits, total_credits,
		posted_at, posted_by, original_journal_id, reversing_journal_id,
		created_at, created_by, last_updated_at, last_updated_by`

const entryLineColumns = `line_id, journal_id, line_number, account_id, debit_amount, credit_amount,
		description, entity_type, entity_id`

// PgxJournalRepository implements portsrepo.JournalRepositoryFacade using pgx.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals and their entry lines.
func newPgxJournalRepository(db querier) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func (r *PgxJournalRepository) collectHeaders(ctx context.Context, query string, args ...any) ([]domain.Journal, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	modelJournals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journals", err)
	}
	return mapping.ToDomainJournalSlice(modelJournals), nil
}

func (r *PgxJournalRepository) collectLines(ctx context.Context, query string, args ...any) ([]domain.EntryLine, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry lines", err)
	}
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.EntryLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan entry lines", err)
	}
	return mapping.ToDomainEntryLineSlice(modelLines), nil
}

func (r *PgxJournalRepository) findJournal(ctx context.Context, companyID, journalID string, forUpdate bool) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE company_id = $1 AND journal_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.DB.Query(ctx, query, companyID, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal "+journalID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, notFoundOrInternal(err, "failed to find journal by ID "+journalID)
	}
	journal := mapping.ToDomainJournal(m)

	lines, err := r.collectLines(ctx,
		`SELECT `+entryLineColumns+` FROM journal_entries WHERE journal_id = $1 ORDER BY line_number;`, journalID)
	if err != nil {
		return nil, err
	}
	journal.Lines = lines
	return &journal, nil
}

// FindJournalByID retrieves a journal with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	return r.findJournal(ctx, companyID, journalID, false)
}

// FindJournalByIDForUpdate locks the journal row until the surrounding transaction ends.
func (r *PgxJournalRepository) FindJournalByIDForUpdate(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	return r.findJournal(ctx, companyID, journalID, true)
}

// ListJournals retrieves journal headers ordered by (journal_date, journal_sequence) descending.
// One extra row is fetched to decide whether a next page exists.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string, filter portsrepo.JournalFilter, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	fetchLimit := limit + 1

	args := []any{companyID}
	conds := []string{"company_id = $1"}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		conds = append(conds, "status = "+arg(string(*filter.Status)))
	}
	if filter.BatchID != nil {
		conds = append(conds, "batch_id = "+arg(*filter.BatchID))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		// Tuple comparison keeps the keyset condition index friendly.
		conds = append(conds, fmt.Sprintf("(journal_date, journal_sequence) < (%s, %s)", arg(lastDate), arg(lastSeq)))
	}

	query := `SELECT ` + journalColumns + ` FROM journals WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY journal_date DESC, journal_sequence DESC LIMIT ` + arg(fetchLimit) + `;`

	journals, err := r.collectHeaders(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.JournalSequence)
		nextTokenVal = &token
	}
	return journals, nextTokenVal, nil
}

// FindJournalsByBatchID retrieves the headers of every journal in a batch.
func (r *PgxJournalRepository) FindJournalsByBatchID(ctx context.Context, companyID, batchID string) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals
		WHERE company_id = $1 AND batch_id = $2
		ORDER BY journal_sequence;`
	return r.collectHeaders(ctx, query, companyID, batchID)
}

// ListPostedLines retrieves every line of every POSTED journal of a company.
func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, companyID string) ([]domain.EntryLine, error) {
	query := `
		SELECT e.line_id, e.journal_id, e.line_number, e.account_id, e.debit_amount, e.credit_amount,
		       e.description, e.entity_type, e.entity_id
		FROM journal_entries e
		JOIN journals j ON j.journal_id = e.journal_id
		WHERE j.company_id = $1 AND j.status = 'POSTED'
		ORDER BY j.journal_sequence, e.line_number;
	`
	return r.collectLines(ctx, query, companyID)
}

func queueLineInserts(batch *pgx.Batch, lines []domain.EntryLine) {
	query := `INSERT INTO journal_entries (` + entryLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	for _, line := range lines {
		m := mapping.ToModelEntryLine(line)
		batch.Queue(query,
			m.LineID, m.JournalID, m.LineNumber, m.AccountID, m.DebitAmount, m.CreditAmount,
			m.Description, m.EntityType, m.EntityID,
		)
	}
}

// SaveJournal persists a journal header and its lines in one batch.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journals (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);`,
		m.JournalID, m.CompanyID, m.JournalNumber, m.JournalSequence, m.JournalDate, m.Memo,
		m.Source, m.SourceID, m.Status, m.BatchID, m.IsBalanced, m.TotalDebits, m.TotalCredits,
		m.PostedAt, m.PostedBy, m.OriginalJournalID, m.ReversingJournalID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	queueLineInserts(batch, journal.Lines)

	if err := sendBatch(ctx, r.DB, batch); err != nil {
		if isUniqueViolation(err, journalNumberConstraint) {
			return apperrors.NewLedgerError(apperrors.ErrDuplicateSequenceNumber, m.JournalNumber, "")
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: journal with ID %s already exists", apperrors.ErrDuplicate, m.JournalID)
		}
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}
	return nil
}

// UpdateJournal updates the header fields of a journal.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		UPDATE journals
		SET journal_date = $3, memo = $4, status = $5, batch_id = $6, is_balanced = $7,
		    total_debits = $8, total_credits = $9, posted_at = $10, posted_by = $11,
		    original_journal_id = $12, reversing_journal_id = $13,
		    last_updated_at = $14, last_updated_by = $15
		WHERE company_id = $1 AND journal_id = $2;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.CompanyID, m.JournalID, m.JournalDate, m.Memo, m.Status, m.BatchID, m.IsBalanced,
		m.TotalDebits, m.TotalCredits, m.PostedAt, m.PostedBy,
		m.OriginalJournalID, m.ReversingJournalID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+m.JournalID, err)
	}
	return expectOneRow(tag, "journal", m.JournalID)
}

// ReplaceJournalLines swaps the stored lines of a journal for journal.Lines.
func (r *PgxJournalRepository) ReplaceJournalLines(ctx context.Context, journal domain.Journal) error {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journals WHERE company_id = $1 AND journal_id = $2);`,
		journal.CompanyID, journal.JournalID,
	).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check journal "+journal.JournalID, err)
	}
	if !exists {
		return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journal.JournalID)
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM journal_entries WHERE journal_id = $1;`, journal.JournalID)
	queueLineInserts(batch, journal.Lines)
	if err := sendBatch(ctx, r.DB, batch); err != nil {
		return apperrors.NewAppError(500, "failed to replace lines of journal "+journal.JournalID, err)
	}
	return nil
}

// ReleaseBatchJournals clears batch_id on every DRAFT journal of the batch.
func (r *PgxJournalRepository) ReleaseBatchJournals(ctx context.Context, companyID, batchID string, userID string) error {
	query := `
		UPDATE journals
		SET batch_id = NULL, last_updated_by = $3
		WHERE company_id = $1 AND batch_id = $2 AND status = 'DRAFT';
	`
	if _, err := r.DB.Exec(ctx, query, companyID, batchID, userID); err != nil {
		return apperrors.NewAppError(500, "failed to release journals of batch "+batchID, err)
	}
	return nil
}

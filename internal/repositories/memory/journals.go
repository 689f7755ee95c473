package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/gl_backend/internal/apperrors"
	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backend/internal/utils/pagination"
)

type journalRepository struct {
	a access
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func (r *journalRepository) FindJournalByID(_ context.Context, companyID, journalID string) (*domain.Journal, error) {
	var found *domain.Journal
	r.a.read(func(st *state) {
		j, ok := st.journals[journalID]
		if !ok || j.CompanyID != companyID {
			return
		}
		j.Lines = append([]domain.EntryLine(nil), st.lines[journalID]...)
		found = &j
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

// FindJournalByIDForUpdate needs no extra locking: units of work are serialized.
func (r *journalRepository) FindJournalByIDForUpdate(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	return r.FindJournalByID(ctx, companyID, journalID)
}

func (r *journalRepository) ListJournals(_ context.Context, companyID string, filter portsrepo.JournalFilter, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	var all []domain.Journal
	r.a.read(func(st *state) {
		for _, j := range st.journals {
			if j.CompanyID != companyID {
				continue
			}
			if filter.Status != nil && j.Status != *filter.Status {
				continue
			}
			if filter.BatchID != nil && (j.BatchID == nil || *j.BatchID != *filter.BatchID) {
				continue
			}
			all = append(all, j)
		}
	})
	sort.Slice(all, func(i, k int) bool { return newerJournal(all[i], all[k]) })

	start := 0
	if nextToken != nil && *nextToken != "" {
		date, seq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor := domain.Journal{JournalDate: date, JournalSequence: seq}
		start = sort.Search(len(all), func(i int) bool { return newerJournal(cursor, all[i]) })
	}

	result := page(all, limit, start)
	var token *string
	if len(result) == limit && start+limit < len(all) {
		last := result[len(result)-1]
		t := pagination.EncodeToken(last.JournalDate, last.JournalSequence)
		token = &t
	}
	return result, token, nil
}

// newerJournal orders journals by (date, sequence) descending.
func newerJournal(a, b domain.Journal) bool {
	if !a.JournalDate.Equal(b.JournalDate) {
		return a.JournalDate.After(b.JournalDate)
	}
	return a.JournalSequence > b.JournalSequence
}

func (r *journalRepository) FindJournalsByBatchID(_ context.Context, companyID, batchID string) ([]domain.Journal, error) {
	var result []domain.Journal
	r.a.read(func(st *state) {
		for _, j := range st.journals {
			if j.CompanyID == companyID && j.BatchID != nil && *j.BatchID == batchID {
				result = append(result, j)
			}
		}
	})
	sort.Slice(result, func(i, k int) bool { return result[i].JournalSequence < result[k].JournalSequence })
	return result, nil
}

func (r *journalRepository) ListPostedLines(_ context.Context, companyID string) ([]domain.EntryLine, error) {
	var result []domain.EntryLine
	r.a.read(func(st *state) {
		for id, j := range st.journals {
			if j.CompanyID == companyID && j.Status == domain.JournalPosted {
				result = append(result, st.lines[id]...)
			}
		}
	})
	return result, nil
}

func (r *journalRepository) SaveJournal(_ context.Context, journal domain.Journal) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.journals[journal.JournalID]; ok {
			return fmt.Errorf("%w: journal with ID %s already exists", apperrors.ErrDuplicate, journal.JournalID)
		}
		for _, other := range st.journals {
			if other.CompanyID == journal.CompanyID && other.JournalNumber == journal.JournalNumber {
				return apperrors.NewLedgerError(apperrors.ErrDuplicateSequenceNumber, journal.JournalNumber, "")
			}
		}
		st.lines[journal.JournalID] = append([]domain.EntryLine(nil), journal.Lines...)
		journal.Lines = nil
		st.journals[journal.JournalID] = journal
		return nil
	})
}

func (r *journalRepository) UpdateJournal(_ context.Context, journal domain.Journal) error {
	return r.a.write(func(st *state) error {
		existing, ok := st.journals[journal.JournalID]
		if !ok || existing.CompanyID != journal.CompanyID {
			return apperrors.ErrNotFound
		}
		journal.Lines = nil
		st.journals[journal.JournalID] = journal
		return nil
	})
}

func (r *journalRepository) ReplaceJournalLines(_ context.Context, journal domain.Journal) error {
	return r.a.write(func(st *state) error {
		existing, ok := st.journals[journal.JournalID]
		if !ok || existing.CompanyID != journal.CompanyID {
			return apperrors.ErrNotFound
		}
		st.lines[journal.JournalID] = append([]domain.EntryLine(nil), journal.Lines...)
		return nil
	})
}

func (r *journalRepository) ReleaseBatchJournals(_ context.Context, companyID, batchID string, userID string) error {
	return r.a.write(func(st *state) error {
		for id, j := range st.journals {
			if j.CompanyID == companyID && j.Status == domain.JournalDraft && j.BatchID != nil && *j.BatchID == batchID {
				j.BatchID = nil
				j.LastUpdatedBy = userID
				st.journals[id] = j
			}
		}
		return nil
	})
}

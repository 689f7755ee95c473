package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func TestFormatJournalNumber(t *testing.T) {
	assert.Equal(t, "JE-000001", domain.FormatJournalNumber("JE-", 1))
	assert.Equal(t, "GL000042", domain.FormatJournalNumber("GL", 42))
	assert.Equal(t, "JE-1234567", domain.FormatJournalNumber("JE-", 1234567))
}

func TestDefaultGLSettings(t *testing.T) {
	s := domain.DefaultGLSettings("c1", "u1", time.Now())
	assert.Equal(t, "JE-", s.AutoJournalNumberPrefix)
	assert.Equal(t, int64(1), s.NextJournalNumber)
	assert.Equal(t, int64(1), s.NextBatchNumber)
	assert.True(t, s.LockPostedEntries)
	assert.False(t, s.AllowFuturePosting)
	assert.False(t, s.RequireBatchApproval)
	assert.NotNil(t, s.DefaultPostingRules)
}

func TestGLSettings_PostingDateViolation(t *testing.T) {
	today := day("2024-03-15")
	tests := []struct {
		name     string
		settings domain.GLSettings
		date     time.Time
		wantOK   bool
	}{
		{"no period configured, today", domain.GLSettings{}, today, true},
		{"future date blocked", domain.GLSettings{}, day("2024-03-16"), false},
		{"future date allowed", domain.GLSettings{AllowFuturePosting: true}, day("2024-06-01"), true},
		{"before open period", domain.GLSettings{CurrentPeriodOpen: dayPtr("2024-03-01")}, day("2024-02-29"), false},
		{"first day of open period", domain.GLSettings{CurrentPeriodOpen: dayPtr("2024-03-01")}, day("2024-03-01"), true},
		{"before open period even with future allowed", domain.GLSettings{CurrentPeriodOpen: dayPtr("2024-03-01"), AllowFuturePosting: true}, day("2024-01-10"), false},
		{"on next period open", domain.GLSettings{CurrentPeriodOpen: dayPtr("2024-01-01"), NextPeriodOpen: dayPtr("2024-03-10")}, day("2024-03-10"), false},
		{"day before next period", domain.GLSettings{CurrentPeriodOpen: dayPtr("2024-01-01"), NextPeriodOpen: dayPtr("2024-03-10")}, day("2024-03-09"), true},
		{"next period ignored when future allowed", domain.GLSettings{NextPeriodOpen: dayPtr("2024-03-10"), AllowFuturePosting: true}, day("2024-03-12"), true},
		{"time of day ignored", domain.GLSettings{}, today.Add(23 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := tt.settings.PostingDateViolation(tt.date, today)
			if tt.wantOK {
				assert.Empty(t, reason)
			} else {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

package services

import (
	"context"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
)

// SettingsSvcFacade manages period locks, numbering and posting rules.
type SettingsSvcFacade interface {
	// GetSettings returns the company's settings, creating defaults on first use.
	GetSettings(ctx context.Context, companyID string, userID string) (*domain.GLSettings, error)

	// UpdateSettings applies a partial update.
	UpdateSettings(ctx context.Context, companyID string, req dto.UpdateSettingsRequest, userID string) (*domain.GLSettings, error)
}

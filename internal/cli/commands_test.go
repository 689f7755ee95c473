package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/SscSPs/gl_backend/internal/middleware"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryLoader() (*config.Config, error) {
	return &config.Config{
		StorageDriver: config.StorageMemory,
		ImportMaxRows: 100,
		JWTSecret:     "cli-secret",
		JWTIssuer:     "gl-cli",
	}, nil
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(memoryLoader)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestImport_LocalFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "gl.csv")
	require.NoError(t, os.WriteFile(file, []byte("Date,Account,Amount\n2024-06-01,Cash,10\n2024-06-01,Sales,-10\n"), 0o600))

	out, err := run(t, "import", file, "--company", "c-1")
	require.NoError(t, err)

	var result domain.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.InsertedCount)
}

func TestImport_ReportsBadRows(t *testing.T) {
	file := filepath.Join(t.TempDir(), "gl.csv")
	require.NoError(t, os.WriteFile(file, []byte("Date,Account,Amount\nyesterday,Cash,10\n"), 0o600))

	_, err := run(t, "import", file, "--company", "c-1")
	assert.ErrorContains(t, err, "1 rows could not be imported")
}

func TestCommandsRequireCompany(t *testing.T) {
	for _, args := range [][]string{{"unmatched"}, {"automap"}, {"recalculate"}, {"import", "gl.csv"}} {
		_, err := run(t, args...)
		assert.ErrorContains(t, err, "--company is required", args)
	}
}

func TestRecalculate(t *testing.T) {
	out, err := run(t, "recalculate", "--company", "c-1", "--mode", "simple")
	require.NoError(t, err)

	var resp dto.SimpleRecalculationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Zero(t, resp.AccountsUpdated)

	_, err = run(t, "recalculate", "--company", "c-1", "--mode", "full")
	assert.ErrorContains(t, err, "--mode must be")
}

func TestAutoMapAndUnmatched_EmptyCompany(t *testing.T) {
	out, err := run(t, "automap", "--company", "c-1")
	require.NoError(t, err)
	assert.Contains(t, out, `"mappingsCreated": 0`)

	out, err = run(t, "unmatched", "--company", "c-1")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "STORAGE_DRIVER=postgres")
}

func TestToken_IsAcceptedByAuthMiddleware(t *testing.T) {
	out, err := run(t, "token", "--user", "ops", "--company", "c-1", "--ttl", "5m")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/companies/:company_id/ping",
		middleware.AuthMiddleware("cli-secret", "gl-cli"),
		middleware.RequireCompanyAccess("company_id"),
		func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/companies/c-1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(out))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

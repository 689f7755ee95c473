package analytics_test

import (
	"testing"

	"github.com/SscSPs/gl_backend/internal/platform/analytics"
	"github.com/stretchr/testify/assert"
)

func TestNew_WithoutKeyIsDisabled(t *testing.T) {
	c := analytics.New("", "", nil)
	assert.False(t, c.Enabled())

	// a disabled client swallows calls
	assert.NotPanics(t, func() {
		c.Enqueue("user-1", "journal_posted", map[string]any{"company_id": "c1"})
		c.Close()
	})
}

func TestNilClientIsDisabled(t *testing.T) {
	var c *analytics.Client
	assert.False(t, c.Enabled())
	assert.NotPanics(t, func() { c.Enqueue("u", "e", nil) })
}

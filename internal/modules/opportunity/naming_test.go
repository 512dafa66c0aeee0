package opportunity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pipelinecrm/internal/domain"
)

func TestGenerateName(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	name, err := GenerateName("Test Corp", "Jane Doe", domain.ContextNewBusiness, date)
	assert.NoError(t, err)
	assert.Equal(t, "Test Corp - Jane Doe - New Business - Jan 2025", name)
}

func TestGenerateName_Deterministic(t *testing.T) {
	date := time.Date(2025, 6, 30, 12, 45, 0, 0, time.UTC)

	first, err := GenerateName("Acme Foods", "Bob Smith", domain.ContextExpansion, date)
	assert.NoError(t, err)
	second, err := GenerateName("Acme Foods", "Bob Smith", domain.ContextExpansion, date)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateName_TrimsWhitespace(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	name, err := GenerateName("  Test Corp ", " Jane Doe  ", domain.ContextSampling, date)
	assert.NoError(t, err)
	assert.Equal(t, "Test Corp - Jane Doe - Sampling - Mar 2025", name)
}

func TestGenerateName_EmptyOrganization(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	name, err := GenerateName("", "Jane Doe", domain.ContextNewBusiness, date)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, name)

	name, err = GenerateName("   ", "Jane Doe", domain.ContextNewBusiness, date)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, name)
}

func TestGenerateName_EmptyPrincipal(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	name, err := GenerateName("Test Corp", "", domain.ContextNewBusiness, date)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, name)
}

func TestGenerateName_UnknownContext(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	name, err := GenerateName("Test Corp", "Jane Doe", domain.Context("BOGUS"), date)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, name)
}

func TestContextLabels(t *testing.T) {
	assert.Equal(t, "New Business", domain.ContextNewBusiness.Label())
	assert.Equal(t, "Follow-up", domain.ContextFollowUp.Label())
	assert.Empty(t, domain.Context("NOPE").Label())
}

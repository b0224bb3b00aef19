package feed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	alerts, err := Load(filepath.Join("testdata", "alerts.yaml"))
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	fac := alerts[0]
	assert.Equal(t, "fac-118", fac.ID)
	assert.Equal(t, domain.SeverityCritical, fac.Severity)
	assert.Equal(t, domain.StatusActive, fac.Status)
	assert.Equal(t, "factures", fac.Module)
	require.NotNil(t, fac.Impact)
	assert.Equal(t, 12500.0, fac.Impact.Financial)
	assert.Equal(t, domain.ImpactHigh, fac.Impact.Operational)
	assert.Equal(t, time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC), fac.CreatedAt)

	delay := alerts[1]
	_, err = uuid.Parse(delay.ID)
	assert.NoError(t, err, "missing id should be filled with a uuid")
	assert.Equal(t, domain.SeverityWarning, delay.Severity, "severity is case-insensitive")
	assert.Equal(t, domain.StatusActive, delay.Status, "missing status means active")
	assert.Nil(t, delay.Impact)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), delay.CreatedAt)

	bc := alerts[2]
	assert.Equal(t, domain.StatusEscalated, bc.Status)
	assert.Equal(t, "direction.achats", bc.EscalatedTo)
	assert.Equal(t, time.Date(2025, 4, 28, 12, 30, 0, 0, time.UTC), bc.CreatedAt, "times are normalized to UTC")
	require.NotNil(t, bc.UpdatedAt)
	assert.Equal(t, time.UTC, bc.UpdatedAt.Location())
}

func TestLoad_JSON(t *testing.T) {
	alerts, err := Load(filepath.Join("testdata", "alerts.json"))
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, "sub-3", a.ID)
	assert.Equal(t, domain.StatusResolved, a.Status)
	assert.Equal(t, "Agrément signé", a.Note)
	require.NotNil(t, a.ResolvedAt)
	assert.Equal(t, time.Date(2025, 4, 22, 16, 45, 0, 0, time.UTC), *a.ResolvedAt)
}

func TestLoad_InvalidNamesEveryProblem(t *testing.T) {
	alerts, err := Load(filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)
	assert.Nil(t, alerts)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	got := map[string]bool{}
	for _, fe := range verr.Errors {
		got[fe.Error()] = true
	}
	for _, want := range []string{
		"alerts[1].title is required",
		"alerts[1].severity must be one of [critical warning info success]",
		"alerts[1].status must be one of [active acknowledged resolved escalated archived]",
		"alerts[1].impact.financial must be at least 0",
		"alerts[1].impact.operational must be one of [low medium high]",
		"alerts[1].resolved_at must not be before created_at",
		"alerts[2].created_at is required",
		"alerts[2].id duplicates an earlier record",
	} {
		assert.True(t, got[want], "missing error %q in %v", want, err)
	}
	for _, fe := range verr.Errors {
		assert.NotEqual(t, 0, fe.Index, "first record is valid")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_EmptyDocument(t *testing.T) {
	alerts, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, alerts)

	alerts, err = Parse(strings.NewReader("alerts: []\n"))
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("alerts: [this is: not: valid"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding feed")
}

func TestParse_BadTimestamp(t *testing.T) {
	_, err := Parse(strings.NewReader(`
alerts:
  - title: x
    severity: info
    created_at: yesterday
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yesterday")
}

func TestParse_UpdatedAtEqualToCreatedAtIsValid(t *testing.T) {
	alerts, err := Parse(strings.NewReader(`
alerts:
  - title: x
    severity: success
    created_at: 2025-05-02T09:00:00Z
    updated_at: 2025-05-02T09:00:00Z
`))
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.SeveritySuccess, alerts[0].Severity)
}

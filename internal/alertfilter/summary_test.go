package alertfilter

import (
	"testing"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_Counts(t *testing.T) {
	alerts := sampleAlerts()
	alerts[0].Impact = &domain.Impact{Financial: 15000}
	alerts[1].Impact = &domain.Impact{Financial: 999} // resolved: not exposed
	alerts[2].Impact = &domain.Impact{Financial: 2500}

	s := Summarize(alerts)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.BySeverity[domain.SeverityCritical])
	assert.Equal(t, 1, s.BySeverity[domain.SeverityWarning])
	assert.Equal(t, 1, s.ByStatus[domain.StatusArchived])
	assert.Equal(t, 3, s.Open)
	assert.Equal(t, 17500.0, s.FinancialExposure)
}

func TestSummary_ResolutionRate(t *testing.T) {
	s := Summarize(sampleAlerts())
	// 4 non-archived alerts, 1 resolved.
	assert.InDelta(t, 25.0, s.ResolutionRate(), 0.001)
}

func TestSummary_ResolutionRateEmpty(t *testing.T) {
	assert.Zero(t, Summarize(nil).ResolutionRate())
}

package alertfilter

import "github.com/alexanderramin/bmo/internal/domain"

// Summary aggregates an alert list into dashboard KPIs.
type Summary struct {
	Total      int
	BySeverity map[domain.Severity]int
	ByStatus   map[domain.Status]int
	// Open counts alerts still requiring attention.
	Open int
	// FinancialExposure sums the financial impact of open alerts.
	FinancialExposure float64
}

// Summarize counts alerts by severity and status.
func Summarize(alerts []*domain.Alert) Summary {
	s := Summary{
		BySeverity: make(map[domain.Severity]int, len(domain.Severities)),
		ByStatus:   make(map[domain.Status]int, len(domain.Statuses)),
	}
	for _, a := range alerts {
		if a == nil {
			continue
		}
		s.Total++
		s.BySeverity[a.Severity]++
		s.ByStatus[a.Status]++
		if a.Status.IsOpen() {
			s.Open++
			s.FinancialExposure += a.FinancialImpact()
		}
	}
	return s
}

// ResolutionRate is the percentage of non-archived alerts that are resolved.
// Returns 0 when there is nothing to resolve.
func (s Summary) ResolutionRate() float64 {
	considered := s.Total - s.ByStatus[domain.StatusArchived]
	if considered <= 0 {
		return 0
	}
	return float64(s.ByStatus[domain.StatusResolved]) / float64(considered) * 100
}

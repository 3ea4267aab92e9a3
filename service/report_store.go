package service

import (
	"sync"

	"github.com/mygage/credit-report-service/dto"
)

// ReportStore holds the single most-recent validated report for the
// session. Readers never observe a partially written report, and a
// cleared store reads back as absent rather than stale.
type ReportStore struct {
	mu     sync.RWMutex
	report *dto.Report
}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Set replaces the slot with a copy of the report.
func (s *ReportStore) Set(report dto.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = &report
}

// Clear empties the slot.
func (s *ReportStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = nil
}

// Get returns the current report, or ok=false when none is held.
func (s *ReportStore) Get() (dto.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return dto.Report{}, false
	}
	return *s.report, true
}

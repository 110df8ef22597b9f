package app

import (
	"context"
	"fmt"

	"github.com/example/hrdesk/internal/ports/primary"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// SalaryHistoryServiceImpl implements the SalaryHistoryService interface.
type SalaryHistoryServiceImpl struct {
	historyRepo secondary.SalaryHistoryRepository
}

// NewSalaryHistoryService creates a new SalaryHistoryService with injected dependencies.
func NewSalaryHistoryService(historyRepo secondary.SalaryHistoryRepository) *SalaryHistoryServiceImpl {
	return &SalaryHistoryServiceImpl{historyRepo: historyRepo}
}

// ListHistory lists records newest first.
func (s *SalaryHistoryServiceImpl) ListHistory(ctx context.Context, filters primary.HistoryFilters) ([]*primary.SalaryHistoryEntry, error) {
	records, err := s.historyRepo.List(ctx, secondary.SalaryHistoryFilters{
		EmployeeID: filters.EmployeeID,
		PositionID: filters.PositionID,
		OpenOnly:   filters.OpenOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list salary history: %w", err)
	}

	entries := make([]*primary.SalaryHistoryEntry, len(records))
	for i, r := range records {
		entries[i] = recordToHistoryEntry(r)
	}
	return entries, nil
}

// OpenRecords returns the employee's records that are still in effect.
func (s *SalaryHistoryServiceImpl) OpenRecords(ctx context.Context, employeeID string) ([]*primary.SalaryHistoryEntry, error) {
	return s.ListHistory(ctx, primary.HistoryFilters{EmployeeID: employeeID, OpenOnly: true})
}

func recordToHistoryEntry(r *secondary.SalaryHistoryRecord) *primary.SalaryHistoryEntry {
	return &primary.SalaryHistoryEntry{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		PositionID: r.PositionID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Salary:     r.Salary,
		Note:       r.Note,
		Active:     r.Active,
		UserID:     r.UserID,
	}
}

// Ensure SalaryHistoryServiceImpl implements the interface
var _ primary.SalaryHistoryService = (*SalaryHistoryServiceImpl)(nil)

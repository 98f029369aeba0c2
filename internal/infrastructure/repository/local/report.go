package local

import (
	"context"
	"slices"

	"github.com/riskibarqy/koralink/internal/domain/report"
)

func (s *Store) ListReports(_ context.Context) ([]report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.reports), nil
}

func (s *Store) AddReport(ctx context.Context, params report.AddParams) (report.Report, error) {
	id, err := s.newID("report")
	if err != nil {
		return report.Report{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := report.Report{
		ID:           id,
		ReporterID:   params.ReporterID,
		ReporterName: params.ReporterName,
		TargetType:   params.TargetType,
		TargetID:     params.TargetID,
		TargetName:   params.TargetName,
		Reason:       params.Reason,
		Details:      params.Details,
		Status:       report.StatusOpen,
		CreatedAt:    s.now().UTC(),
	}

	next := append(slices.Clone(s.reports), item)
	if err := s.saveReports(ctx, next); err != nil {
		return report.Report{}, err
	}
	s.reports = next
	return item, nil
}

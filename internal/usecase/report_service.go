package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/domain/report"
)

type SubmitReportInput struct {
	TargetType string
	TargetID   string
	TargetName string
	Reason     string
	Details    string
}

type ReportService struct {
	repo report.Repository
}

func NewReportService(repo report.Repository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Submit(ctx context.Context, reporter player.Profile, input SubmitReportInput) (report.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Submit")
	defer span.End()

	targetType := report.TargetType(strings.ToLower(strings.TrimSpace(input.TargetType)))
	if _, ok := report.AllTargetTypes[targetType]; !ok {
		return report.Report{}, fmt.Errorf("%w: unknown target type %q", ErrInvalidInput, input.TargetType)
	}
	input.TargetID = strings.TrimSpace(input.TargetID)
	input.Reason = strings.TrimSpace(input.Reason)
	if input.TargetID == "" {
		return report.Report{}, fmt.Errorf("%w: target id is required", ErrInvalidInput)
	}
	if input.Reason == "" {
		return report.Report{}, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	created, err := s.repo.AddReport(ctx, report.AddParams{
		ReporterID:   reporter.PlayerID,
		ReporterName: reporter.Name,
		TargetType:   targetType,
		TargetID:     input.TargetID,
		TargetName:   strings.TrimSpace(input.TargetName),
		Reason:       input.Reason,
		Details:      strings.TrimSpace(input.Details),
	})
	if err != nil {
		return report.Report{}, fmt.Errorf("add report: %w", err)
	}
	return created, nil
}

func (s *ReportService) List(ctx context.Context) ([]report.Report, error) {
	items, err := s.repo.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return items, nil
}

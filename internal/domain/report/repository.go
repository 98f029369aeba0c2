package report

import "context"

type Repository interface {
	ListReports(ctx context.Context) ([]Report, error)
	AddReport(ctx context.Context, params AddParams) (Report, error)
}

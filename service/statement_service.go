package service

import (
	"github.com/mygage/credit-report-service/dto"

	"go.uber.org/zap"
)

// StatementService composes the scoring statement from a validated
// profile and the aggregated per-section document text.
type StatementService struct {
	logger *zap.Logger
}

func NewStatementService(logger *zap.Logger) *StatementService {
	return &StatementService{logger: logger}
}

// Build merges profile and documents into one Statement. The spending
// and rent series and the debt/utilization figures are the named
// placeholder defaults until real document parsing replaces them.
func (s *StatementService) Build(profile dto.CustomerProfile, documents map[dto.SectionKey]string) dto.Statement {
	s.logger.Info("building statement",
		zap.String("customer", profile.Name),
		zap.Float64("income_monthly", profile.IncomeMonthly))

	return dto.Statement{
		Customer: dto.StatementCustomer{
			Name:          profile.Name,
			Email:         profile.Email,
			IncomeMonthly: profile.IncomeMonthly,
			DebtsMonthly:  dto.DefaultMonthlyDebts,
			Utilization:   dto.DefaultUtilization,
		},
		Documents:       documents,
		MonthlySpending: dto.DefaultMonthlySeries(),
		RentPayments:    dto.DefaultMonthlySeries(),
	}
}

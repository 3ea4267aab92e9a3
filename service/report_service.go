package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mygage/credit-report-service/dto"

	"go.uber.org/zap"
)

// CompletionClient is the boundary to the external scoring collaborator.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ReportService asks the scoring collaborator for a report and
// normalizes the reply into the canonical Report entity.
type ReportService struct {
	scoring CompletionClient
	store   *ReportStore
	logger  *zap.Logger
}

func NewReportService(scoring CompletionClient, store *ReportStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		scoring: scoring,
		store:   store,
		logger:  logger,
	}
}

// Generate scores a statement. On success the stored report is replaced;
// on any failure the store is cleared so downstream readers see an
// absent report, never a partial or stale one.
func (s *ReportService) Generate(ctx context.Context, statement dto.Statement) (dto.Report, error) {
	prompt, err := buildScoringPrompt(statement)
	if err != nil {
		s.store.Clear()
		return dto.Report{}, fmt.Errorf("build scoring prompt: %w", err)
	}

	raw, err := s.scoring.Complete(ctx, prompt)
	if err != nil {
		s.store.Clear()
		return dto.Report{}, fmt.Errorf("scoring collaborator: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		s.store.Clear()
		return dto.Report{}, dto.ErrCollaboratorEmpty
	}

	report, err := dto.ParseReport([]byte(stripCodeFences(raw)))
	if err != nil {
		s.store.Clear()
		return dto.Report{}, fmt.Errorf("parse report JSON: %w", err)
	}

	if err := report.Validate(); err != nil {
		s.store.Clear()
		s.logger.Warn("collaborator returned invalid report", zap.Error(err))
		return dto.Report{}, fmt.Errorf("invalid report: %w", err)
	}

	s.store.Set(report)
	s.logger.Info("report generated",
		zap.Float64("credit_score", report.CreditScore),
		zap.Int("risk_percent", report.RiskPercent))
	return report, nil
}

// buildScoringPrompt embeds the statement JSON together with the risk
// bucket rules and the exact report field contract.
func buildScoringPrompt(statement dto.Statement) (string, error) {
	statementJSON, err := json.MarshalIndent(statement, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal statement: %w", err)
	}

	return fmt.Sprintf(`You will receive a JSON object called "statement".
1. Analyse income, spending, debts, utilization.
2. Follow these rules:
   - debtToIncome > 0.6  => riskPercent = 80
   - debtToIncome > 0.3  => riskPercent = 50
   - else                => riskPercent = 20
3. Reply ONLY with valid JSON containing:
{
  "creditScore": number,       // 300-850
  "incomeData": number,        // monthly income
  "debtToIncome": number,      // 0-1
  "utilizationRate": number,   // 0-1
  "eligibility": string,       // short feedback
  "spending": number[12],      // passthrough
  "rentTimeline": number[12],  // passthrough
  "riskPercent": number        // 20/50/80
}

statement:
`+"```json\n%s\n```", statementJSON), nil
}

// stripCodeFences removes a surrounding markdown code fence, fenced or
// not, and narrows the remainder to the single JSON object inside it.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```json")
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}

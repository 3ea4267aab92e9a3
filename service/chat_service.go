package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mygage/credit-report-service/dto"
	"github.com/mygage/credit-report-service/utils"

	"go.uber.org/zap"
)

// intentRule pairs a message predicate with its handler. Rules are
// evaluated in declaration order; the first match wins and everything
// else falls through to the free-form collaborator prompt.
type intentRule struct {
	name    string
	pattern *regexp.Regexp
	handle  func(ctx context.Context, message string, report *dto.Report) (string, error)
}

// ChatService answers free-text questions about the stored report.
type ChatService struct {
	completion CompletionClient
	store      *ReportStore
	offers     []dto.BankOffer
	rules      []intentRule
	logger     *zap.Logger
}

func NewChatService(completion CompletionClient, store *ReportStore, offers []dto.BankOffer, logger *zap.Logger) *ChatService {
	s := &ChatService{
		completion: completion,
		store:      store,
		offers:     offers,
		logger:     logger,
	}
	s.rules = []intentRule{
		{
			name:    "best_housing_loan",
			pattern: regexp.MustCompile(`(?i)best\s+housing\s+loan`),
			handle:  s.answerHousingLoans,
		},
		{
			name:    "explain_report",
			pattern: regexp.MustCompile(`(?i)explain more on my report`),
			handle:  s.answerReportExplanation,
		},
	}
	return s
}

// Ask resolves a chat message. The caller-provided report context wins;
// otherwise the stored report is used, and having none is tolerated.
func (s *ChatService) Ask(ctx context.Context, req dto.ChatRequest) (string, error) {
	report := req.Context
	if report == nil {
		if stored, ok := s.store.Get(); ok {
			report = &stored
		}
	}

	for _, rule := range s.rules {
		if rule.pattern.MatchString(req.Message) {
			s.logger.Info("chat intent matched", zap.String("intent", rule.name))
			answer, err := rule.handle(ctx, req.Message, report)
			if err != nil {
				return "", err
			}
			return utils.SanitizeAnswer(answer), nil
		}
	}

	answer, err := s.answerFreeForm(ctx, req.Message, report)
	if err != nil {
		return "", err
	}
	return utils.SanitizeAnswer(answer), nil
}

// answerHousingLoans filters the static offer dataset by the report's
// income eligibility and ranks the survivors by ascending flat rate.
// No collaborator call is involved.
func (s *ChatService) answerHousingLoans(_ context.Context, _ string, report *dto.Report) (string, error) {
	if report == nil {
		return "I don't have your credit report yet. Please submit your statement first so I can match housing loans to your income.", nil
	}

	var eligible []dto.BankOffer
	for _, offer := range s.offers {
		if offer.MinimumMonthlyIncome <= report.IncomeData {
			eligible = append(eligible, offer)
		}
	}
	if len(eligible) == 0 {
		return fmt.Sprintf("None of the housing loans in my dataset accept a monthly income of RM%.0f. Consider improving your income profile first.", report.IncomeData), nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].FlatRateInterest < eligible[j].FlatRateInterest
	})
	if len(eligible) > 3 {
		eligible = eligible[:3]
	}

	var b strings.Builder
	b.WriteString("Based on your monthly income of RM")
	fmt.Fprintf(&b, "%.0f, these are the best housing loans for you:\n", report.IncomeData)
	for i, offer := range eligible {
		fmt.Fprintf(&b, "%d. %s %s - %.2f%% flat rate, min income RM%.0f, up to %d years\n",
			i+1, offer.Bank, offer.Product, offer.FlatRateInterest,
			offer.MinimumMonthlyIncome, offer.MaxTenureYears)
	}
	return b.String(), nil
}

// answerReportExplanation walks the collaborator through a fixed
// numbered template built from the report JSON.
func (s *ChatService) answerReportExplanation(ctx context.Context, _ string, report *dto.Report) (string, error) {
	prompt := fmt.Sprintf(`You are a seasoned loan officer. Here is the client's credit-report JSON:

%s

Fill the numbered template below. Do NOT repeat these instructions, only supply the completed sections.

1) Quick Summary – 2-3 lines (credit score, income RM, DTI %%, utilization %%)
2) Observations / Suggestions – exactly 3 calm, actionable tips to improve loan eligibility
3) Interesting Insights – one thoughtful pattern you notice
4) Closing Note – one short, reassuring sentence

Never use the dollar sign; replace it with "RM".`, reportJSON(report))

	return s.completion.Complete(ctx, prompt)
}

func (s *ChatService) answerFreeForm(ctx context.Context, message string, report *dto.Report) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful finance assistant. The user already has this report:

%s

Answer clearly and concisely.
Q: %s
A:`, reportJSON(report), message)

	return s.completion.Complete(ctx, prompt)
}

func reportJSON(report *dto.Report) string {
	if report == nil {
		return "null"
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "null"
	}
	return string(data)
}

package dto

import (
	"encoding/json"
	"fmt"
)

// Risk buckets derived from the debt-to-income ratio.
const (
	RiskLow    = 20
	RiskMedium = 50
	RiskHigh   = 80
)

// RiskBucket maps a debt-to-income ratio to its risk bucket:
// >0.6 is high, >0.3 is medium, everything else low.
func RiskBucket(debtToIncome float64) int {
	switch {
	case debtToIncome > 0.6:
		return RiskHigh
	case debtToIncome > 0.3:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Report is the canonical scored financial snapshot returned by the
// scoring collaborator and held by the report store.
type Report struct {
	CreditScore     float64   `json:"creditScore"`
	IncomeData      float64   `json:"incomeData"`
	DebtToIncome    float64   `json:"debtToIncome"`
	UtilizationRate float64   `json:"utilizationRate"`
	Eligibility     string    `json:"eligibility"`
	Spending        []float64 `json:"spending"`
	RentTimeline    []float64 `json:"rentTimeline"`
	RiskPercent     int       `json:"riskPercent"`
}

var reportFields = []string{
	"creditScore", "incomeData", "debtToIncome", "utilizationRate",
	"eligibility", "spending", "rentTimeline", "riskPercent",
}

// ParseReport decodes a collaborator reply into a Report. Every contract
// field must be present in the JSON: an absent field cannot be told apart
// from a zero value after decoding, so it is rejected here.
func ParseReport(data []byte) (Report, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return Report{}, err
	}
	for _, field := range reportFields {
		if _, ok := keys[field]; !ok {
			return Report{}, fmt.Errorf("reply is missing %q", field)
		}
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, err
	}
	return report, nil
}

// Validate checks the collaborator's report against the contract: field
// ranges, 12-month series lengths, and riskPercent consistency with the
// debt-to-income bucket rule. Any violation is a generation failure.
func (r *Report) Validate() error {
	if r.CreditScore < 300 || r.CreditScore > 850 {
		return fmt.Errorf("creditScore %.0f outside [300, 850]", r.CreditScore)
	}
	if r.IncomeData < 0 {
		return fmt.Errorf("incomeData %.2f is negative", r.IncomeData)
	}
	if r.DebtToIncome < 0 || r.DebtToIncome > 1 {
		return fmt.Errorf("debtToIncome %.2f outside [0, 1]", r.DebtToIncome)
	}
	if r.UtilizationRate < 0 || r.UtilizationRate > 1 {
		return fmt.Errorf("utilizationRate %.2f outside [0, 1]", r.UtilizationRate)
	}
	if r.Eligibility == "" {
		return fmt.Errorf("eligibility is missing")
	}
	if len(r.Spending) != 12 {
		return fmt.Errorf("spending has %d entries, want 12", len(r.Spending))
	}
	if len(r.RentTimeline) != 12 {
		return fmt.Errorf("rentTimeline has %d entries, want 12", len(r.RentTimeline))
	}
	if r.RiskPercent != RiskLow && r.RiskPercent != RiskMedium && r.RiskPercent != RiskHigh {
		return fmt.Errorf("riskPercent %d not one of 20/50/80", r.RiskPercent)
	}
	if want := RiskBucket(r.DebtToIncome); r.RiskPercent != want {
		return fmt.Errorf("riskPercent %d inconsistent with debtToIncome %.2f (want %d)",
			r.RiskPercent, r.DebtToIncome, want)
	}
	return nil
}

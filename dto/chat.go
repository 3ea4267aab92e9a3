package dto

// ChatRequest is the ask endpoint's body. Context is the report the
// question is about; nil falls back to the stored report, and the
// assistant must tolerate having none at all.
type ChatRequest struct {
	Message string  `json:"message"`
	Context *Report `json:"context"`
}

// ChatResponse carries the assistant's answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// BankOffer is one row of the static housing-loan offer dataset.
type BankOffer struct {
	Bank                 string  `json:"bank"`
	Product              string  `json:"product"`
	MinimumMonthlyIncome float64 `json:"minimumMonthlyIncome"`
	FlatRateInterest     float64 `json:"flatRateInterest"`
	MaxTenureYears       int     `json:"maxTenureYears"`
}

package dto

// SectionKey identifies one of the fixed document upload categories.
type SectionKey string

const (
	SectionBank     SectionKey = "bank"
	SectionIncome   SectionKey = "income"
	SectionSavings  SectionKey = "savings"
	SectionPersonal SectionKey = "personal"
)

// SectionKeys returns the full fixed set of sections in canonical order.
func SectionKeys() []SectionKey {
	return []SectionKey{SectionBank, SectionIncome, SectionSavings, SectionPersonal}
}

// FileKind is the declared media kind of an uploaded document.
type FileKind string

const (
	FileKindImage FileKind = "image"
	FileKindPDF   FileKind = "pdf"
	FileKindOther FileKind = "other"
)

// Placeholder values standing in for real spending/rent/debt parsing.
// Pending replacement by a document-derived implementation; until that
// lands they must stay exactly these values.
const (
	DefaultMonthlyDebts = 2100.0
	DefaultUtilization  = 0.2
)

var defaultMonthlySeries = [12]float64{
	2000, 1800, 1900, 2100, 2200, 2300, 2400, 2500, 2600, 2700, 2800, 2900,
}

// DefaultMonthlySeries returns a fresh copy of the placeholder 12-month
// series used for both monthlySpending and rentPayments.
func DefaultMonthlySeries() []float64 {
	series := make([]float64, len(defaultMonthlySeries))
	copy(series, defaultMonthlySeries[:])
	return series
}

// StatementCustomer is the customer block of a Statement.
type StatementCustomer struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	IncomeMonthly float64 `json:"incomeMonthly"`
	DebtsMonthly  float64 `json:"debtsMonthly"`
	Utilization   float64 `json:"utilization"`
}

// Statement is the normalized bundle sent to the scoring collaborator.
// Built fresh per submission and never mutated after being sent.
type Statement struct {
	Customer        StatementCustomer     `json:"customer"`
	Documents       map[SectionKey]string `json:"documents"`
	MonthlySpending []float64             `json:"monthlySpending"`
	RentPayments    []float64             `json:"rentPayments"`
}

// CustomerProfile holds the validated user-entered fields merged into a
// Statement alongside the extracted document text.
type CustomerProfile struct {
	Name          string
	Email         string
	IncomeMonthly float64
	DateOfBirth   string
}

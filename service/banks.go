package service

import "github.com/mygage/credit-report-service/dto"

// DefaultBankOffers is the static housing-loan offer dataset the chat
// assistant answers eligibility questions from.
func DefaultBankOffers() []dto.BankOffer {
	return []dto.BankOffer{
		{Bank: "Maybank", Product: "MaxiHome Flexi", MinimumMonthlyIncome: 3500, FlatRateInterest: 4.35, MaxTenureYears: 35},
		{Bank: "CIMB", Product: "HomeLoan Flexi", MinimumMonthlyIncome: 3000, FlatRateInterest: 4.5, MaxTenureYears: 35},
		{Bank: "Public Bank", Product: "5 Home Plan", MinimumMonthlyIncome: 4000, FlatRateInterest: 4.22, MaxTenureYears: 35},
		{Bank: "RHB", Product: "Full Flexi Home Loan", MinimumMonthlyIncome: 3000, FlatRateInterest: 4.6, MaxTenureYears: 35},
		{Bank: "Hong Leong Bank", Product: "MortgagePlus", MinimumMonthlyIncome: 5000, FlatRateInterest: 4.1, MaxTenureYears: 30},
		{Bank: "AmBank", Product: "Home Link", MinimumMonthlyIncome: 8000, FlatRateInterest: 3.95, MaxTenureYears: 30},
	}
}

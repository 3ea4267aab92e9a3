package dto

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// StatementRequest carries the customer fields of a statement submission.
// File sections arrive alongside it in the same multipart form.
type StatementRequest struct {
	UserName string `form:"userName"`
	Email    string `form:"email"`
	Income   string `form:"income"`
	DOB      string `form:"dob"`
}

// Validate checks the profile fields and returns the parsed profile.
// Validation happens before any extraction or network call; a failed
// profile never produces a Statement.
func (r *StatementRequest) Validate() (CustomerProfile, error) {
	var problems []string

	name := strings.TrimSpace(r.UserName)
	if len(name) < 3 {
		problems = append(problems, "name must be at least 3 characters")
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		problems = append(problems, "email is not a valid address")
	}
	if strings.TrimSpace(r.DOB) == "" {
		problems = append(problems, "date of birth is required")
	}

	var income float64
	if strings.TrimSpace(r.Income) == "" {
		problems = append(problems, "income is required")
	} else {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Income), 64)
		if err != nil || parsed < 0 {
			problems = append(problems, "income must be a non-negative number")
		} else {
			income = parsed
		}
	}

	if len(problems) > 0 {
		return CustomerProfile{}, errors.New(strings.Join(problems, "; "))
	}

	return CustomerProfile{
		Name:          name,
		Email:         strings.TrimSpace(r.Email),
		IncomeMonthly: income,
		DateOfBirth:   strings.TrimSpace(r.DOB),
	}, nil
}

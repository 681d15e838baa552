package model

import "time"

// PayRecord is one pay period's income and deduction snapshot. Records are
// immutable inputs: the engine only ever reads an ordered (most-recent-first)
// slice of them.
type PayRecord struct {
	Timestamp              time.Time `json:"timestamp"`
	GrossIncome            float64   `json:"gross_income"`
	Tax                    float64   `json:"tax"`
	OtherDeductions        float64   `json:"other_deductions"`
	RetirementContribution float64   `json:"retirement_contribution"`
}

// TotalDeductions returns tax + other deductions + retirement contribution.
func (r PayRecord) TotalDeductions() float64 {
	return r.Tax + r.OtherDeductions + r.RetirementContribution
}

// NetIncome returns gross income minus all deductions. May be negative for
// malformed records; validation flags those as warnings.
func (r PayRecord) NetIncome() float64 {
	return r.GrossIncome - r.TotalDeductions()
}

// MonthKey returns the calendar month the record falls in, used for
// duplicate-month detection.
func (r PayRecord) MonthKey() string {
	return r.Timestamp.Format("2006-01")
}

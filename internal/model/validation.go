package model

// IssueCode identifies a validation finding.
type IssueCode string

const (
	// Blocking errors.
	IssueInsufficientData IssueCode = "insufficient_data"
	IssueNegativeField    IssueCode = "negative_field"

	// Warnings.
	IssueImplausibleIncome     IssueCode = "implausible_income"
	IssueDeductionsExceedGross IssueCode = "deductions_exceed_gross"
	IssueFutureDated           IssueCode = "future_dated"
	IssueExtremeVolatility     IssueCode = "extreme_volatility"
	IssueDuplicateMonth        IssueCode = "duplicate_month"
)

// Issue is one validation finding. RecordIndex is -1 for findings that span
// the whole series rather than a single record.
type Issue struct {
	Code        IssueCode `json:"code"`
	RecordIndex int       `json:"record_index"`
	Field       string    `json:"field,omitempty"`
	Message     string    `json:"message"`
}

// ValidationResult is the outcome of validating a record series. Errors block
// analysis; warnings are logged and feed the recovery filter.
type ValidationResult struct {
	Errors     []Issue `json:"errors,omitempty"`
	Warnings   []Issue `json:"warnings,omitempty"`
	CanProceed bool    `json:"can_proceed"`
}

// Package constants provides shared constants for the payroll-forecast application.
package constants

// Statutory payroll constants. Amounts are in VND.
const (
	// PersonalDeduction is subtracted from taxable income for every taxpayer.
	PersonalDeduction = 11_000_000

	// DependentDeduction is subtracted from taxable income per declared dependent.
	DependentDeduction = 4_400_000

	// SocialInsuranceRate (BHXH) as a fraction of the insurance base.
	SocialInsuranceRate = "0.08"

	// HealthInsuranceRate (BHYT) as a fraction of the insurance base.
	HealthInsuranceRate = "0.015"

	// UnemploymentInsuranceRate (BHTN) as a fraction of the insurance base.
	UnemploymentInsuranceRate = "0.01"
)

// Workday baselines used for proration.
const (
	// StandardWorkdays is the baseline for partial-month proration.
	StandardWorkdays = 22

	// ExtendedWorkdays is the baseline for paid leave and overtime-day
	// extrapolation. Attendance between the two baselines pays the full
	// contracted salary.
	ExtendedWorkdays = 26

	// MaxDaysPerMonth is the attendance ceiling above which a warning is raised.
	MaxDaysPerMonth = 31

	// MaxCount bounds parsed whole counts such as dependents.
	MaxCount = 1_000_000
)

// Number formatting constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100

	// MaxPercentage is the upper bound accepted for percent deductions
	MaxPercentage = 100

	// CurrencySymbol is appended to formatted currency amounts.
	CurrencySymbol = "₫"

	// CurrencyCode is used where the symbol cannot be rendered (PDF core fonts).
	CurrencyCode = "VND"

	// GroupSeparator is the thousands separator used by user-facing numerals.
	GroupSeparator = "."

	// DecimalMark is the alternative decimal mark accepted in user input.
	DecimalMark = ","
)

// Deduction modes as they appear in configuration and API payloads.
const (
	DeductionModePercent = "percent"
	DeductionModeAmount  = "vnd"

	// DefaultDeductionMode applies when no mode is configured.
	DefaultDeductionMode = DeductionModeAmount
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF is the PDF payslip output format
	OutputFormatPDF = "pdf"
)

// Report sheets selectable for export.
const (
	SheetSalary   = "salary"
	SheetExpenses = "expenses"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultPayslipFile is where the PDF payslip is written when no file is configured.
	DefaultPayslipFile = "payslip.pdf"

	// EnvPrefix prefixes environment overrides of configuration keys.
	EnvPrefix = "PAYROLL"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server.
	ShutdownTimeoutSeconds = 30
)

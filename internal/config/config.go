// Package config defines the data structures related to configuration and
// includes functions for loading, validating and converting a worksheet
// config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/payroll-forecast/pkg/cashflow"
	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/payroll"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds one payroll worksheet and the settings used to render
// it.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty" json:"logging"`
	Output  OutputConfig  `yaml:"output,omitempty" json:"output"`
	Salary  SalaryConfig  `yaml:"salary" json:"salary"`
	Cash    CashConfig    `yaml:"cash" json:"cash"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `yaml:"format,omitempty" json:"format" validate:"omitempty,oneof=json console"`
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string   `yaml:"format,omitempty" json:"format" validate:"omitempty,oneof=pretty csv pdf"`
	Sheets []string `yaml:"sheets,omitempty" json:"sheets" validate:"dive,oneof=salary expenses"`
	File   string   `yaml:"file,omitempty" json:"file"` // pdf destination
}

// SalaryConfig holds the raw salary inputs. Amounts are grouped numerals
// ("20.000.000") or plain numbers; they are normalized on conversion.
type SalaryConfig struct {
	AgreedSalary    string          `yaml:"agreedSalary" json:"agreedSalary" validate:"max=32"`
	InsuranceSalary string          `yaml:"insuranceSalary" json:"insuranceSalary" validate:"max=32"`
	ActualWorkdays  string          `yaml:"actualWorkdays" json:"actualWorkdays" validate:"max=16"`
	PaidLeaveDays   string          `yaml:"paidLeaveDays" json:"paidLeaveDays" validate:"max=16"`
	Dependents      string          `yaml:"dependents" json:"dependents" validate:"max=8"`
	OtherAllowances string          `yaml:"otherAllowances" json:"otherAllowances" validate:"max=32"`
	OtherDeductions DeductionConfig `yaml:"otherDeductions" json:"otherDeductions"`
}

// DeductionConfig holds the other-deductions input and the mode it is read in.
type DeductionConfig struct {
	Mode  string `yaml:"mode" json:"mode" validate:"omitempty,oneof=percent percentage % vnd amount"`
	Value string `yaml:"value" json:"value" validate:"max=32"`
}

// CashConfig holds the opening cash and the planned expenses.
type CashConfig struct {
	OpeningCash string             `yaml:"openingCash" json:"openingCash" validate:"max=32"`
	Expenses    []cashflow.Expense `yaml:"expenses" json:"expenses" validate:"max=500,dive"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.sheets", []string{constants.SheetSalary, constants.SheetExpenses})
	v.SetDefault("output.file", constants.DefaultPayslipFile)
	v.SetDefault("salary.otherDeductions.mode", constants.DefaultDeductionMode)

	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &configuration, nil
}

// Validate checks the struct tags of the configuration and the deduction
// input. Any failure makes the worksheet unusable.
func (c *Configuration) Validate() error {
	if err := validation.ValidateStruct(validation.NewStructValidator("yaml"), c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if deduction := c.Salary.Deduction(); !deduction.Valid {
		return fmt.Errorf("invalid configuration: %w: %s", payroll.ErrInvalidDeduction, deduction.Error)
	}

	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	in := c.Salary.ToInputs()
	wv := validation.WorksheetValidator{
		AgreedSalary:    in.AgreedSalary,
		InsuranceSalary: in.InsuranceSalary,
		OtherAllowances: in.OtherAllowances,
		OpeningCash:     c.Cash.OpeningCashValue(),
		ActualWorkdays:  in.ActualWorkdays,
		PaidLeaveDays:   in.PaidLeaveDays,
		Dependents:      in.Dependents,
		Expenses:        c.Cash.Expenses,
	}
	return wv.ValidateAll()
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/payroll-forecast/internal/config"
	"github.com/iwvelando/payroll-forecast/internal/logging"
	"github.com/iwvelando/payroll-forecast/internal/worksheet"
	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/output"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf")
	outputFileFlag := flag.String("output-file", "", "pdf destination override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ws, err := worksheet.Compute(logger, conf.Salary, conf.Cash)
	if err != nil {
		logger.Fatal("failed to compute worksheet",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range ws.Warnings {
		logger.Warn("Worksheet warning: "+warning,
			zap.String("op", "main"),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, ws)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, ws, conf.Output.Sheets)
	case constants.OutputFormatPDF:
		outputFile := conf.Output.File
		if *outputFileFlag != "" {
			outputFile = *outputFileFlag
		}
		err = writePayslip(outputFile, ws, conf.Output.Sheets)
		if err == nil {
			logger.Info("payslip written",
				zap.String("op", "main"),
				zap.String("file", outputFile),
			)
		}
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}

func writePayslip(path string, ws *worksheet.Worksheet, sheets []string) (err error) {
	if path == "" {
		path = constants.DefaultPayslipFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return output.WritePayslipPDF(file, ws, sheets)
}

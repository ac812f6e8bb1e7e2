// Package server exposes the payroll worksheet over a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/payroll-forecast/internal/config"
	"github.com/iwvelando/payroll-forecast/internal/worksheet"
	"github.com/iwvelando/payroll-forecast/pkg/cashflow"
	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/iwvelando/payroll-forecast/pkg/format"
	"github.com/iwvelando/payroll-forecast/pkg/output"
	"github.com/iwvelando/payroll-forecast/pkg/payroll"
	"github.com/iwvelando/payroll-forecast/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	validate    *validator.Validate
}

// NewHandler constructs the HTTP handler that serves the payroll API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: cfg.BodySizeBytes(),
		version:     trimmedVersion,
		validate:    validation.NewStructValidator("json"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Post("/deduction/validate", h.handleValidateDeduction)
		r.Post("/calculate", h.handleCalculate)
		r.Post("/cashflow", h.handleCashFlow)
		r.Post("/worksheet", h.handleWorksheetUpload)
		r.Post("/export", h.handleExport)
	})

	return r
}

// requestLogger logs every request once it has been served.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				logger.Info("request served",
					zap.String("op", "server.requestLogger"),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("requestId", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

type deductionRequest struct {
	Mode  string `json:"mode" validate:"max=16"`
	Value string `json:"value" validate:"max=32"`
}

type worksheetRequest struct {
	Salary config.SalaryConfig `json:"salary"`
	Cash   config.CashConfig   `json:"cash"`
}

type cashFlowRequest struct {
	OpeningCash string             `json:"openingCash" validate:"max=32"`
	NetSalary   string             `json:"netSalary" validate:"required,max=32"`
	Expenses    []cashflow.Expense `json:"expenses" validate:"max=500,dive"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleValidateDeduction always answers 200; the valid flag tells the
// caller whether a calculation may run.
func (h *handler) handleValidateDeduction(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleValidateDeduction"

	var req deductionRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	h.writeJSON(w, http.StatusOK, validation.ValidateDeduction(validation.ParseDeductionMode(req.Mode), req.Value))
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	var req worksheetRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	ws, ok := h.compute(w, req.Salary, req.Cash, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, newWorksheetResponse(ws))
}

// handleCashFlow re-runs reconciliation alone. The caller supplies the net
// salary of its most recent calculation.
func (h *handler) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCashFlow"

	var req cashFlowRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result := cashflow.Reconcile(format.ParseGrouped(req.OpeningCash), format.ParseGrouped(req.NetSalary), req.Expenses)

	var warnings []string
	for i, expense := range req.Expenses {
		if warning := validation.ValidateExpenseAmount(cashflow.Number(i), expense.Description, expense.Amount); warning != "" {
			warnings = append(warnings, warning)
		}
	}
	if warning := validation.ValidateBalance(result.RemainingBalance); warning != "" {
		warnings = append(warnings, warning)
	}

	h.writeJSON(w, http.StatusOK, cashFlowResultResponse{
		CashFlow: newCashFlowResponse(result, req.Expenses),
		Warnings: warnings,
	})
}

func (h *handler) handleWorksheetUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleWorksheetUpload"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseMultipartForm(h.maxBodySize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing worksheet file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read worksheet: %v", err), op)
		return
	}

	conf, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := conf.Validate(); err != nil {
		h.respondValidationError(w, err, op)
		return
	}

	ws, ok := h.compute(w, conf.Salary, conf.Cash, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, newWorksheetResponse(ws))
}

// handleExport renders the worksheet as a CSV or PDF download. The sheets
// query parameter defaults to every sheet when absent.
func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	query := r.URL.Query()
	exportFormat := strings.ToLower(strings.TrimSpace(query.Get("format")))
	if exportFormat == "" {
		exportFormat = constants.OutputFormatCSV
	}
	if exportFormat != constants.OutputFormatCSV && exportFormat != constants.OutputFormatPDF {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("expected export format of %s or %s, got %s", constants.OutputFormatCSV, constants.OutputFormatPDF, exportFormat), op)
		return
	}

	sheets := []string{constants.SheetSalary, constants.SheetExpenses}
	if values, present := query["sheets"]; present {
		sheets = splitSheets(values)
	}
	if _, err := output.SelectSheets(sheets); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var req worksheetRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	ws, ok := h.compute(w, req.Salary, req.Cash, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch exportFormat {
	case constants.OutputFormatPDF:
		contentType = "application/pdf"
		err := output.WritePayslipPDF(&buf, ws, sheets)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render export: %v", err), op)
			return
		}
	default:
		contentType = "text/csv; charset=utf-8"
		err := output.CsvFormat(&buf, ws, sheets)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render export: %v", err), op)
			return
		}
	}

	filename := fmt.Sprintf("payroll-report-%s.%s", time.Now().Format("2006-01-02"), exportFormat)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func splitSheets(values []string) []string {
	var sheets []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
				sheets = append(sheets, trimmed)
			}
		}
	}
	return sheets
}

// compute runs the worksheet and writes the error response itself when the
// calculation is refused.
func (h *handler) compute(w http.ResponseWriter, salary config.SalaryConfig, cash config.CashConfig, op string) (*worksheet.Worksheet, bool) {
	ws, err := worksheet.Compute(h.logger, salary, cash)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidDeduction) {
			h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return nil, false
	}
	return ws, true
}

// decodeJSON reads a size-limited JSON body into dst and validates its
// struct tags. On failure the error response has already been written.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON payload: %v", err), op)
		return false
	}

	if err := validation.ValidateStruct(h.validate, dst); err != nil {
		h.respondValidationError(w, err, op)
		return false
	}
	return true
}

func (h *handler) respondValidationError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, payroll.ErrInvalidDeduction) {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	var details validation.StructErrors
	if !errors.As(err, &details) {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.logger.Debug("request validation failed",
		zap.String("op", op),
		zap.Error(err),
	)
	h.writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "request validation failed",
		Details: details,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("op", op), zap.Int("status", status), zap.String("error", msg))
	} else {
		h.logger.Debug("request rejected", zap.String("op", op), zap.Int("status", status), zap.String("error", msg))
	}
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}

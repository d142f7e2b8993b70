package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"payroll-reconciliation-backend/internal/logger"
	service "payroll-reconciliation-backend/internal/services/reconciliation"
	"payroll-reconciliation-backend/internal/table"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReconciliationHandler struct {
	service *service.ReconciliationService
}

func NewReconciliationHandler(s *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: s}
}

// ReconcileNames matches uploaded names and attaches bank accounts.
// Form files: input (required), database (optional when a database is
// configured), accountants (optional).
func (h *ReconciliationHandler) ReconcileNames(c *gin.Context) {
	h.reconcile(c, "نتائج_مطابقة_الاسماء", h.service.ReconcileNames)
}

// ReconcileSections matches uploaded names and attaches job attributes.
func (h *ReconciliationHandler) ReconcileSections(c *gin.Context) {
	h.reconcile(c, "نتائج_مطابقة_الدوائر", h.service.ReconcileSections)
}

type reconcileFunc func(ctx context.Context, req service.Request) (*service.Report, error)

func (h *ReconciliationHandler) reconcile(c *gin.Context, filename string, run reconcileFunc) {
	input, err := readUpload(c, "input", true)
	if err != nil {
		h.fail(c, err)
		return
	}
	db, err := readUpload(c, "database", false)
	if err != nil {
		h.fail(c, err)
		return
	}
	accountants, err := readUpload(c, "accountants", false)
	if err != nil {
		h.fail(c, err)
		return
	}

	report, err := run(c.Request.Context(), service.Request{
		Database:    db,
		Input:       input,
		Accountants: accountants,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("X-Run-ID", report.Run.ID.String())
	if sendTable(c, report.Table(), filename) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run":      report.Run,
		"results":  report.Results,
		"warnings": collectWarnings(input, db, accountants),
	})
}

// LinkAccountants appends accountant columns to an uploaded result table.
func (h *ReconciliationHandler) LinkAccountants(c *gin.Context) {
	results, err := readUpload(c, "results", true)
	if err != nil {
		h.fail(c, err)
		return
	}
	accountants, err := readUpload(c, "accountants", true)
	if err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.service.LinkTable(results, accountants)
	if err != nil {
		h.fail(c, err)
		return
	}
	if sendTable(c, out, "نتائج_مطابقة_مع_المحاسبين") {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"headers": out.Headers,
		"rows":    out.Rows,
	})
}

// readUpload parses the multipart file in field. A missing optional file
// yields a nil table.
func readUpload(c *gin.Context, field string, required bool) (*table.Table, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			return nil, fmt.Errorf("%w: %s file required", table.ErrUnreadable, field)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", table.ErrUnreadable, field, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", table.ErrUnreadable, field, err)
	}
	defer f.Close()

	return table.Read(field, fh.Filename, f)
}

// sendTable writes t as a download when ?format=csv or ?format=xlsx is set
// and reports whether it did.
func sendTable(c *gin.Context, t *table.Table, filename string) bool {
	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch c.Query("format") {
	case "csv":
		err = t.WriteCSV(&buf)
		filename += ".csv"
		contentType = contentTypeCSV
	case "xlsx":
		err = t.WriteXLSX(&buf)
		filename += ".xlsx"
		contentType = contentTypeXLSX
	default:
		return false
	}
	if err != nil {
		logger.Error().Err(err).Msg("render result table")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render result table"})
		return true
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
	return true
}

func collectWarnings(tables ...*table.Table) gin.H {
	out := gin.H{}
	for _, t := range tables {
		if t != nil && len(t.Warnings) > 0 {
			out[t.Name] = t.Warnings
		}
	}
	return out
}

// fail maps structural failures to distinct responses. A run in which no
// row matched is not a failure and never reaches here.
func (h *ReconciliationHandler) fail(c *gin.Context, err error) {
	var missing *table.MissingColumnError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  err.Error(),
			"code":   "MISSING_COLUMN",
			"table":  missing.Table,
			"column": missing.Column,
		})
	case errors.Is(err, table.ErrUnreadable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "UNREADABLE_TABLE"})
	case errors.Is(err, service.ErrNoDatabase):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "NO_DATABASE"})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("reconciliation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "INTERNAL_ERROR"})
	}
}

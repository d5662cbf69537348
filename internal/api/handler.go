package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-parser/internal/extractor"
	"github.com/insightdelivered/statement-parser/internal/logger"
	"github.com/insightdelivered/statement-parser/internal/models"
	"github.com/insightdelivered/statement-parser/internal/parser"
	"github.com/insightdelivered/statement-parser/internal/writer"
)

// Version is reported by the health endpoint and every parse response.
var Version = "1.0.0"

// ParseResponse is the JSON response from the /api/parse endpoint.
// Amounts are fixed two-decimal strings to keep them exact.
type ParseResponse struct {
	Success              bool                    `json:"success"`
	Error                string                  `json:"error,omitempty"`
	CustomerName         string                  `json:"customerName"`
	Address              string                  `json:"address"`
	TotalDeposits        string                  `json:"totalDeposits"`
	TotalATMWithdrawals  string                  `json:"totalAtmWithdrawals"`
	CategorizedPurchases []Purchase              `json:"categorizedPurchases"`
	LineCount            int                     `json:"lineCount"`
	Clean                bool                    `json:"clean"`
	SkippedLines         []models.LineDiagnostic `json:"skippedLines,omitempty"`
	Version              string                  `json:"version,omitempty"`
}

// Purchase is a categorized purchase in a ParseResponse.
type Purchase struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Layout parser.Layout
	Log    *slog.Logger
}

// RegisterRoutes mounts the API on app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// HandleParse parses one statement. The text comes from, in order of
// preference, an uploaded "file" (.txt or .pdf), a "text" form field, or a
// text/plain request body. format=csv returns the purchases as CSV.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	text, err := h.statementText(c)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, extractor.ErrNoText) {
			status = fiber.StatusUnprocessableEntity
		}
		return writeError(c, status, err.Error())
	}

	p := parser.New(text, parser.WithLayout(h.Layout), parser.WithLogger(h.requestLog(c)))
	summary := p.Summary()

	h.requestLog(c).Info("statement parsed",
		"lines", summary.LineCount,
		"purchases", len(summary.CategorizedPurchases),
		"skipped", len(summary.SkippedLines),
	)

	if strings.EqualFold(c.Query("format", c.FormValue("format")), "csv") {
		var buf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: c.Query("header") != "false"}
		if err := w.Write(&buf, summary); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(buf.Bytes())
	}

	return c.JSON(newParseResponse(summary))
}

func (h *Handler) statementText(c *fiber.Ctx) (string, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open upload: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		return extractor.Extract(fh.Filename, data)
	}

	if text := c.FormValue("text"); text != "" {
		return text, nil
	}

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMETextPlain) {
		return extractor.ExtractPlain(c.Body())
	}

	return "", errors.New("no statement provided: upload a 'file' or send a 'text' field")
}

func (h *Handler) requestLog(c *fiber.Ctx) *slog.Logger {
	l := h.Log
	if l == nil {
		l = logger.Default()
	}
	if id, ok := c.Locals(requestIDKey).(string); ok && id != "" {
		l = l.With("request_id", id)
	}
	return l
}

func newParseResponse(s *models.StatementSummary) ParseResponse {
	// never null in JSON
	purchases := make([]Purchase, 0, len(s.CategorizedPurchases))
	for _, txn := range s.CategorizedPurchases {
		purchases = append(purchases, Purchase{
			Date:        txn.Date,
			Amount:      txn.Amount.StringFixed(2),
			Description: txn.Description,
		})
	}

	return ParseResponse{
		Success:              true,
		CustomerName:         s.CustomerName,
		Address:              s.Address,
		TotalDeposits:        s.TotalDeposits.StringFixed(2),
		TotalATMWithdrawals:  s.TotalATMWithdrawals.StringFixed(2),
		CategorizedPurchases: purchases,
		LineCount:            s.LineCount,
		Clean:                s.Clean(),
		SkippedLines:         s.SkippedLines,
		Version:              Version,
	}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success:              false,
		Error:                msg,
		CategorizedPurchases: []Purchase{},
	})
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/bank-statement-tool/internal/extractor"
	"github.com/insightdelivered/bank-statement-tool/internal/logger"
	"github.com/insightdelivered/bank-statement-tool/internal/models"
	"github.com/insightdelivered/bank-statement-tool/internal/parser"
	"github.com/insightdelivered/bank-statement-tool/internal/writer"
)

// PageBreak separates pages in the extractedText form field.
const PageBreak = "\n---PAGE_BREAK---\n"

// NoTransactionsNotice is shown instead of a table when nothing was parsed.
const NoTransactionsNotice = "No valid transactions found."

const downloadName = "bank_statement.xlsx"

var errNoInput = errors.New("no file uploaded: use form field 'file'")

// TransactionRow is one row of the JSON table, in display column order.
type TransactionRow struct {
	Date           string      `json:"date"`
	Particulars    string      `json:"particulars"`
	Deposit        json.Number `json:"deposit"`
	Withdrawals    json.Number `json:"withdrawals"`
	ClosingBalance string      `json:"closingBalance"`
}

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success         bool               `json:"success"`
	Error           string             `json:"error,omitempty"`
	ID              string             `json:"id,omitempty"`
	Count           int                `json:"count"`
	Pages           int                `json:"pages,omitempty"`
	AccountNumber   string             `json:"accountNumber,omitempty"`
	Transactions    []TransactionRow   `json:"transactions"`
	TotalDeposit    json.Number        `json:"totalDeposit,omitempty"`
	TotalWithdrawal json.Number        `json:"totalWithdrawal,omitempty"`
	Notice          string             `json:"notice,omitempty"`
	Version         string             `json:"version,omitempty"`
	DebugLines      []models.DebugLine `json:"debugLines,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Log         zerolog.Logger
	Version     string
	MaxUploadMB int
	StaticDir   string
}

// NewApp builds the fiber application with middleware and routes.
func (h *Handler) NewApp() *fiber.App {
	maxMB := h.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 32
	}

	app := fiber.New(fiber.Config{
		AppName:               "bank-statement-tool",
		BodyLimit:             maxMB << 20,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestLogger(h.Log))
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
	app.Post("/api/convert/xlsx", h.HandleDownload)

	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
	}
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

// HandleConvert parses the uploaded statement and returns the transaction table.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	id := uuid.NewString()
	log := h.Log.With().Str("conversion_id", id).Logger()

	info, err := h.parseUpload(c, log)
	if err != nil {
		return err
	}

	rows := make([]TransactionRow, 0, len(info.Transactions))
	for _, rec := range info.Transactions {
		rows = append(rows, TransactionRow{
			Date:           rec.Date,
			Particulars:    rec.Narration,
			Deposit:        json.Number(rec.Deposit.StringFixed(2)),
			Withdrawals:    json.Number(rec.Withdrawal.StringFixed(2)),
			ClosingBalance: rec.ClosingBalance.String(),
		})
	}
	deposits, withdrawals := parser.Totals(info.Transactions)

	resp := ConvertResponse{
		Success:         true,
		ID:              id,
		Count:           len(rows),
		Pages:           info.Pages,
		AccountNumber:   info.AccountNumber,
		Transactions:    rows,
		TotalDeposit:    json.Number(deposits.StringFixed(2)),
		TotalWithdrawal: json.Number(withdrawals.StringFixed(2)),
		Version:         h.Version,
	}
	if len(rows) == 0 {
		resp.Notice = NoTransactionsNotice
	}
	if c.FormValue("debug") == "true" {
		resp.DebugLines = info.DebugLines
	}

	log.Info().Int("pages", info.Pages).Int("transactions", len(rows)).Msg("Statement converted")
	return c.JSON(resp)
}

// HandleDownload parses the uploaded statement and returns it as a spreadsheet.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	id := uuid.NewString()
	log := h.Log.With().Str("conversion_id", id).Logger()

	info, err := h.parseUpload(c, log)
	if err != nil {
		return err
	}
	if len(info.Transactions) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, NoTransactionsNotice)
	}

	var buf bytes.Buffer
	w := &writer.XLSXWriter{}
	if err := w.Write(&buf, info.Transactions); err != nil {
		log.Error().Err(err).Msg("Spreadsheet generation failed")
		return fiber.NewError(fiber.StatusInternalServerError, "spreadsheet generation failed")
	}

	log.Info().Int("transactions", len(info.Transactions)).Int("bytes", buf.Len()).Msg("Spreadsheet generated")
	c.Attachment(downloadName)
	c.Set(fiber.HeaderContentType, writer.XLSXContentType)
	return c.Send(buf.Bytes())
}

// parseUpload reads pages from the extractedText field or the uploaded PDF
// and runs them through the parser.
func (h *Handler) parseUpload(c *fiber.Ctx, log zerolog.Logger) (*models.StatementInfo, error) {
	if text := c.FormValue("extractedText"); text != "" {
		return parser.Parse(parser.SplitPages(strings.Split(text, PageBreak))), nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, errNoInput.Error())
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "only PDF files are supported")
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("reading upload: %v", err))
	}
	defer file.Close()

	ctx := logger.WithContext(context.Background(), log)
	pages, err := extractor.ExtractPages(ctx, file, fh.Size)
	if err != nil {
		log.Warn().Err(err).Str("file", fh.Filename).Msg("PDF extraction failed")
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}
	return parser.Parse(pages), nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(ConvertResponse{
		Success:      false,
		Error:        err.Error(),
		Transactions: []TransactionRow{},
	})
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
		return err
	}
}

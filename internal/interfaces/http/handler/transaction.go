package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/holycity/portal/internal/application/finance"
	"github.com/holycity/portal/internal/domain/finance"
)

// TransactionHandler handles the accounting ledger endpoints
type TransactionHandler struct {
	BaseHandler
	service *financeapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(service *financeapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// RecordTransactionRequest is the ledger entry request body. The same fields
// are accepted as multipart form data when a receipt scan is attached.
type RecordTransactionRequest struct {
	Date        string `json:"date" form:"date"`
	Category    string `json:"category" form:"category" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`
	Source      string `json:"source" form:"source"`
	Account     string `json:"account" form:"account"`
	Amount      string `json:"amount" form:"amount" binding:"required"`
}

// Record appends an entry to the ledger. JSON bodies carry the fields alone;
// a multipart body additionally takes a "receipt" file stored alongside the
// entry.
// POST /api/v1/transactions
func (h *TransactionHandler) Record(c *gin.Context) {
	var req RecordTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	input := financeapp.RecordTransactionInput{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Source:      req.Source,
		Account:     req.Account,
		Amount:      req.Amount,
	}

	if fileHeader, err := c.FormFile("receipt"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.BadRequest(c, "Could not read uploaded receipt")
			return
		}
		defer file.Close()

		input.Receipt = &financeapp.ReceiptUpload{
			Filename: fileHeader.Filename,
			Content:  file,
			Size:     fileHeader.Size,
		}
	}

	result, err := h.service.Record(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Summary returns the accounting dashboard aggregates
// GET /api/v1/transactions/summary
func (h *TransactionHandler) Summary(c *gin.Context) {
	result, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Mutations returns a windowed ledger listing
// GET /api/v1/transactions/mutations?window=daily|monthly|yearly
func (h *TransactionHandler) Mutations(c *gin.Context) {
	window := finance.MutationWindow(c.DefaultQuery("window", string(finance.WindowMonthly)))

	result, err := h.service.Mutations(c.Request.Context(), window)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the full ledger
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

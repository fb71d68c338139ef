package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/holycity/portal/internal/application/report"
)

// ReportHandler handles PDF report export endpoints
type ReportHandler struct {
	BaseHandler
	service *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// AttendancePDF exports the full attendance ledger as an A4 PDF
// GET /api/v1/reports/attendance
func (h *ReportHandler) AttendancePDF(c *gin.Context) {
	result, err := h.service.AttendanceReportPDF(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, result.Filename, result.Data)
}

// FinancePDF exports the ledger between two dates as an A4 PDF
// GET /api/v1/reports/finance?from=2006-01-02&to=2006-01-02
func (h *ReportHandler) FinancePDF(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Query parameter 'from' must be a YYYY-MM-DD date")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Query parameter 'to' must be a YYYY-MM-DD date")
		return
	}

	result, err := h.service.FinanceReportPDF(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, result.Filename, result.Data)
}

func (h *ReportHandler) servePDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}

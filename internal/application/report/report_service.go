package report

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"time"

	"github.com/holycity/portal/internal/domain/attendance"
	"github.com/holycity/portal/internal/domain/finance"
	"github.com/holycity/portal/internal/domain/shared"
	"github.com/holycity/portal/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service builds printable PDF reports from the attendance ledger and the
// accounting ledger
type Service struct {
	events       attendance.EventRepository
	transactions finance.TransactionRepository
	renderer     printing.PDFRenderer
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates a report service
func NewService(
	events attendance.EventRepository,
	transactions finance.TransactionRepository,
	renderer printing.PDFRenderer,
	logger *zap.Logger,
) *Service {
	return &Service{
		events:       events,
		transactions: transactions,
		renderer:     renderer,
		logger:       logger,
		now:          time.Now,
	}
}

// PDFResult is a generated report document
type PDFResult struct {
	Filename string
	Data     []byte
}

type attendanceRow struct {
	Username  string
	Status    string
	Latitude  float64
	Longitude float64
	PhotoRef  string
	Timestamp string
}

type attendanceReportData struct {
	GeneratedAt string
	Rows        []attendanceRow
}

type transactionRow struct {
	Date        string
	Category    string
	Description string
	Account     string
	Amount      string
}

type financeReportData struct {
	GeneratedAt string
	Rows        []transactionRow
	NetChange   string
}

var attendanceReportTmpl = template.Must(template.New("attendance").Parse(`
<h1>Attendance Report</h1>
<p>Generated at {{.GeneratedAt}}</p>
<table border="1" cellspacing="0" cellpadding="4" width="100%">
  <tr><th>Employee</th><th>Status</th><th>Latitude</th><th>Longitude</th><th>Photo</th><th>Time</th></tr>
  {{range .Rows}}
  <tr>
    <td>{{.Username}}</td>
    <td>{{.Status}}</td>
    <td>{{.Latitude}}</td>
    <td>{{.Longitude}}</td>
    <td>{{.PhotoRef}}</td>
    <td>{{.Timestamp}}</td>
  </tr>
  {{end}}
</table>
`))

var financeReportTmpl = template.Must(template.New("finance").Parse(`
<h1>Accounting Ledger</h1>
<p>Generated at {{.GeneratedAt}}</p>
<table border="1" cellspacing="0" cellpadding="4" width="100%">
  <tr><th>Date</th><th>Category</th><th>Description</th><th>Account</th><th>Amount</th></tr>
  {{range .Rows}}
  <tr>
    <td>{{.Date}}</td>
    <td>{{.Category}}</td>
    <td>{{.Description}}</td>
    <td>{{.Account}}</td>
    <td align="right">{{.Amount}}</td>
  </tr>
  {{end}}
</table>
<p><strong>Net change: {{.NetChange}}</strong></p>
`))

// AttendanceReportPDF renders the full attendance ledger as an A4 PDF
func (s *Service) AttendanceReportPDF(ctx context.Context) (*PDFResult, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	data := attendanceReportData{
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Rows:        make([]attendanceRow, len(events)),
	}
	for i, e := range events {
		data.Rows[i] = attendanceRow{
			Username:  e.Username,
			Status:    string(e.Status),
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
			PhotoRef:  e.PhotoRef,
			Timestamp: e.OccurredAt.Format("2006-01-02 15:04:05"),
		}
	}

	return s.renderPDF(ctx, attendanceReportTmpl, data,
		"Attendance Report", "attendance_report_"+now.Format("20060102")+".pdf")
}

// FinanceReportPDF renders the accounting ledger between the given dates
// (inclusive from, exclusive to) as an A4 PDF
func (s *Service) FinanceReportPDF(ctx context.Context, from, to time.Time) (*PDFResult, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Report range end must be after its start")
	}

	transactions, err := s.transactions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	data := financeReportData{
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Rows:        make([]transactionRow, len(transactions)),
	}
	net := decimal.Zero
	for i, t := range transactions {
		data.Rows[i] = transactionRow{
			Date:        t.Date.Format("2006-01-02"),
			Category:    string(t.Category),
			Description: t.Description,
			Account:     t.Account,
			Amount:      t.Amount.StringFixed(2),
		}
		net = net.Add(t.Signed())
	}
	data.NetChange = net.StringFixed(2)

	return s.renderPDF(ctx, financeReportTmpl, data,
		"Accounting Ledger", "finance_report_"+now.Format("20060102")+".pdf")
}

func (s *Service) renderPDF(ctx context.Context, tmpl *template.Template, data any, title, filename string) (*PDFResult, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("Failed to execute report template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build report")
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:  buf.String(),
		Title: title,
	})
	if err != nil {
		s.logger.Error("Failed to render report PDF", zap.Error(err))
		// Keep the renderer's code so timeouts surface as 504, not 500.
		var renderErr *printing.RenderError
		if errors.As(err, &renderErr) {
			return nil, shared.NewDomainError(renderErr.Code, "Failed to render report PDF")
		}
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render report PDF")
	}

	s.logger.Info("Report rendered",
		zap.String("filename", filename),
		zap.Int("bytes", len(result.PDFData)))

	return &PDFResult{Filename: filename, Data: result.PDFData}, nil
}

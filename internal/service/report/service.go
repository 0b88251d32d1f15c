package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/attendance"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/validator"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// Export is a rendered attendance history document.
type Export struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ReportService renders attendance history as downloadable documents.
type ReportService interface {
	// ExportHistory runs the history query and renders it in the requested
	// format ("pdf" or "xlsx"; empty defaults to pdf).
	ExportHistory(ctx context.Context, f attendance.HistoryFilter, format string) (Export, error)
}

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
}

func NewReportService(attendanceService attendance.AttendanceService) ReportService {
	return &ReportServiceImpl{attendanceService: attendanceService}
}

// ExportHistory implements ReportService.
func (s *ReportServiceImpl) ExportHistory(ctx context.Context, f attendance.HistoryFilter, format string) (Export, error) {
	if format == "" {
		format = "pdf"
	}
	if !validator.IsInSlice(format, []string{"pdf", "xlsx"}) {
		return Export{}, validator.ValidationErrors{{
			Field:   "format",
			Message: fmt.Sprintf("unsupported export format %q", format),
		}}
	}

	history, err := s.attendanceService.History(ctx, f)
	if err != nil {
		return Export{}, err
	}

	switch format {
	case "xlsx":
		content, err := renderXLSX(history)
		if err != nil {
			return Export{}, err
		}
		return Export{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "attendance-history.xlsx",
		}, nil
	default:
		content, err := renderPDF(history)
		if err != nil {
			return Export{}, err
		}
		return Export{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    "attendance-history.pdf",
		}, nil
	}
}

var exportHeaders = []string{"Date", "Code", "Family name", "Given name", "Category", "Shift", "Entry", "Exit", "Hours"}

func exportRow(rec attendance.RecordResponse) []string {
	code, exit, hours := "", "", ""
	if rec.WorkerCode != nil {
		code = *rec.WorkerCode
	}
	if rec.ExitTime != nil {
		exit = *rec.ExitTime
	}
	if rec.WorkedHours != nil {
		hours = fmt.Sprintf("%.2f", *rec.WorkedHours)
	}
	return []string{
		rec.Date, code, rec.FamilyName, rec.GivenName,
		rec.Category, rec.Shift, rec.EntryTime, exit, hours,
	}
}

func renderPDF(history attendance.HistoryResponse) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Attendance history", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Attendance history", "", 1, "L", false, 0, "")

	colWidths := []float64{26, 30, 40, 40, 28, 26, 24, 24, 20}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range exportHeaders {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range history.Records {
		for i, v := range exportRow(rec) {
			pdf.CellFormat(colWidths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 10,
		fmt.Sprintf("Records: %d    Total hours: %.2f", history.Count, history.TotalHours),
		"", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(history attendance.HistoryResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, rec := range history.Records {
		for colIdx, v := range exportRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	summaryRow := len(history.Records) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	_ = f.SetCellValue(sheet, cell, fmt.Sprintf("Records: %d", history.Count))
	cell, _ = excelize.CoordinatesToCellName(2, summaryRow)
	_ = f.SetCellValue(sheet, cell, fmt.Sprintf("Total hours: %.2f", history.TotalHours))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

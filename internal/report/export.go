package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportTimeLayout = "2006-01-02 15:04"

// ExportXLSX renders the report for entity as a workbook. The first row
// holds the title, the second the column headers.
func (s *Service) ExportXLSX(ctx context.Context, entity Entity, f Filter) ([]byte, string, error) {
	var (
		title  string
		header []string
		rows   [][]any
	)
	switch entity {
	case EntityLeave:
		rep, err := s.Leave(ctx, f)
		if err != nil {
			return nil, "", err
		}
		title = rep.Title
		header = []string{"Request #", "Employee", "Department", "Manager", "Destination", "Departure", "Return", "Days", "Status"}
		for _, r := range rep.Rows {
			rows = append(rows, []any{
				r.RequestNumber, r.EmployeeName, r.EmployeeDepartment, r.ManagerName, r.DestinationEN,
				formatTime(&r.DepartureAt), formatTime(&r.ReturnAt), roundTenth(r.DurationDays()), r.Status,
			})
		}
	case EntityBooking:
		rep, err := s.Bookings(ctx, f)
		if err != nil {
			return nil, "", err
		}
		title = rep.Title
		header = []string{"Booking #", "Employee", "Department", "Destination", "Planned departure", "Actual departure", "Actual return", "Odometer", "Status"}
		for _, r := range rep.Rows {
			odometer := ""
			if r.OdometerReturn.Valid {
				odometer = r.OdometerReturn.Decimal.String()
			}
			rows = append(rows, []any{
				r.BookingNumber, r.EmployeeName, r.EmployeeDepartment, r.DestinationEN,
				formatTime(&r.PlannedDeparture), formatTime(r.ActualDeparture), formatTime(r.ActualReturn), odometer, r.Status,
			})
		}
	case EntityTicket:
		rep, err := s.Tickets(ctx, f)
		if err != nil {
			return nil, "", err
		}
		title = rep.Title
		header = []string{"Ticket #", "Title", "Requester", "Assigned to", "Priority", "Status", "Created"}
		for _, r := range rep.Rows {
			rows = append(rows, []any{
				r.TicketNumber, r.Title, r.CreatedByName, r.AssignedToUsername, r.Priority, r.Status, formatTime(&r.CreatedAt),
			})
		}
	default:
		return nil, "", fmt.Errorf("unknown report entity %q", entity)
	}

	data, err := writeWorkbook(string(entity), title, header, rows)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("report exported",
		zap.String("entity", string(entity)),
		zap.String("title", title),
		zap.Int("rows", len(rows)))
	return data, title, nil
}

func writeWorkbook(sheet, title string, header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A2", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(exportTimeLayout)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

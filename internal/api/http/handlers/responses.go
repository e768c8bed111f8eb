package handlers

import (
	"time"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/service"
)

func leaveResponse(l *domain.LeaveRequest) dto.LeaveResponse {
	return dto.LeaveResponse{
		ID:                   l.ID,
		RequestNumber:        l.RequestNumber,
		EmployeeUsername:     l.EmployeeUsername,
		EmployeeName:         l.EmployeeName,
		EmployeeNameAr:       l.EmployeeNameAr,
		EmployeeDepartment:   l.EmployeeDepartment,
		EmployeeDepartmentAr: l.EmployeeDepartmentAr,
		EmployeeNumber:       l.EmployeeNumber,
		ActiveLanguage:       l.Reason.Language(),
		Reason:               l.Reason.Text(),
		Destination:          l.Destination,
		ManagerName:          l.ManagerName,
		ManagerNameAr:        l.ManagerNameAr,
		DepartureDatetime:    l.DepartureAt,
		ReturnDatetime:       l.ReturnAt,
		Status:               l.Status,
		StatusBadge:          l.Status.BadgeClass(),
		PrintedAt:            l.PrintedAt,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

func leaveResponses(list []domain.LeaveRequest) []dto.LeaveResponse {
	items := make([]dto.LeaveResponse, 0, len(list))
	for i := range list {
		items = append(items, leaveResponse(&list[i]))
	}
	return items
}

func bookingResponse(b *domain.CarBooking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		CarID:              b.CarID,
		EmployeeUsername:   b.EmployeeUsername,
		EmployeeName:       b.EmployeeName,
		EmployeeNameAr:     b.EmployeeNameAr,
		EmployeeDepartment: b.EmployeeDepartment,
		EmployeeNumber:     b.EmployeeNumber,
		Destination:        b.Destination,
		Purpose:            b.Purpose,
		ManagerName:        b.ManagerName,
		PlannedDeparture:   b.PlannedDeparture,
		ActualDeparture:    b.ActualDeparture,
		ActualReturn:       b.ActualReturn,
		ReturnNote:         b.ReturnNote,
		ActiveLanguage:     b.Language,
		Status:             b.Status,
		StatusBadge:        b.Status.BadgeClass(),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if b.OdometerReturn != nil {
		odometer := b.OdometerReturn.String()
		resp.OdometerReturn = &odometer
	}
	return resp
}

func bookingResponses(list []domain.CarBooking) []dto.BookingResponse {
	items := make([]dto.BookingResponse, 0, len(list))
	for i := range list {
		items = append(items, bookingResponse(&list[i]))
	}
	return items
}

func carResponse(car *domain.Car) dto.CarResponse {
	today := time.Now()
	return dto.CarResponse{
		ID:                   car.ID,
		DisplayName:          car.DisplayName(),
		PlateNumber:          car.PlateNumber,
		PlateNumberAr:        car.PlateNumberAr,
		Make:                 car.Make,
		Model:                car.Model,
		Year:                 car.Year,
		Color:                car.Color,
		Seats:                car.Seats,
		PlateImage:           car.PlateImage,
		IsActive:             car.IsActive,
		CurrentMileage:       car.CurrentMileage.String(),
		LastMajorMaintenance: car.LastMajorMaintenance,
		LastMinorMaintenance: car.LastMinorMaintenance,
		RegistrationExpiry:   car.RegistrationExpiry,
		RegistrationStatus:   car.RegistrationStatus(today),
		RegistrationDaysLeft: car.RegistrationDaysLeft(today),
	}
}

func fleetEntryResponse(entry *service.FleetEntry) dto.CarResponse {
	resp := carResponse(&entry.Car)
	resp.RegistrationStatus = entry.RegistrationStatus
	resp.RegistrationDaysLeft = entry.RegistrationDaysLeft
	state := entry.State
	resp.State = &state
	return resp
}

func ticketSummary(t *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:                 t.ID,
		TicketNumber:       t.TicketNumber,
		Title:              t.Title,
		TitleAr:            t.TitleAr,
		CategoryID:         t.CategoryID,
		Status:             t.Status,
		StatusBadge:        t.Status.BadgeClass(),
		Priority:           t.Priority,
		PriorityBadge:      t.Priority.BadgeClass(),
		CreatedByUsername:  t.CreatedByUsername,
		CreatedByName:      t.CreatedByName,
		AssignedToUsername: t.AssignedToUsername,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func ticketSummaries(list []domain.Ticket) []dto.TicketSummary {
	items := make([]dto.TicketSummary, 0, len(list))
	for i := range list {
		items = append(items, ticketSummary(&list[i]))
	}
	return items
}

func ticketDetail(d *service.TicketDetail) dto.TicketDetailResponse {
	resp := dto.TicketDetailResponse{
		TicketSummary:  ticketSummary(&d.Ticket),
		Description:    d.Ticket.Description,
		DescriptionAr:  d.Ticket.DescriptionAr,
		ActiveLanguage: d.Ticket.Language,
		Messages:       make([]dto.TicketMessageResponse, 0, len(d.Messages)),
		IsOwner:        d.IsOwner,
		IsStaff:        d.IsStaff,
	}
	if d.Category != nil {
		category := categoryResponse(d.Category)
		resp.Category = &category
	}
	for i := range d.Messages {
		resp.Messages = append(resp.Messages, messageResponse(&d.Messages[i]))
	}
	for i := range d.DepartmentStaff {
		resp.DepartmentStaff = append(resp.DepartmentStaff, staffResponse(&d.DepartmentStaff[i]))
	}
	return resp
}

func messageResponse(m *domain.TicketMessage) dto.TicketMessageResponse {
	return dto.TicketMessageResponse{
		ID:             m.ID,
		TicketID:       m.TicketID,
		SenderUsername: m.SenderUsername,
		SenderName:     m.SenderName,
		SenderNameAr:   m.SenderNameAr,
		Body:           m.Body,
		IsStaffReply:   m.IsStaffReply,
		CreatedAt:      m.CreatedAt,
	}
}

func categoryResponse(c *domain.HelpDeskCategory) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		NameAr:       c.NameAr,
		Department:   c.Department,
		DepartmentAr: c.DepartmentAr,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}

func staffResponse(s *domain.HelpDeskStaff) dto.StaffResponse {
	return dto.StaffResponse{
		ID:         s.ID,
		Username:   s.Username,
		FullName:   s.FullName,
		FullNameAr: s.FullNameAr,
		Department: s.Department,
		IsActive:   s.IsActive,
		AddedAt:    s.AddedAt,
	}
}

func notificationResponse(n *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

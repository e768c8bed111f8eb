// Package notify derives inbox notifications from lifecycle events.
//
// Plan is pure: it reads only the event and returns rows for the engine to
// insert inside the transaction that produced the event.
package notify

import (
	"fmt"
	"strings"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
)

// PreviewLength bounds reply bodies copied into notifications, in runes.
const PreviewLength = 120

// Plan computes the ordered notifications for an event. Recipients are
// deduplicated keeping first occurrence; empty usernames are skipped.
func Plan(event events.Event) []domain.Notification {
	var out []domain.Notification
	switch p := event.Payload.(type) {
	case events.TicketCreatedPayload:
		titleAr := p.TitleAr
		if titleAr == "" {
			titleAr = p.Title
		}
		out = fanOut(p.DepartmentStaff, domain.Notification{
			Title: domain.LocalizedText{
				EN: "New Ticket: " + event.RecordNumber,
				AR: "تذكرة جديدة: " + event.RecordNumber,
			},
			Body: domain.LocalizedText{EN: p.Title, AR: titleAr},
		})
	case events.TicketRepliedPayload:
		preview := Preview(p.Body)
		body := domain.LocalizedText{EN: preview, AR: preview}
		if p.FromStaff {
			out = fanOut([]string{p.Owner}, domain.Notification{
				Title: domain.LocalizedText{
					EN: "Staff replied to " + event.RecordNumber,
					AR: "رد الدعم على " + event.RecordNumber,
				},
				Body: body,
			})
			break
		}
		recipients := p.DepartmentStaff
		if p.AssignedTo != "" {
			recipients = []string{p.AssignedTo}
		}
		out = fanOut(recipients, domain.Notification{
			Title: domain.LocalizedText{
				EN: "New reply on " + event.RecordNumber,
				AR: "رد جديد على " + event.RecordNumber,
			},
			Body: body,
		})
	case events.TicketStatusChangedPayload:
		label := string(p.NewStatus)
		spaced := strings.ReplaceAll(label, "_", " ")
		out = fanOut([]string{p.Owner}, domain.Notification{
			Title: domain.LocalizedText{
				EN: fmt.Sprintf("Ticket %s status updated to %s", event.RecordNumber, titleCase(spaced)),
				AR: "تم تحديث حالة التذكرة " + event.RecordNumber,
			},
			Body: domain.LocalizedText{
				EN: "Status changed to: " + spaced,
				AR: "تم تغيير الحالة إلى: " + label,
			},
		})
	case events.LeaveStatusChangedPayload:
		if p.OldStatus == p.NewStatus {
			return nil
		}
		out = fanOut([]string{p.Owner}, domain.Notification{
			Title: domain.LocalizedText{
				EN: fmt.Sprintf("Request %s marked as %s", event.RecordNumber, p.NewStatus),
				AR: fmt.Sprintf("تم تغيير حالة الطلب %s إلى %s", event.RecordNumber, p.NewStatus),
			},
			Body: domain.LocalizedText{
				EN: fmt.Sprintf("Status changed from %s to %s", p.OldStatus, p.NewStatus),
				AR: fmt.Sprintf("تم تغيير الحالة من %s إلى %s", p.OldStatus, p.NewStatus),
			},
		})
	case events.BookingStatusChangedPayload:
		if p.OldStatus == p.NewStatus {
			return nil
		}
		out = fanOut([]string{p.Owner}, domain.Notification{
			Title: bookingTitle(event.RecordNumber, p.NewStatus),
			Body: domain.LocalizedText{
				EN: fmt.Sprintf("Status changed from %s to %s", p.OldStatus, p.NewStatus),
				AR: fmt.Sprintf("تم تغيير الحالة من %s إلى %s", p.OldStatus, p.NewStatus),
			},
		})
	}

	link := Link(event.Entity, event.RecordID)
	for i := range out {
		out[i].Link = link
		out[i].CreatedAt = event.Timestamp
	}
	return out
}

// Recipients lists the usernames a planned batch targets.
func Recipients(planned []domain.Notification) []string {
	out := make([]string, 0, len(planned))
	for _, n := range planned {
		out = append(out, n.RecipientUsername)
	}
	return out
}

// Link returns the in-app path of a record.
func Link(entity events.Entity, id int64) string {
	switch entity {
	case events.EntityLeave:
		return fmt.Sprintf("/leave/%d", id)
	case events.EntityBooking:
		return fmt.Sprintf("/cars/booking/%d", id)
	case events.EntityTicket:
		return fmt.Sprintf("/helpdesk/ticket/%d", id)
	}
	return ""
}

// Preview trims body to PreviewLength runes.
func Preview(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= PreviewLength {
		return body
	}
	return string(runes[:PreviewLength])
}

func fanOut(recipients []string, template domain.Notification) []domain.Notification {
	seen := make(map[string]struct{}, len(recipients))
	out := make([]domain.Notification, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		n := template
		n.RecipientUsername = r
		out = append(out, n)
	}
	return out
}

func bookingTitle(number string, status domain.BookingStatus) domain.LocalizedText {
	switch status {
	case domain.BookingStatusBorrowed:
		return domain.LocalizedText{
			EN: fmt.Sprintf("Booking %s marked as borrowed. Key handed over.", number),
			AR: "تم تسليم المفتاح للحجز " + number,
		}
	case domain.BookingStatusReturned:
		return domain.LocalizedText{
			EN: fmt.Sprintf("Booking %s returned successfully.", number),
			AR: fmt.Sprintf("تم تسجيل إرجاع الحجز %s بنجاح.", number),
		}
	case domain.BookingStatusArchived:
		return domain.LocalizedText{
			EN: fmt.Sprintf("Booking %s archived.", number),
			AR: fmt.Sprintf("تمت أرشفة الحجز %s.", number),
		}
	default:
		return domain.LocalizedText{
			EN: fmt.Sprintf("Booking %s reset to pending.", number),
			AR: fmt.Sprintf("تمت إعادة الحجز %s إلى قيد الانتظار.", number),
		}
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

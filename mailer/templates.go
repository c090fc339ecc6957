package mailer

import (
	"fmt"
	"strings"

	"kasuwa/models"
)

// Booking email templates. Content varies by event status and by booking
// category, but nothing here validates anything — presentation only.

// StatusText maps a booking status to the wording customers see.
func StatusText(status string) string {
	switch status {
	case models.BookingApproved:
		return "Confirmed"
	case models.BookingRejected:
		return "Rejected"
	case models.BookingCancelled:
		return "Cancelled"
	default:
		return "Pending"
	}
}

func statusColor(status string) string {
	switch status {
	case models.BookingApproved:
		return "#28a745"
	case models.BookingRejected:
		return "#dc3545"
	case models.BookingCancelled:
		return "#ffc107"
	default:
		return "#007bff"
	}
}

func detailRow(label, value string) string {
	return fmt.Sprintf(`<tr>
  <td style="padding: 8px; border-bottom: 1px solid #ddd; font-weight: bold;">%s</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td>
</tr>`, label, value)
}

// categoryRows renders the rows specific to the booking's variant.
func categoryRows(b models.Booking) string {
	var rows []string
	switch b.Category {
	case models.CategoryRestaurant:
		rows = append(rows,
			detailRow("Booking Date", b.Details.Date),
			detailRow("Number of Guests", fmt.Sprintf("%d", b.Details.NumberOfGuests)),
		)
	case models.CategoryServices:
		rows = append(rows,
			detailRow("Service Schedule", b.Details.ServiceSchedule),
			detailRow("Service Location", strings.Join([]string{b.Details.StreetAddress, b.Details.City, b.Details.State}, ", ")),
			detailRow("Service Description", b.Details.ServiceDescription),
		)
	case models.CategoryEvent:
		rows = append(rows,
			detailRow("Event Name", b.Details.EventName),
			detailRow("Event Date", b.Details.EventDate),
			detailRow("Start Time", b.Details.StartTime),
			detailRow("End Time", b.Details.EndTime),
		)
	}
	return strings.Join(rows, "\n")
}

func layout(title, heading, banner, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4;">
    <tr>
      <td align="center" style="padding: 20px 0;">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="background-color: #007bff; padding: 20px; text-align: center;">
              <h1 style="color: white; margin: 0; font-size: 24px;">Kasuwa Bookings</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 30px;">
              <h2 style="color: #333; margin-top: 0;">%s</h2>
              %s
              %s
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, title, heading, banner, body)
}

func statusBanner(status, text string) string {
	return fmt.Sprintf(`<div style="background-color: %s; color: white; padding: 15px; border-radius: 5px; text-align: center; margin: 20px 0;">
  <h3 style="margin: 0; font-size: 18px;">%s</h3>
</div>`, statusColor(status), text)
}

func bookingTable(b models.Booking, listing models.Listing) string {
	rows := []string{
		detailRow("Booking ID", b.BookingID),
		detailRow("Listing", listing.Name),
		detailRow("Category", b.Category),
	}
	if extra := categoryRows(b); extra != "" {
		rows = append(rows, extra)
	}
	return fmt.Sprintf(`<h3 style="color: #333;">Booking Details</h3>
<table style="width: 100%%; border-collapse: collapse; margin-bottom: 20px;">
%s
</table>`, strings.Join(rows, "\n"))
}

// CustomerTemplate is the confirmation/status email sent to the person who
// booked.
func CustomerTemplate(b models.Booking, listing models.Listing, status string) string {
	return layout(
		"Booking "+StatusText(status),
		"Hello "+b.Details.FirstName+",",
		statusBanner(status, "Your booking has been "+strings.ToLower(StatusText(status))),
		bookingTable(b, listing),
	)
}

// VendorTemplate notifies the listing's owner.
func VendorTemplate(vendorFirstName string, b models.Booking, listing models.Listing, status string) string {
	body := bookingTable(b, listing) + fmt.Sprintf(`<h3 style="color: #333;">Customer</h3>
<table style="width: 100%%; border-collapse: collapse;">
%s
%s
%s
</table>`,
		detailRow("Name", b.Details.FirstName+" "+b.Details.LastName),
		detailRow("Email", b.Details.Email),
		detailRow("Phone", b.Details.PhoneNumber),
	)
	return layout(
		"Booking Activity - "+listing.Name,
		"Hello "+vendorFirstName+",",
		statusBanner(status, "A booking on "+listing.Name+" is now "+strings.ToLower(StatusText(status))),
		body,
	)
}

// AdminTemplate is the copy sent to each configured admin recipient.
func AdminTemplate(b models.Booking, listing models.Listing, status string) string {
	return layout(
		"Booking Activity - "+listing.Name,
		"Booking activity",
		statusBanner(status, listing.Name+": booking "+b.BookingID+" is "+strings.ToLower(StatusText(status))),
		bookingTable(b, listing),
	)
}

// CustomerSubject varies with the transition: the first (pending) email
// reads "Received", later ones carry the status.
func CustomerSubject(listing models.Listing, status string) string {
	if status == models.BookingPending {
		return "Booking Received - " + listing.Name
	}
	return "Booking " + StatusText(status) + " - " + listing.Name
}

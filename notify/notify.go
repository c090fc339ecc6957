// Package notify is the fire-and-forget side-effect layer behind booking
// and account state transitions. Every delivery is attempted once per
// recipient; a failure is logged and never reaches the caller, so email
// outages cannot fail or roll back the transition that triggered them.
package notify

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"kasuwa/mailer"
	"kasuwa/models"
)

type Dispatcher struct {
	Mailer      mailer.Mailer
	AdminEmails []string
}

// NewFromEnv builds a dispatcher with the admin recipient list taken from
// ADMIN_EMAILS (comma-separated) at construction time.
func NewFromEnv(m mailer.Mailer) *Dispatcher {
	var admins []string
	for _, addr := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			admins = append(admins, addr)
		}
	}
	return &Dispatcher{Mailer: m, AdminEmails: admins}
}

// BookingChanged notifies the customer, the listing's vendor and every
// configured admin about a booking creation or status change. It returns
// immediately; delivery happens in a detached goroutine with its own
// timeout so slow SMTP/API calls never sit on the response path.
func (d *Dispatcher) BookingChanged(b models.Booking, listing models.Listing, vendor *models.User, status string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		d.send(ctx, mailer.Email{
			To:      b.Details.Email,
			Subject: mailer.CustomerSubject(listing, status),
			HTML:    mailer.CustomerTemplate(b, listing, status),
		})

		if vendor != nil && vendor.Email != "" {
			d.send(ctx, mailer.Email{
				To:      vendor.Email,
				Subject: "New Booking Request - " + listing.Name,
				HTML:    mailer.VendorTemplate(vendor.FirstName, b, listing, status),
			})
		}

		for _, admin := range d.AdminEmails {
			d.send(ctx, mailer.Email{
				To:      admin,
				Subject: "Booking Activity - " + listing.Name,
				HTML:    mailer.AdminTemplate(b, listing, status),
			})
		}
	}()
}

// AccountEvent delivers a single account email (vendor decisions, admin
// invites) in the background.
func (d *Dispatcher) AccountEvent(to, subject, html string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		d.send(ctx, mailer.Email{To: to, Subject: subject, HTML: html})
	}()
}

func (d *Dispatcher) send(ctx context.Context, email mailer.Email) {
	if email.To == "" {
		return
	}
	if err := d.Mailer.Send(ctx, email); err != nil {
		log.Printf("[notify] send to %s failed: %v", email.To, err)
	}
}

package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"kasuwa/db"
	"kasuwa/mailer"
	"kasuwa/models"
	"kasuwa/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func voucherSecret() []byte {
	if s := os.Getenv("VOUCHER_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("kasuwa-voucher-secret")
}

// VoucherPayload returns a signed payload string: bookingID|listingID|signature.
// The scanner verifies the signature before honoring the voucher.
func VoucherPayload(bookingID, listingID string) string {
	data := fmt.Sprintf("%s|%s", bookingID, listingID)
	h := hmac.New(sha256.New, voucherSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/bookings/booking/:id/voucher — PDF voucher for an approved booking.
func (a *API) PrintVoucher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Booking not found", nil)
		return
	}

	if booking.Status != models.BookingApproved {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Voucher is only available for confirmed bookings", nil)
		return
	}

	listing, err := findListing(ctx, booking.Details)
	if err != nil || listing == nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Listing not found", nil)
		return
	}

	qrPNG, err := qrcode.Encode(VoucherPayload(booking.BookingID, listing.ListingID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Voucher")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking ID: %s", booking.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Listing: %s", listing.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Guest: %s %s", booking.Details.FirstName, booking.Details.LastName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", mailer.StatusText(booking.Status)))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{
		ImageType: "PNG",
	}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

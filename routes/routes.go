package routes

import (
	"net/http"

	"kasuwa/admin"
	"kasuwa/auth"
	"kasuwa/bookings"
	"kasuwa/globals"
	"kasuwa/listings"
	"kasuwa/media"
	"kasuwa/middleware"
	"kasuwa/ratelim"
	"kasuwa/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/listingpic/*filepath", http.Dir("static/listingpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
}

func AddListingRoutes(router *httprouter.Router, api *listings.API, rl *ratelim.RateLimiter) {
	router.GET("/api/listings", rl.Limit(api.GetListings))
	router.GET("/api/listings/listing/:id", api.GetListingByID)
	router.GET("/api/listings/vendor/:vendorId", api.GetListingsByVendor)
	router.POST("/api/listings", middleware.Authenticate(api.CreateListing))
	router.PATCH("/api/listings/listing/:id", middleware.Authenticate(api.UpdateListing))
	router.DELETE("/api/listings/listing/:id", middleware.Authenticate(api.DeleteListing))

	router.POST("/api/uploads/image", middleware.Authenticate(media.UploadImage))
}

func AddBookingRoutes(router *httprouter.Router, api *bookings.API, rl *ratelim.RateLimiter) {
	// Booking creation is public: guests book without an account.
	router.POST("/api/bookings", rl.Limit(api.CreateBooking))
	router.GET("/api/bookings", middleware.Authenticate(api.GetAllBookings))
	router.GET("/api/bookings/user", middleware.Authenticate(api.GetUserBookings))
	router.GET("/api/bookings/vendor/:vendorId", middleware.Authenticate(api.GetVendorBookings))
	router.GET("/api/bookings/booking/:id", middleware.Authenticate(api.GetBookingByID))
	router.GET("/api/bookings/booking/:id/voucher", middleware.Authenticate(api.PrintVoucher))
	router.PATCH("/api/bookings/booking/:id", middleware.RequireRoles(api.UpdateBookingStatus, globals.RoleVendor, globals.RoleAdmin, globals.RoleSuperadmin))
	router.DELETE("/api/bookings/booking/:id", middleware.RequireRoles(api.DeleteBooking, globals.RoleAdmin, globals.RoleSuperadmin))

	router.GET("/ws/listings/:listingId", bookings.HandleWS)
}

func AddReviewRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/reviews/listing/:listingId", middleware.OptionalAuth(reviews.GetReviewsByListing))
	router.POST("/api/reviews/review/:id/helpful", rl.Limit(reviews.MarkReviewHelpful))

	router.POST("/api/reviews", middleware.Authenticate(reviews.CreateReview))
	router.GET("/api/reviews/user/:userId", middleware.Authenticate(reviews.GetReviewsByUser))
	router.GET("/api/reviews/review/:id", middleware.Authenticate(reviews.GetReviewByID))
	router.PATCH("/api/reviews/review/:id", middleware.Authenticate(reviews.UpdateReview))
	router.DELETE("/api/reviews/review/:id", middleware.Authenticate(reviews.DeleteReview))
	router.POST("/api/reviews/review/:id/response", middleware.Authenticate(reviews.AddReviewResponse))

	router.GET("/api/reviews", middleware.RequireRoles(reviews.GetAllReviews, globals.RoleAdmin, globals.RoleSuperadmin))
	router.GET("/api/reviews/pending", middleware.RequireRoles(reviews.GetPendingReviews, globals.RoleAdmin, globals.RoleSuperadmin))
	router.PATCH("/api/reviews/review/:id/moderate", middleware.RequireRoles(reviews.ModerateReview, globals.RoleAdmin, globals.RoleSuperadmin))
}

func AddAdminRoutes(router *httprouter.Router, api *admin.API, rl *ratelim.RateLimiter) {
	router.POST("/api/admin/login", rl.Limit(api.AdminLogin))
	router.POST("/api/admin/invite/verify/:email/:code", rl.Limit(api.VerifyAdminInvite))

	router.POST("/api/admin/invite", middleware.RequireRoles(api.CreateAdminInvite, globals.RoleSuperadmin))
	router.PATCH("/api/admin/invite/revoke/:adminId", middleware.RequireRoles(api.RevokeAdminInvite, globals.RoleSuperadmin))
	router.GET("/api/admin/admins", middleware.RequireRoles(api.GetAllAdmins, globals.RoleAdmin, globals.RoleSuperadmin))

	router.PATCH("/api/admin/vendors/:vendorId/approve", middleware.RequireRoles(api.ApproveVendor, globals.RoleAdmin, globals.RoleSuperadmin))
	router.PATCH("/api/admin/vendors/:vendorId/reject", middleware.RequireRoles(api.RejectVendor, globals.RoleAdmin, globals.RoleSuperadmin))
}

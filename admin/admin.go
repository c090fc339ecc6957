package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"kasuwa/auth"
	"kasuwa/db"
	"kasuwa/globals"
	"kasuwa/models"
	"kasuwa/notify"
	"kasuwa/utils"
	"kasuwa/workflow"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const inviteTTL = 10 * time.Minute

// API carries the dispatcher for invitation and vendor-decision emails.
type API struct {
	Notify *notify.Dispatcher
}

func NewAPI(d *notify.Dispatcher) *API {
	return &API{Notify: d}
}

// POST /api/admin/login — same credential check as the public login, but
// rejects non-admin accounts before touching the password.
func (a *API) AdminLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err != nil || !utils.IsModerator(user.Role) {
		utils.SendResponse(w, http.StatusNotFound, nil, "Admin not found", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "Invalid password", nil)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"token": token, "user": user}, "Admin logged in successfully", nil)
}

// POST /api/admin/invite — superadmin only. Creates the admin account in a
// pending state with a short-lived one-time code and emails the invite link.
func (a *API) CreateAdminInvite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.FirstName == "" || input.LastName == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "All fields are required", nil)
		return
	}

	code := utils.GenerateRandomDigitString(6)
	expires := time.Now().Add(inviteTTL)

	// The invited account gets a throwaway password; redeeming the code sets
	// the real one.
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create invitation")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:    uuid.New().String(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(placeholder),
		Role:      globals.RoleAdmin,
		Admin: &models.AdminInvite{
			InvitationCode:    code,
			InvitationExpires: &expires,
			InvitationStatus:  workflow.InvitePending,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		if utils.IsDuplicateKey(err) {
			utils.SendResponse(w, http.StatusBadRequest, nil, "User with this email already exists", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create invitation")
		return
	}

	inviteLink := fmt.Sprintf("%s/admincpanel/register?email=%s&token=%s", os.Getenv("FRONTEND_URL"), input.Email, code)
	a.Notify.AccountEvent(input.Email, "Kasuwa Admin Invitation", fmt.Sprintf(`
      <p>Hello,</p>
      <p>You have been invited to join Kasuwa as an admin.</p>
      <p>Please use the link below to verify your email and complete registration:</p>
      <h3>%s</h3>
      <p>This link will expire in %d minutes.</p>
      <p>If you did not request this invitation, please ignore this email.</p>
    `, inviteLink, int(inviteTTL.Minutes())))

	utils.SendResponse(w, http.StatusCreated, user, "Admin invitation sent successfully", nil)
}

// POST /api/admin/invite/verify/:email/:code — public: the invitee has no
// session yet. Redeems the code, sets the password and returns a token.
func (a *API) VerifyAdminInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(ps.ByName("email"))
	code := ps.ByName("code")

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Password is required", nil)
		return
	}
	if len(body.Password) < 8 {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Password must be at least 8 characters", nil)
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email, "role": globals.RoleAdmin}).Decode(&user)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Invalid invitation code", nil)
		return
	}

	if err := workflow.RedeemInvite(&user, code, email, time.Now()); err != nil {
		utils.SendResponse(w, workflow.HTTPStatus(err), nil, err.Error(), nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}
	user.Password = string(hashed)
	user.UpdatedAt = time.Now()

	if _, err := db.UserCollection.ReplaceOne(ctx, bson.M{"userid": user.UserID}, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify invitation")
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"token": token, "user": user}, "Admin invitation verified successfully", nil)
}

// PATCH /api/admin/invite/revoke/:adminId — superadmin only, terminal.
func (a *API) RevokeAdminInvite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("adminId"), "role": globals.RoleAdmin}).Decode(&user)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Admin not found", nil)
		return
	}

	if err := workflow.RevokeInvite(&user, role); err != nil {
		utils.SendResponse(w, workflow.HTTPStatus(err), nil, err.Error(), nil)
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"admin": user.Admin, "isVerified": user.IsVerified, "isActive": user.IsActive}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to revoke invitation")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Admin invitation revoked successfully", nil)
}

// GET /api/admin/admins
func (a *API) GetAllAdmins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter, opts := utils.ShapeQuery(r, bson.M{"role": globals.RoleAdmin})
	admins, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve admins")
		return
	}
	total, _ := db.UserCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, admins, total, "All admins fetched successfully")
}

// PATCH /api/admin/vendors/:vendorId/approve
func (a *API) ApproveVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a.decideVendor(w, r, ps, models.StatusApproved)
}

// PATCH /api/admin/vendors/:vendorId/reject
func (a *API) RejectVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a.decideVendor(w, r, ps, models.StatusRejected)
}

func (a *API) decideVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params, decision string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)

	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("vendorId"), "role": globals.RoleVendor}).Decode(&user)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Vendor not found", nil)
		return
	}

	if err := workflow.ApplyVendorDecision(&user, decision, role, time.Now()); err != nil {
		utils.SendResponse(w, workflow.HTTPStatus(err), nil, err.Error(), nil)
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"vendor": user.Vendor, "isVerified": user.IsVerified, "isActive": user.IsActive, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update vendor")
		return
	}

	if decision == models.StatusApproved {
		a.Notify.AccountEvent(user.Email, "Your vendor account has been approved",
			fmt.Sprintf("<p>Hi %s,</p><p>Your vendor account has been approved by our team. You can now access vendor features on the platform.</p>", user.FirstName))
		utils.SendResponse(w, http.StatusOK, user, "Vendor approved successfully", nil)
		return
	}

	reason := ""
	if body.Reason != "" {
		reason = fmt.Sprintf("<p>Reason provided: %s</p>", body.Reason)
	}
	a.Notify.AccountEvent(user.Email, "Your vendor account application was not approved",
		fmt.Sprintf("<p>Hi %s,</p><p>We reviewed your vendor application and decided not to approve it at this time.</p>%s<p>If you believe this is a mistake, please contact support.</p>", user.FirstName, reason))
	utils.SendResponse(w, http.StatusOK, user, "Vendor rejected", nil)
}

package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"kasuwa/db"
	"kasuwa/globals"
	"kasuwa/middleware"
	"kasuwa/models"
	"kasuwa/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// GenerateToken issues a signed JWT carrying the user's id and role.
func GenerateToken(u models.User) (string, error) {
	claims := middleware.Claims{
		Username: u.FirstName + " " + u.LastName,
		UserID:   u.UserID,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

type registerInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	BusinessName string `json:"businessName"`
}

// POST /api/auth/register — customers and vendors only. Vendor accounts
// start with a pending approval profile and stay inactive until an admin
// approves them.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role == "" {
		input.Role = globals.RoleUser
	}

	var errs []string
	if input.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if input.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if !utils.IsValidEmail(input.Email) {
		errs = append(errs, "Valid email is required")
	}
	if len(input.Password) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if input.Role != globals.RoleUser && input.Role != globals.RoleVendor {
		errs = append(errs, "Role must be user or vendor")
	}
	if len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"status":  http.StatusBadRequest,
			"message": "Validation failed: " + strings.Join(errs, ", "),
			"errors":  errs,
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:     uuid.New().String(),
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   string(hashed),
		Role:       input.Role,
		IsVerified: false,
		IsActive:   input.Role == globals.RoleUser,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if input.Role == globals.RoleVendor {
		user.Vendor = &models.VendorProfile{
			BusinessName:   input.BusinessName,
			ApprovalStatus: models.StatusPending,
		}
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		if utils.IsDuplicateKey(err) {
			utils.SendResponse(w, http.StatusConflict, nil, "User with this email already exists", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.SendResponse(w, http.StatusCreated, user, "Registration successful", nil)
}

// POST /api/auth/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err != nil {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "Invalid email or password", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "Invalid email or password", nil)
		return
	}

	token, err := GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	_, _ = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"lastLogin": time.Now()}},
	)

	utils.SendResponse(w, http.StatusOK, utils.M{
		"token": token,
		"user":  user,
	}, "Login successful", nil)
}

// EnsureSuperadmin seeds the root account from the environment on startup.
// No-op when the account exists or the env vars are unset.
func EnsureSuperadmin(ctx context.Context) {
	email := strings.ToLower(os.Getenv("SUPERADMIN_EMAIL"))
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("superadmin lookup failed: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("superadmin seed failed: %v", err)
		return
	}

	now := time.Now()
	user := models.User{
		UserID:     uuid.New().String(),
		FirstName:  "Super",
		LastName:   "Admin",
		Email:      email,
		Password:   string(hashed),
		Role:       globals.RoleSuperadmin,
		IsVerified: true,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		log.Printf("superadmin seed failed: %v", err)
		return
	}
	log.Printf("seeded superadmin account %s", email)
}

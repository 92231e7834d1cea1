package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/middlewares"
	"github.com/namvh/foodexpress-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgEmailTaken            = "email is already in use"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgForbidden             = "You do not have permission to access this resource"
	msgUserNotFound          = "user not found"
	msgWrongCurrentPassword  = "current password is incorrect"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// serverError hides infrastructure detail outside debug mode.
func serverError(ctx *gin.Context, err error) {
	log.Println("Server error:", err)
	if gin.Mode() == gin.DebugMode {
		sendErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  user.ID,
		"email":   user.Email,
		"isAdmin": user.Role == models.RoleAdmin,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func userResponse(user models.User) gin.H {
	return gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"phone":   user.Phone,
		"address": user.Address,
		"role":    user.Role,
	}
}

// Register creates a customer account and signs them in.
func Register(ctx *gin.Context) {
	var registerData models.RegisterData
	if err := ctx.ShouldBindJSON(&registerData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	_, err := models.FindUserByEmail(initializers.DB, registerData.Email)
	if err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailTaken)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(ctx, err)
		return
	}

	hashedPassword, err := hashPassword(registerData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Email:    registerData.Email,
		Password: hashedPassword,
		Name:     registerData.FullName,
		Phone:    registerData.Phone,
		Address:  registerData.Address,
		Role:     models.RoleCustomer,
	}
	if err := models.CreateUser(initializers.DB, &user); err != nil {
		serverError(ctx, err)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   tokenString,
		"user":    userResponse(user),
	})
}

// Login authenticates a user and issues a bearer token.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := models.FindUserByEmail(initializers.DB, loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   tokenString,
		"user":    userResponse(user),
	})
}

// GetProfile returns the authenticated user's profile.
func GetProfile(ctx *gin.Context) {
	authUser, _ := middlewares.GetAuthUser(ctx)

	user, err := models.FindUserByID(initializers.DB, authUser.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, userResponse(user))
}

// UpdateProfile updates name, phone and address. Self-or-admin only.
func UpdateProfile(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(userID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	var profileData struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := ctx.ShouldBindJSON(&profileData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := models.UpdateUserProfile(initializers.DB, userID, profileData.Name, profileData.Phone, profileData.Address); err != nil {
		serverError(ctx, err)
		return
	}

	user, err := models.FindUserByID(initializers.DB, userID)
	if err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(user),
	})
}

// ChangePassword verifies the current password before setting a new one.
func ChangePassword(ctx *gin.Context) {
	var passwordData struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&passwordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	user, err := models.FindUserByID(initializers.DB, authUser.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		serverError(ctx, err)
		return
	}

	if err := comparePasswords(user.Password, passwordData.CurrentPassword); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgWrongCurrentPassword)
		return
	}

	hashedPassword, err := hashPassword(passwordData.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if err := models.UpdateUserPassword(initializers.DB, authUser.UserID, hashedPassword); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// GetCustomers lists customer accounts for the admin view.
func GetCustomers(ctx *gin.Context) {
	customers, err := models.GetCustomers(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"customers": customers})
}

// GetAllUsers lists every account, admins included.
func GetAllUsers(ctx *gin.Context) {
	users, err := models.GetAllUsers(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

// GetCustomerStats returns registration aggregates for the admin dashboard.
func GetCustomerStats(ctx *gin.Context) {
	stats, err := models.GetCustomerStats(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, stats)
}

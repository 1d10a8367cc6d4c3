package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddleapp/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles authentication requests
type Handler struct {
	db     *gorm.DB
	tokens *TokenService
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB, tokens *TokenService) *Handler {
	return &Handler{db: db, tokens: tokens}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// IdentityResponse represents the authenticated identity in responses
type IdentityResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} IdentityResponse
// @Failure 400 {object} map[string]string "Missing fields or duplicate username"
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, displayName and password are required"})
		return
	}

	// Check if username already exists
	var existing models.User
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already taken"})
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: hashedPassword,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, IdentityResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}

// Login handles user login and sets the session cookie
// @Summary Login
// @Description Authenticate with username and password; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "displayName"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 404 {object} map[string]string "User not found"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	// Does not reveal whether the username or the password was wrong
	if !CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username, user.DisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.SetCookie(SessionCookie, token, h.tokens.CookieMaxAge(), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"displayName": user.DisplayName})
}

// Verify returns the identity carried by the session cookie
// @Summary Verify session
// @Description Validate the session cookie and return the caller's identity
// @Tags auth
// @Produce json
// @Success 200 {object} IdentityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	userID, _ := GetUserID(c)
	username, _ := GetUsername(c)
	displayName, _ := GetDisplayName(c)

	c.JSON(http.StatusOK, IdentityResponse{
		ID:          userID,
		Username:    username,
		DisplayName: displayName,
	})
}

// Logout clears the session cookie. Tokens are stateless server-side, so
// a copy of the token held elsewhere remains valid until it expires.
// @Summary Logout
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RegisterRoutes registers auth routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.POST("/verify", Middleware(h.tokens), h.Verify)
}

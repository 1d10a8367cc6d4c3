package groups

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddleapp/huddle/pkg/huddle/auth"
	"github.com/huddleapp/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles group-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	PhotoURL    string `json:"photoUrl"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Role        string `json:"role,omitempty"` // Caller's role, on authenticated listings
	MemberCount int    `json:"memberCount,omitempty"`
}

// ListAll returns every group
// @Summary List all groups
// @Description Get every group, no authentication required
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Router /groups [get]
func (h *Handler) ListAll(c *gin.Context) {
	var groups []models.Group
	if err := h.db.Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups"})
		return
	}

	resp := make([]GroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = GroupResponse{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			PhotoURL:    g.PhotoURL,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ListMine returns all groups the current user is a member of
// @Summary List the caller's groups
// @Description Get all groups the current user is a member of
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /groups/user [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var memberships []models.GroupMembership
	if err := h.db.Preload("Group").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups"})
		return
	}

	groups := make([]GroupResponse, len(memberships))
	for i, m := range memberships {
		var memberCount int64
		h.db.Model(&models.GroupMembership{}).Where("group_id = ?", m.GroupID).Count(&memberCount)

		groups[i] = GroupResponse{
			ID:          m.Group.ID,
			Name:        m.Group.Name,
			Description: m.Group.Description,
			PhotoURL:    m.Group.PhotoURL,
			Role:        string(m.Role),
			MemberCount: int(memberCount),
		}
	}

	c.JSON(http.StatusOK, groups)
}

// Create creates a new group with the creator as member and admin
// @Summary Create a group
// @Description Create a new group with the current user as its admin
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Router /groups/create [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and description are required"})
		return
	}

	// Group insert and creator membership land together or not at all
	var group models.Group
	err := h.db.Transaction(func(tx *gorm.DB) error {
		group = models.Group{
			Name:        req.Name,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		membership := models.GroupMembership{
			UserID:  userID,
			GroupID: group.ID,
			Role:    models.GroupRoleAdmin,
		}
		return tx.Create(&membership).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		PhotoURL:    group.PhotoURL,
		Role:        string(models.GroupRoleAdmin),
		MemberCount: 1,
	})
}

// RegisterPublicRoutes registers group routes that need no session
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListAll)
}

// RegisterRoutes registers session-guarded group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user", h.ListMine)
	rg.POST("/create", h.Create)
	rg.POST("/join", h.Join)
	rg.POST("/leave", h.Leave)
}

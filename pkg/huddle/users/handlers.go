package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddleapp/huddle/pkg/huddle/auth"
	"github.com/huddleapp/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles user dashboard requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GroupSummary represents a group on the dashboard
type GroupSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// DashboardResponse splits the caller's groups into plain memberships and
// groups they administer
type DashboardResponse struct {
	Groups      []GroupSummary `json:"groups"`
	BoardGroups []GroupSummary `json:"boardGroups"`
}

// Dashboard returns the caller's memberships and administered groups
// @Summary Get the caller's dashboard
// @Description Get the current user's groups and the groups they administer
// @Tags users
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /user [get]
func (h *Handler) Dashboard(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var memberships []models.GroupMembership
	if err := h.db.Preload("Group").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups"})
		return
	}

	resp := DashboardResponse{
		Groups:      []GroupSummary{},
		BoardGroups: []GroupSummary{},
	}
	for _, m := range memberships {
		summary := GroupSummary{
			ID:          m.Group.ID,
			Name:        m.Group.Name,
			Description: m.Group.Description,
			PhotoURL:    m.Group.PhotoURL,
		}
		resp.Groups = append(resp.Groups, summary)
		if m.Role == models.GroupRoleAdmin {
			resp.BoardGroups = append(resp.BoardGroups, summary)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers user routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Dashboard)
}

package posts

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huddleapp/huddle/pkg/huddle/auth"
	"github.com/huddleapp/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles post-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new posts handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreatePostRequest represents the request to create a post. Date and
// Location are required when IsEvent is set.
type CreatePostRequest struct {
	Group       uint       `json:"group" binding:"required"`
	PostName    string     `json:"postName" binding:"required"`
	Description string     `json:"description"`
	IsEvent     bool       `json:"isEvent"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	PhotoURL    string     `json:"photoUrl"`
}

// PostResponse represents a post in API responses, enriched with the
// owning group's name and photo
type PostResponse struct {
	ID            uint       `json:"id"`
	GroupID       uint       `json:"group"`
	GroupName     string     `json:"groupName,omitempty"`
	GroupPhotoURL string     `json:"groupPhotoUrl,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	IsEvent       bool       `json:"isEvent"`
	Date          *time.Time `json:"date,omitempty"`
	Location      string     `json:"location,omitempty"`
	PhotoURL      string     `json:"photoUrl,omitempty"`
	Username      string     `json:"username"`
	CreatedAt     time.Time  `json:"creationDate"`
}

func postToResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:            post.ID,
		GroupID:       post.GroupID,
		GroupName:     post.Group.Name,
		GroupPhotoURL: post.Group.PhotoURL,
		Name:          post.Name,
		Description:   post.Description,
		IsEvent:       post.IsEvent,
		Date:          post.Date,
		Location:      post.Location,
		PhotoURL:      post.PhotoURL,
		Username:      post.Username,
		CreatedAt:     post.CreatedAt,
	}
}

// Create publishes a post in a group. Only the group's admins may post;
// validation runs before any write, so a rejected request persists nothing.
// @Summary Create a post
// @Description Publish a post or event in a group (group admins only)
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post details"
// @Success 201 {object} PostResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Not a group admin"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /posts [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	username, _ := auth.GetUsername(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "group and postName are required"})
		return
	}

	if req.IsEvent && (req.Date == nil || req.Location == "") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "date and location are required for events"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, req.Group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Group not found"})
		return
	}

	var membership models.GroupMembership
	if err := h.db.Where("user_id = ? AND group_id = ? AND role = ?", userID, req.Group, models.GroupRoleAdmin).First(&membership).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only group admins can post"})
		return
	}

	post := models.Post{
		GroupID:     req.Group,
		Name:        req.PostName,
		Description: req.Description,
		IsEvent:     req.IsEvent,
		Date:        req.Date,
		Location:    req.Location,
		PhotoURL:    req.PhotoURL,
		Username:    username,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
		return
	}

	post.Group = group
	c.JSON(http.StatusCreated, postToResponse(post))
}

// ListMine returns the posts of every group the caller belongs to, newest
// first. Events order by their event date; plain posts fall back to their
// creation time so the ordering stays total.
// @Summary List posts for the caller's groups
// @Description Get posts from all groups the current user is a member of
// @Tags posts
// @Produce json
// @Success 200 {array} PostResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /posts/user [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	memberGroups := h.db.Model(&models.GroupMembership{}).
		Select("group_id").
		Where("user_id = ?", userID)

	var posts []models.Post
	if err := h.db.Preload("Group").
		Where("group_id IN (?)", memberGroups).
		Order("COALESCE(date, created_at) DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch posts"})
		return
	}

	resp := make([]PostResponse, len(posts))
	for i, p := range posts {
		resp[i] = postToResponse(p)
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers post routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/user", h.ListMine)
}

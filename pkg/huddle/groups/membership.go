package groups

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddleapp/huddle/pkg/huddle/auth"
	"github.com/huddleapp/huddle/pkg/huddle/models"
)

// MembershipRequest represents a request to join or leave a group
type MembershipRequest struct {
	GroupID uint `json:"groupId" binding:"required"`
}

// Join adds the caller to a group as a plain member
// @Summary Join a group
// @Description Add the current user to a group's members
// @Tags groups
// @Accept json
// @Produce json
// @Param request body MembershipRequest true "Group to join"
// @Success 200 {object} map[string]string "Joined"
// @Failure 400 {object} map[string]string "Missing groupId or already a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/join [post]
func (h *Handler) Join(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "groupId is required"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, req.GroupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Group not found"})
		return
	}

	var existing models.GroupMembership
	if err := h.db.Where("user_id = ? AND group_id = ?", userID, req.GroupID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Already a member of this group"})
		return
	}

	membership := models.GroupMembership{
		UserID:  userID,
		GroupID: req.GroupID,
		Role:    models.GroupRoleMember,
	}

	// The unique (user, group) index makes the racing insert of a
	// concurrent double-join fail here rather than duplicate the row
	if err := h.db.Create(&membership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined group"})
}

// Leave removes the caller from a group. Leaving also drops any admin
// role, so a group's last admin cannot leave.
// @Summary Leave a group
// @Description Remove the current user from a group's members
// @Tags groups
// @Accept json
// @Produce json
// @Param request body MembershipRequest true "Group to leave"
// @Success 200 {object} map[string]string "Left"
// @Failure 400 {object} map[string]string "Missing groupId, not a member, or last admin"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/leave [post]
func (h *Handler) Leave(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "groupId is required"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, req.GroupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Group not found"})
		return
	}

	var membership models.GroupMembership
	if err := h.db.Where("user_id = ? AND group_id = ?", userID, req.GroupID).First(&membership).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not a member of this group"})
		return
	}

	if membership.Role == models.GroupRoleAdmin {
		var adminCount int64
		h.db.Model(&models.GroupMembership{}).Where("group_id = ? AND role = ?", req.GroupID, models.GroupRoleAdmin).Count(&adminCount)
		if adminCount <= 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot leave as the group's last admin"})
			return
		}
	}

	if err := h.db.Delete(&membership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to leave group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left group"})
}

package handlers

import (
	"net/http"

	"littlelemon-api/config"
	"littlelemon-api/models"

	"github.com/gin-gonic/gin"
)

type GroupMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

func listGroupUsers(c *gin.Context, groupName string) {
	var group models.Group
	if err := config.DB.Where("name = ?", groupName).First(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Group not seeded"})
		return
	}
	var users []models.User
	config.DB.Model(&models.User{}).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", group.ID).
		Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

func addGroupUser(c *gin.Context, groupName string) {
	var req GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	var user models.User
	if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	var group models.Group
	if err := config.DB.Where("name = ?", groupName).First(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Group not seeded"})
		return
	}
	if err := config.DB.Model(&user).Association("Groups").Append(&group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group membership"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User " + user.Username + " added to " + groupName + " group"})
}

func removeGroupUser(c *gin.Context, groupName string) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	var group models.Group
	if err := config.DB.Where("name = ?", groupName).First(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Group not seeded"})
		return
	}
	if err := config.DB.Model(&user).Association("Groups").Delete(&group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group membership"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User " + user.Username + " removed from " + groupName + " group"})
}

// Manager roster — admin only

func ListManagers(c *gin.Context) { listGroupUsers(c, models.GroupManager) }

func AddManager(c *gin.Context) { addGroupUser(c, models.GroupManager) }

func RemoveManager(c *gin.Context) { removeGroupUser(c, models.GroupManager) }

// Delivery crew roster — manager or admin

func ListDeliveryCrew(c *gin.Context) { listGroupUsers(c, models.GroupDeliveryCrew) }

func AddDeliveryCrew(c *gin.Context) { addGroupUser(c, models.GroupDeliveryCrew) }

func RemoveDeliveryCrew(c *gin.Context) { removeGroupUser(c, models.GroupDeliveryCrew) }

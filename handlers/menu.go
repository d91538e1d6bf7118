package handlers

import (
	"net/http"

	"littlelemon-api/config"
	"littlelemon-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MenuItemRequest struct {
	Title       string          `json:"title" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Featured    bool            `json:"featured"`
	CategoryID  *uint           `json:"category_id"`
	Description string          `json:"description"`
}

// ListMenuItems returns the catalog (public) with optional filters:
// category, featured, search over title/description, ordering by price or
// title with a "-" prefix for descending.
func ListMenuItems(c *gin.Context) {
	query := config.DB.Preload("Category")

	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if featured := c.Query("featured"); featured != "" {
		query = query.Where("featured = ?", featured == "true")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	switch c.Query("ordering") {
	case "price":
		query = query.Order("price asc")
	case "-price":
		query = query.Order("price desc")
	case "-title":
		query = query.Order("title desc")
	default:
		query = query.Order("title asc")
	}

	var items []models.MenuItem
	query.Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu_items": items})
}

// GetMenuItem returns a single menu item (public)
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.Preload("Category").First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// CreateMenuItem adds a menu item — admin only
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": gin.H{"price": "Price must be greater than 0"}})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": gin.H{"category_id": "Category not found"}})
			return
		}
	}
	item := models.MenuItem{
		Title:       req.Title,
		Price:       req.Price,
		Featured:    req.Featured,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "menu_item": item})
}

// UpdateMenuItem updates a menu item — admin only
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": gin.H{"price": "Price must be greater than 0"}})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": gin.H{"category_id": "Category not found"}})
			return
		}
	}
	item.Title = req.Title
	item.Price = req.Price
	item.Featured = req.Featured
	item.CategoryID = req.CategoryID
	item.Description = req.Description
	config.DB.Save(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "menu_item": item})
}

// DeleteMenuItem removes a menu item — admin only
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted", "menu_item_id": item.ID})
}

// UpdateFeatured sets the item-of-the-day flag — manager or admin
func UpdateFeatured(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var req struct {
		Featured *bool `json:"featured" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "featured field is required"})
		return
	}
	config.DB.Model(&item).Update("featured", *req.Featured)
	c.JSON(http.StatusOK, gin.H{"message": "Featured status updated", "menu_item": item})
}

package handlers

import (
	"net/http"
	"strconv"

	"littlelemon-api/config"
	"littlelemon-api/middleware"
	"littlelemon-api/services"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

type UpdateCartLineRequest struct {
	Quantity   *int  `json:"quantity"`
	MenuItemID *uint `json:"menuitem_id"`
}

// GetCart returns the caller's cart lines
func GetCart(c *gin.Context) {
	svc := services.NewCartService(config.DB)
	lines, err := svc.List(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(lines), "cart_items": lines})
}

// AddToCart upserts a (user, menuitem) cart line
func AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewCartService(config.DB)
	line, err := svc.AddOrUpdate(middleware.GetUserID(c), req.MenuItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart", "cart_item": line})
}

// UpdateCartLine patches one owned cart line
func UpdateCartLine(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
		return
	}
	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewCartService(config.DB)
	line, err := svc.UpdateLine(middleware.GetUserID(c), uint(lineID), services.CartLinePatch{
		Quantity:   req.Quantity,
		MenuItemID: req.MenuItemID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated", "cart_item": line})
}

// RemoveCartLine deletes one owned cart line
func RemoveCartLine(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
		return
	}
	svc := services.NewCartService(config.DB)
	if err := svc.Remove(middleware.GetUserID(c), uint(lineID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}

// ClearCart empties the caller's cart. Always succeeds, even when empty.
func ClearCart(c *gin.Context) {
	svc := services.NewCartService(config.DB)
	if err := svc.Clear(middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}

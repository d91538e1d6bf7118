package handlers

import (
	"net/http"
	"strconv"

	"littlelemon-api/authz"
	"littlelemon-api/config"
	"littlelemon-api/middleware"
	"littlelemon-api/services"

	"github.com/gin-gonic/gin"
)

type UpdateOrderRequest struct {
	Status         *string `json:"status"`
	DeliveryCrewID *uint   `json:"delivery_crew"`
}

type AssignCrewRequest struct {
	DeliveryCrewID uint `json:"delivery_crew_id" binding:"required"`
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// PlaceOrder converts the caller's cart into a pending order
func PlaceOrder(c *gin.Context) {
	svc := services.NewOrderService(config.DB)
	order, err := svc.Place(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// ListOrders returns the orders visible to the caller's role, with optional
// status and date filters, newest first
func ListOrders(c *gin.Context) {
	svc := services.NewOrderService(config.DB)
	orders, err := svc.List(middleware.GetRole(c), middleware.GetUserID(c), c.Query("status"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one order under role visibility rules
func GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	svc := services.NewOrderService(config.DB)
	order, err := svc.Get(middleware.GetRole(c), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrder mutates status and/or delivery crew under the field-level
// policy: crew may only touch status on their own orders, managers and
// admins may touch both fields on any order.
func UpdateOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewOrderService(config.DB)
	order, err := svc.Update(middleware.GetRole(c), middleware.GetUserID(c), id, authz.OrderPatch{
		Status:         req.Status,
		DeliveryCrewID: req.DeliveryCrewID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": order})
}

// AssignDeliveryCrew pins an order on a delivery-crew member — manager/admin
func AssignDeliveryCrew(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req AssignCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_crew_id is required"})
		return
	}
	svc := services.NewOrderService(config.DB)
	order, err := svc.AssignDeliveryCrew(middleware.GetRole(c), id, req.DeliveryCrewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery crew assigned", "order": order})
}

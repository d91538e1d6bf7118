package handlers

import (
	"net/http"
	"strconv"

	"littlelemon-api/config"
	"littlelemon-api/middleware"
	"littlelemon-api/services"

	"github.com/gin-gonic/gin"
)

type ReservationRequest struct {
	Name            string `json:"name"`
	NumberOfGuests  int    `json:"number_of_guests"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	SpecialRequests string `json:"special_requests"`
}

func (r ReservationRequest) input() services.ReservationInput {
	return services.ReservationInput{
		Name:            r.Name,
		NumberOfGuests:  r.NumberOfGuests,
		ReservationDate: r.ReservationDate,
		ReservationTime: r.ReservationTime,
		SpecialRequests: r.SpecialRequests,
	}
}

func reservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation id"})
		return 0, false
	}
	return uint(id), true
}

// ListReservations returns the caller's reservations; admins see all
func ListReservations(c *gin.Context) {
	svc := services.NewReservationService(config.DB)
	out, err := svc.List(middleware.GetRole(c), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "reservations": out})
}

// GetReservation returns one reservation, owner or admin only
func GetReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	svc := services.NewReservationService(config.DB)
	res, err := svc.Get(middleware.GetRole(c), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// CreateReservation books a table for the caller
func CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewReservationService(config.DB)
	res, err := svc.Create(middleware.GetUserID(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reservation created", "reservation": res})
}

// UpdateReservation patches a reservation, owner or admin only
func UpdateReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewReservationService(config.DB)
	res, err := svc.Update(middleware.GetRole(c), middleware.GetUserID(c), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated", "reservation": res})
}

// DeleteReservation removes a reservation, owner or admin only
func DeleteReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	svc := services.NewReservationService(config.DB)
	if err := svc.Delete(middleware.GetRole(c), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}

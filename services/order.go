package services

import (
	"errors"
	"time"

	"littlelemon-api/authz"
	"littlelemon-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService converts carts into immutable orders and applies the
// role-gated status/assignment transitions afterwards.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// Place snapshots the user's whole cart into one pending order. The read of
// the cart, the order + line writes and the cart delete share a single
// transaction, so two concurrent checkouts by the same user cannot both
// consume the same cart lines: the loser sees an empty cart.
func (s *OrderService) Place(userID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := tx.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.LinePrice)
		}

		order = models.Order{
			UserID: userID,
			Status: models.StatusPending,
			Total:  total,
			Date:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, l := range lines {
			ol := models.OrderLine{
				OrderID:    order.ID,
				MenuItemID: l.MenuItemID,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				LinePrice:  l.LinePrice,
			}
			if err := tx.Create(&ol).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrConflict
				}
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
	})
	if err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Lines.MenuItem").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns the orders visible to the actor: customers their own, crew
// the ones assigned to them, managers and admins everything. Newest first.
func (s *OrderService) List(role authz.Role, actorID uint, status, date string) ([]models.Order, error) {
	q := s.DB.Preload("Lines.MenuItem").Preload("DeliveryCrew")
	switch {
	case authz.SeesAllOrders(role):
	case role == authz.RoleDeliveryCrew:
		q = q.Where("delivery_crew_id = ?", actorID)
	default:
		q = q.Where("user_id = ?", actorID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if date != "" {
		q = q.Where("date(date) = ?", date)
	}
	var orders []models.Order
	err := q.Order("date desc").Find(&orders).Error
	return orders, err
}

// Get fetches one order under the same visibility rules as List. A row the
// actor may not see reads as not found, never as forbidden.
func (s *OrderService) Get(role authz.Role, actorID, orderID uint) (*models.Order, error) {
	q := s.DB.Preload("Lines.MenuItem").Preload("DeliveryCrew")
	switch {
	case authz.SeesAllOrders(role):
	case role == authz.RoleDeliveryCrew:
		q = q.Where("delivery_crew_id = ?", actorID)
	default:
		q = q.Where("user_id = ?", actorID)
	}
	var order models.Order
	if err := q.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Update applies the field-level patch rules, then mutates status and/or
// delivery crew. Everything else on an order is frozen at checkout.
func (s *OrderService) Update(role authz.Role, actorID, orderID uint, patch authz.OrderPatch) (*models.Order, error) {
	if !authz.CanUpdateOrders(role) {
		return nil, ErrForbidden
	}
	allowed, ok := authz.OrderPatchRules(role, patch)
	if !ok {
		return nil, ErrForbidden
	}

	order, err := s.Get(role, actorID, orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if allowed.Status != nil {
		next := models.OrderStatus(*allowed.Status)
		if next != models.StatusPending && next != models.StatusDelivered {
			return nil, fieldError("status", "Status must be pending or delivered")
		}
		if order.Status == models.StatusDelivered && next == models.StatusPending {
			return nil, fieldError("status", "Delivered orders cannot go back to pending")
		}
		updates["status"] = next
	}
	if allowed.DeliveryCrewID != nil {
		crew, err := s.crewMember(*allowed.DeliveryCrewID)
		if err != nil {
			return nil, err
		}
		updates["delivery_crew_id"] = crew.ID
	}
	if len(updates) == 0 {
		return order, nil
	}
	if err := s.DB.Model(order).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(role, actorID, orderID)
}

// AssignDeliveryCrew pins an order on a member of the Delivery crew group.
func (s *OrderService) AssignDeliveryCrew(role authz.Role, orderID, crewUserID uint) (*models.Order, error) {
	if !authz.CanAssignDeliveryCrew(role) {
		return nil, ErrForbidden
	}
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	crew, err := s.crewMember(crewUserID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&order).Update("delivery_crew_id", crew.ID).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Lines.MenuItem").Preload("DeliveryCrew").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// crewMember resolves a user id that must belong to the Delivery crew group.
func (s *OrderService) crewMember(userID uint) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("Groups").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !user.InGroup(models.GroupDeliveryCrew) {
		return nil, ErrNotFound
	}
	return &user, nil
}

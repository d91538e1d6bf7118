package services

import (
	"errors"

	"littlelemon-api/models"

	"gorm.io/gorm"
)

// CartService owns the per-user cart lines and their derived pricing.
type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// List returns all cart lines owned by the user.
func (s *CartService) List(userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.DB.Preload("MenuItem").Where("user_id = ?", userID).Find(&lines).Error
	return lines, err
}

// AddOrUpdate upserts the (user, menuitem) line. An existing line gets its
// quantity replaced and its line price recomputed from the unit price that
// was snapshotted when the line was first created; a new line snapshots the
// current catalog price.
func (s *CartService) AddOrUpdate(userID, menuItemID uint, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, fieldError("quantity", "Quantity must be at least 1")
	}

	var item models.MenuItem
	if err := s.DB.First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldError("menuitem", "Menu item not found")
		}
		return nil, err
	}

	var line models.CartLine
	err := s.DB.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&line).Error
	switch {
	case err == nil:
		line.Quantity = quantity
		line.LinePrice = line.UnitPrice.Mul(decimalFromInt(quantity))
		if err := s.DB.Save(&line).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartLine{
			UserID:     userID,
			MenuItemID: menuItemID,
			Quantity:   quantity,
			UnitPrice:  item.Price,
			LinePrice:  item.Price.Mul(decimalFromInt(quantity)),
		}
		if err := s.DB.Create(&line).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrConflict
			}
			return nil, err
		}
	default:
		return nil, err
	}
	return &line, nil
}

// CartLinePatch is a partial update to one cart line.
type CartLinePatch struct {
	Quantity   *int
	MenuItemID *uint
}

// UpdateLine patches an owned line. A quantity-only change keeps the stored
// unit price; repointing the line at a different menu item re-snapshots the
// unit price from the current catalog.
func (s *CartService) UpdateLine(userID, lineID uint, patch CartLinePatch) (*models.CartLine, error) {
	var line models.CartLine
	err := s.DB.Where("id = ? AND user_id = ?", lineID, userID).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return nil, fieldError("quantity", "Quantity must be at least 1")
		}
		line.Quantity = *patch.Quantity
	}
	if patch.MenuItemID != nil && *patch.MenuItemID != line.MenuItemID {
		var item models.MenuItem
		if err := s.DB.First(&item, *patch.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fieldError("menuitem", "Menu item not found")
			}
			return nil, err
		}
		line.MenuItemID = item.ID
		line.UnitPrice = item.Price
	}
	line.LinePrice = line.UnitPrice.Mul(decimalFromInt(line.Quantity))

	if err := s.DB.Save(&line).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &line, nil
}

// Remove deletes one owned line. A non-owned or absent line is not found.
func (s *CartService) Remove(userID, lineID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", lineID, userID).Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear drops every line the user owns. Idempotent; clearing an already
// empty cart succeeds.
func (s *CartService) Clear(userID uint) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
}

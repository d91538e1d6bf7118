package models

import "github.com/shopspring/decimal"

// CartLine holds one candidate purchase for a user. UnitPrice is a snapshot
// of the menu item's price taken when the line was created (or when the line
// was repointed at a different menu item), never a live catalog join.
type CartLine struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItemID uint            `json:"menuitem_id" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItem   MenuItem        `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null;default:1"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	LinePrice  decimal.Decimal `json:"line_price" gorm:"type:decimal(10,2);not null"`
}

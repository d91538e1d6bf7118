package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the order's delivery state. The lifecycle is one-way:
// pending → delivered, nothing else.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
)

// Order is a frozen snapshot of a checkout. Total is computed once from the
// cart at placement and never recomputed; only Status and DeliveryCrewID may
// change afterwards.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"not null"`
	User           User            `json:"-" gorm:"foreignKey:UserID"`
	DeliveryCrewID *uint           `json:"delivery_crew_id"`
	DeliveryCrew   *User           `json:"delivery_crew,omitempty" gorm:"foreignKey:DeliveryCrewID"`
	Status         OrderStatus     `json:"status" gorm:"index;not null;default:'pending'"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Date           time.Time       `json:"date" gorm:"index;not null"`
	Lines          []OrderLine     `json:"order_items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderLine copies {menuitem, quantity, unit_price, line_price} out of a
// CartLine at checkout and is never mutated afterwards.
type OrderLine struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null;uniqueIndex:idx_order_item"`
	MenuItemID uint            `json:"menuitem_id" gorm:"not null;uniqueIndex:idx_order_item"`
	MenuItem   MenuItem        `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	LinePrice  decimal.Decimal `json:"line_price" gorm:"type:decimal(10,2);not null"`
}

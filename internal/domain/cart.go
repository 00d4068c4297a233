package domain

import "time"

// CartLine is a pending, unpriced selection. Option and Note use "" for absent so the
// unique index on (owner, category, item, option, note) behaves the same on every driver.
type CartLine struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID   uint64    `json:"ownerId" gorm:"not null;uniqueIndex:ux_cart_line,priority:1"`
	Category  Category  `json:"itemType" gorm:"type:varchar(16);not null;uniqueIndex:ux_cart_line,priority:2"`
	ItemID    uint64    `json:"productId" gorm:"not null;uniqueIndex:ux_cart_line,priority:3"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Option    string    `json:"optionSelected,omitempty" gorm:"column:option_selected;size:120;not null;default:'';uniqueIndex:ux_cart_line,priority:4"`
	Note      string    `json:"specialRequest,omitempty" gorm:"column:special_request;size:500;not null;default:'';uniqueIndex:ux_cart_line,priority:5"`
	CreatedAt time.Time `json:"dateAdded" gorm:"autoCreateTime"`

	DisplayName string `json:"name,omitempty" gorm:"-"`
}

func (CartLine) TableName() string { return "cart_lines" }

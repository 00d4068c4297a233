package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryProduct Category = "product"
	CategoryCandle  Category = "candle"
	CategoryCard    Category = "card"
	CategoryBox     Category = "box"
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryProduct, CategoryCandle, CategoryCard, CategoryBox}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		c = CategoryProduct
	}
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", NewValidationError("invalid item type")
}

// IsAddon reports whether items of this category become order addons rather than order items.
func (c Category) IsAddon() bool {
	return c == CategoryCandle || c == CategoryCard || c == CategoryBox
}

// CatalogItem is the priced view shared by every catalog variant.
type CatalogItem interface {
	ItemID() uint64
	ItemCategory() Category
	DisplayName() string
	UnitPrice() decimal.Decimal
	ImageURL() string
}

type Cake struct {
	ID           uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string          `json:"name" gorm:"size:120;not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit" gorm:"type:decimal(10,2)"`
	Images       []string        `json:"images" gorm:"type:text;serializer:json"`
	Description  string          `json:"description" gorm:"type:text"`
}

func (Cake) TableName() string { return "products" }

func (c Cake) ItemID() uint64             { return c.ID }
func (c Cake) ItemCategory() Category     { return CategoryProduct }
func (c Cake) DisplayName() string        { return c.Name }
func (c Cake) UnitPrice() decimal.Decimal { return c.Price }

func (c Cake) ImageURL() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0]
}

type Candle struct {
	ID    uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string          `json:"name" gorm:"size:120;not null"`
	Price decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Type  string          `json:"type" gorm:"size:60"`
	Img   string          `json:"img" gorm:"size:200"`
}

func (c Candle) ItemID() uint64             { return c.ID }
func (c Candle) ItemCategory() Category     { return CategoryCandle }
func (c Candle) DisplayName() string        { return c.Name }
func (c Candle) UnitPrice() decimal.Decimal { return c.Price }
func (c Candle) ImageURL() string           { return c.Img }

type Card struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string          `json:"name" gorm:"size:120;not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	HasDesignChoice bool            `json:"hasDesignChoice"`
	Img             string          `json:"img" gorm:"size:200"`
}

func (c Card) ItemID() uint64             { return c.ID }
func (c Card) ItemCategory() Category     { return CategoryCard }
func (c Card) DisplayName() string        { return c.Name }
func (c Card) UnitPrice() decimal.Decimal { return c.Price }
func (c Card) ImageURL() string           { return c.Img }

type Box struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"size:120;not null"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	HasSizeOption bool            `json:"hasSizeOption"`
	Img           string          `json:"img" gorm:"size:200"`
}

func (b Box) ItemID() uint64             { return b.ID }
func (b Box) ItemCategory() Category     { return CategoryBox }
func (b Box) DisplayName() string        { return b.Name }
func (b Box) UnitPrice() decimal.Decimal { return b.Price }
func (b Box) ImageURL() string           { return b.Img }

// PaymentMethod is referenced by orders but never charged by this service.
type PaymentMethod struct {
	ID     uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name   string `json:"name" gorm:"size:80;not null"`
	Active bool   `json:"active" gorm:"not null"`
}

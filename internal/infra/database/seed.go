package database

import (
	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed fills an empty catalog with the storefront's starter menu. It is a no-op once products exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Cake{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		cakes := []domain.Cake{
			{Name: "Strawberry Shortcake", Price: decimal.RequireFromString("30.00"), PricePerUnit: decimal.RequireFromString("6.00"),
				Images: []string{"img/strawberry.jpg"}, Description: "Chiffon layers with fresh strawberries and cream."},
			{Name: "Burnt Cheesecake", Price: decimal.RequireFromString("42.00"), PricePerUnit: decimal.RequireFromString("7.50"),
				Images: []string{"img/cheesecake.jpg"}, Description: "Basque style, caramelised top."},
			{Name: "Chocolate Indulgence", Price: decimal.RequireFromString("38.00"), PricePerUnit: decimal.RequireFromString("7.00"),
				Images: []string{"img/chocolate.jpg"}, Description: "Dark chocolate ganache."},
		}
		candles := []domain.Candle{
			{Name: "Number Candle", Price: decimal.RequireFromString("5.00"), Type: "number", Img: "img/candle-number.jpg"},
			{Name: "Sparkler Candle", Price: decimal.RequireFromString("3.50"), Type: "sparkler", Img: "img/candle-sparkler.jpg"},
		}
		cards := []domain.Card{
			{Name: "Greeting Card", Price: decimal.RequireFromString("2.00"), HasDesignChoice: true, Img: "img/card.jpg"},
		}
		boxes := []domain.Box{
			{Name: "Gift Box", Price: decimal.RequireFromString("4.00"), HasSizeOption: true, Img: "img/box.jpg"},
		}
		payments := []domain.PaymentMethod{
			{Name: "Cash on delivery", Active: true},
			{Name: "Online banking", Active: true},
			{Name: "E-wallet", Active: true},
		}
		for _, batch := range []interface{}{&cakes, &candles, &cards, &boxes, &payments} {
			if err := tx.Create(batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package models

import "fmt"

// Product is an item listed by a shop.
type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Price       float64    `json:"price"`
	ShopID      int64      `json:"shop_id"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   *Timestamp `json:"updated_at"`
}

func (p Product) String() string {
	return fmt.Sprintf("#%d %s  $%.2f", p.ID, p.Name, p.Price)
}

// ProductCreate is the payload for adding a product to a shop.
type ProductCreate struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gt=0"`
	ShopID      int64   `json:"shop_id" validate:"gt=0"`
}

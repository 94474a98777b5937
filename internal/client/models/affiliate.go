package models

import "fmt"

// Blogger promotes shop products through affiliate links.
type Blogger struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Bio       *string    `json:"bio,omitempty"`
	CreatedAt Timestamp  `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
}

func (b Blogger) String() string {
	return fmt.Sprintf("#%d %s <%s>", b.ID, b.Name, b.Email)
}

// BloggerCreate is the payload for registering a blogger.
type BloggerCreate struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Bio   string `json:"bio,omitempty"`
}

// AffiliateLink binds a blogger to a product under a short code.
type AffiliateLink struct {
	ID        int64      `json:"id"`
	ProductID int64      `json:"product_id"`
	BloggerID int64      `json:"blogger_id"`
	Code      string     `json:"code"`
	CreatedAt Timestamp  `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
}

// AffiliateLinkCreate is the payload for minting a link.
type AffiliateLinkCreate struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	BloggerID int64 `json:"blogger_id" validate:"gt=0"`
}

// Analytics aggregates per-blogger results for a product.
type Analytics struct {
	ID          int64      `json:"id"`
	ProductID   int64      `json:"product_id"`
	BloggerID   int64      `json:"blogger_id"`
	VisitCount  int64      `json:"visit_count"`
	OrderCount  int64      `json:"order_count"`
	ItemsSold   int64      `json:"items_sold"`
	MoneyEarned float64    `json:"money_earned"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   *Timestamp `json:"updated_at"`
}

func (a Analytics) String() string {
	return fmt.Sprintf("blogger=%d visits=%d orders=%d items=%d earned=$%.2f",
		a.BloggerID, a.VisitCount, a.OrderCount, a.ItemsSold, a.MoneyEarned)
}

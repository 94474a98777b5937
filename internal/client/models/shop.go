package models

// Shop is the authenticated principal of the client.
type Shop struct {
	ID          int64      `json:"id" validate:"gt=0"`
	Name        string     `json:"name" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   *Timestamp `json:"updated_at"`
}

// ShopCreate is the registration payload.
type ShopCreate struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Description string `json:"description,omitempty"`
}

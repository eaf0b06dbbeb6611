// model/cart.go
package model

import "time"

// CartItem is one line in a user's cart. Quantity is implicitly 1 per line;
// the same product can appear on several lines with different configurations.
type CartItem struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ProductID      int64     `json:"data_barang_id"`
	ProductName    string    `json:"nama_barang,omitempty"`
	Duration       string    `json:"durasi"`
	AddTV          bool      `json:"tambah_tv"`
	DeliveryMethod string    `json:"metode_pengiriman"`
	StartDate      string    `json:"start_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddCartItemReq adds a configured product to the cart.
// swagger:model AddCartItemReq
type AddCartItemReq struct {
	ProductID      int64  `json:"data_barang_id" validate:"required,gt=0"`
	Duration       string `json:"durasi" validate:"required"`
	AddTV          bool   `json:"tambah_tv"`
	DeliveryMethod string `json:"metode_pengiriman" validate:"required,oneof=DELIVERED SELF_PICKUP"`
	StartDate      string `json:"start_date" validate:"required"`
}

// UpdateCartItemReq reconfigures an existing cart line.
// swagger:model UpdateCartItemReq
type UpdateCartItemReq struct {
	Duration       string `json:"durasi" validate:"required"`
	AddTV          bool   `json:"tambah_tv"`
	DeliveryMethod string `json:"metode_pengiriman" validate:"required,oneof=DELIVERED SELF_PICKUP"`
	StartDate      string `json:"start_date" validate:"required"`
}

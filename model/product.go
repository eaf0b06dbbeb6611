// model/product.go
package model

import "time"

// Product is a catalog item offered for rent. Prices are integer rupiah,
// one per duration tier.
type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nama_barang"`
	Category     string    `json:"kategori"`
	Description  string    `json:"deskripsi"`
	ImageURL     string    `json:"gambar,omitempty"`
	Price12Hours int64     `json:"price_12_jam"`
	Price1Day    int64     `json:"price_1_hari"`
	Price2Days   int64     `json:"price_2_hari"`
	Stock        int64     `json:"jumlah_barang"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateProductReq is the admin payload for adding a catalog item.
// swagger:model CreateProductReq
type CreateProductReq struct {
	Name         string `json:"nama_barang" validate:"required"`
	Category     string `json:"kategori" validate:"required"`
	Description  string `json:"deskripsi"`
	ImageURL     string `json:"gambar"`
	Price12Hours int64  `json:"price_12_jam" validate:"gte=0"`
	Price1Day    int64  `json:"price_1_hari" validate:"gte=0"`
	Price2Days   int64  `json:"price_2_hari" validate:"gte=0"`
	Stock        int64  `json:"jumlah_barang" validate:"gte=0"`
}

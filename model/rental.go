// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalBooked   RentalStatus = "BOOKED"
	RentalActive   RentalStatus = "ACTIVE"
	RentalReturned RentalStatus = "RETURNED"
	RentalCanceled RentalStatus = "CANCELED"
)

// Rental is one rental record. StartDate/EndDate are calendar dates in
// YYYY-MM-DD; EndTime additionally carries the exact tier end for the
// overdue sweep.
type Rental struct {
	ID              int64        `json:"id"`
	UserID          int64        `json:"user_id"`
	ProductID       int64        `json:"data_barang_id"`
	Duration        string       `json:"durasi"`
	AddTV           bool         `json:"tambah_tv"`
	DeliveryMethod  string       `json:"metode_pengiriman"`
	DeliveryAddress string       `json:"lokasi_pengantaran,omitempty"`
	Quantity        int64        `json:"jumlah"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	EndTime         *time.Time   `json:"end_time,omitempty"`
	TotalPrice      int64        `json:"total_price"`
	Status          RentalStatus `json:"status"`
	XenditInvoiceID *string      `json:"xendit_invoice_id,omitempty"`
	PaymentLink     *string      `json:"payment_link,omitempty"`
	PaidAt          *time.Time   `json:"paid_at,omitempty"`
	ReturnedAt      *time.Time   `json:"returned_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// CreateRentalReq is the checkout submission payload.
// swagger:model CreateRentalReq
type CreateRentalReq struct {
	ProductID       int64  `json:"data_barang_id" validate:"required,gt=0"`
	Duration        string `json:"durasi" validate:"required"`
	AddTV           bool   `json:"tambah_tv"`
	DeliveryMethod  string `json:"metode_pengiriman" validate:"required,oneof=DELIVERED SELF_PICKUP"`
	DeliveryAddress string `json:"lokasi_pengantaran"`
	StartDate       string `json:"start_date" validate:"required"`
	Quantity        int64  `json:"jumlah" validate:"gte=0"`
	PayerEmail      string `json:"payer_email" validate:"required,email"`
}

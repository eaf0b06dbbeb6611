// Package pricing is the single source of truth for rental price and
// duration math. Every surface (catalog checkout, product detail, cart)
// quotes through it, so totals and end dates cannot drift between callers.
// All functions are pure: no I/O, no clock reads, safe for concurrent use.
package pricing

import (
	"errors"
	"time"

	"sewabarang/model"
)

// Duration is the closed set of rental tiers.
type Duration string

const (
	TwelveHours Duration = "12_jam"
	OneDay      Duration = "1_hari"
	TwoDays     Duration = "2_hari"
)

type DeliveryMethod string

const (
	Delivered  DeliveryMethod = "DELIVERED"
	SelfPickup DeliveryMethod = "SELF_PICKUP"
)

// Flat fees in rupiah, duration-independent.
const (
	TVSurcharge int64 = 20000
	DeliveryFee int64 = 15000
)

// DateLayout is the wire format for start_date and end_date.
const DateLayout = "2006-01-02"

// errors used by controllers

type ErrCode string

const (
	ErrInvalidDuration        ErrCode = "INVALID_DURATION"
	ErrInvalidDate            ErrCode = "INVALID_DATE"
	ErrOutOfStock             ErrCode = "OUT_OF_STOCK"
	ErrQuantityOutOfRange     ErrCode = "QUANTITY_OUT_OF_RANGE"
	ErrMissingStartDate       ErrCode = "MISSING_START_DATE"
	ErrMissingDeliveryAddress ErrCode = "MISSING_DELIVERY_ADDRESS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Selection is the transient checkout configuration a user is editing.
// Quantity zero means "surface does not expose quantity" and is priced as 1.
type Selection struct {
	Duration        Duration
	AddTV           bool
	DeliveryMethod  DeliveryMethod
	DeliveryAddress string
	StartDate       string // YYYY-MM-DD
	Quantity        int64
}

// Breakdown is the computed quote for one selection. Derived, never stored:
// persistence keeps only the final total.
type Breakdown struct {
	BasePrice   int64 `json:"base_price"`
	TVSurcharge int64 `json:"tv_surcharge"`
	DeliveryFee int64 `json:"delivery_fee"`
	Quantity    int64 `json:"jumlah"`
	Total       int64 `json:"total_price"`
}

// PriceForDuration returns the tier price for d. The switch is exhaustive
// over the closed enum; unknown codes are rejected rather than silently
// priced at a default tier.
func PriceForDuration(p model.Product, d Duration) (int64, error) {
	switch d {
	case TwelveHours:
		return p.Price12Hours, nil
	case OneDay:
		return p.Price1Day, nil
	case TwoDays:
		return p.Price2Days, nil
	default:
		return 0, makeErr(ErrInvalidDuration)
	}
}

// ComputeTotal prices sel against p. The delivery fee applies whenever the
// method is DELIVERED, on every surface. Quantity scales the full line
// (base + surcharges), not just the base price.
func ComputeTotal(p model.Product, sel Selection) (Breakdown, error) {
	base, err := PriceForDuration(p, sel.Duration)
	if err != nil {
		return Breakdown{}, err
	}

	qty := sel.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return Breakdown{}, makeErr(ErrQuantityOutOfRange)
	}

	b := Breakdown{BasePrice: base, Quantity: qty}
	if sel.AddTV {
		b.TVSurcharge = TVSurcharge
	}
	if sel.DeliveryMethod == Delivered {
		b.DeliveryFee = DeliveryFee
	}
	b.Total = (b.BasePrice + b.TVSurcharge + b.DeliveryFee) * qty
	return b, nil
}

// ComputeEndDate returns the rental end as a calendar date. The 12-hour tier
// ends on the same day: the input carries no time of day, so an overnight
// spill cannot be expressed. Callers holding a timestamp use EndTime.
func ComputeEndDate(startDate string, d Duration) (string, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return "", makeErr(ErrInvalidDate)
	}

	var days int
	switch d {
	case TwelveHours:
		days = 0
	case OneDay:
		days = 1
	case TwoDays:
		days = 2
	default:
		return "", makeErr(ErrInvalidDuration)
	}
	// AddDate normalizes month and year boundaries.
	return start.AddDate(0, 0, days).Format(DateLayout), nil
}

// EndTime returns the exact end of a rental starting at start.
func EndTime(start time.Time, d Duration) (time.Time, error) {
	switch d {
	case TwelveHours:
		return start.Add(12 * time.Hour), nil
	case OneDay:
		return start.Add(24 * time.Hour), nil
	case TwoDays:
		return start.Add(48 * time.Hour), nil
	default:
		return time.Time{}, makeErr(ErrInvalidDuration)
	}
}

// ValidateSelection gates a submission. Checks run in a fixed order and the
// first failure wins, so the caller can show one actionable message.
func ValidateSelection(p model.Product, sel Selection) error {
	if p.Stock <= 0 {
		return makeErr(ErrOutOfStock)
	}
	qty := sel.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 || qty > p.Stock {
		return makeErr(ErrQuantityOutOfRange)
	}
	if sel.StartDate == "" {
		return makeErr(ErrMissingStartDate)
	}
	if _, err := time.Parse(DateLayout, sel.StartDate); err != nil {
		return makeErr(ErrMissingStartDate)
	}
	if sel.DeliveryMethod == Delivered && sel.DeliveryAddress == "" {
		return makeErr(ErrMissingDeliveryAddress)
	}
	return nil
}

// ParseDuration converts a wire value into a Duration, rejecting anything
// outside the enum.
func ParseDuration(s string) (Duration, error) {
	switch Duration(s) {
	case TwelveHours, OneDay, TwoDays:
		return Duration(s), nil
	default:
		return "", makeErr(ErrInvalidDuration)
	}
}

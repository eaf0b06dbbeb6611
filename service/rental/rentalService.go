package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sewabarang/model"
	rrepo "sewabarang/repository/rental"
	xenditrepo "sewabarang/repository/xendit"
	"sewabarang/service/pricing"
)

// errors used by controllers

type ErrCode string

const (
	ErrProductNotFound ErrCode = "PRODUCT_NOT_FOUND"
	ErrNoStock         ErrCode = "NO_STOCK"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrNotActive       ErrCode = "NOT_ACTIVE"
	ErrNotFound        ErrCode = "NOT_FOUND"
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

// dto

type Created struct {
	RentalID    int64
	TotalPrice  int64
	EndDate     string
	Status      model.RentalStatus
	PaymentLink string
}

// HistoryRow = repository shape
type HistoryRow = rrepo.HistoryRow

type ProductRepo interface {
	Detail(ctx context.Context, id int64) (*model.Product, error)
	ReserveStock(ctx context.Context, tx *sql.Tx, id, n int64) (bool, error)
	RestoreStock(ctx context.Context, tx *sql.Tx, id, n int64) error
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) (int64, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error)
}

type Service interface {
	// Create: validate the selection, price it, reserve stock and generate
	// an invoice (status BOOKED until the payment callback arrives).
	Create(ctx context.Context, userID int64, req model.CreateRentalReq) (*Created, error)

	// Return: mark an ACTIVE rental returned and restore stock.
	Return(ctx context.Context, userID, rentalID int64) error

	// MyHistory: list rentals for a user.
	MyHistory(ctx context.Context, userID int64) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	db *sql.DB
	p  ProductRepo
	r  Repo
	x  xenditrepo.Repo
}

func New(db *sql.DB, p ProductRepo, r Repo, x xenditrepo.Repo) Service {
	return &service{db: db, p: p, r: r, x: x}
}

const invoiceExpiry = 24 * time.Hour

func (s *service) Create(ctx context.Context, userID int64, req model.CreateRentalReq) (out *Created, err error) {
	product, err := s.p.Detail(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrProductNotFound)
		}
		return nil, err
	}

	dur, err := pricing.ParseDuration(req.Duration)
	if err != nil {
		return nil, err
	}
	sel := pricing.Selection{
		Duration:        dur,
		AddTV:           req.AddTV,
		DeliveryMethod:  pricing.DeliveryMethod(req.DeliveryMethod),
		DeliveryAddress: req.DeliveryAddress,
		StartDate:       req.StartDate,
		Quantity:        req.Quantity,
	}
	if err = pricing.ValidateSelection(*product, sel); err != nil {
		return nil, err
	}

	// Stored total and end date are exactly the engine's outputs; nothing
	// downstream re-derives them.
	breakdown, err := pricing.ComputeTotal(*product, sel)
	if err != nil {
		return nil, err
	}
	endDate, err := pricing.ComputeEndDate(req.StartDate, dur)
	if err != nil {
		return nil, err
	}
	startOfDay, _ := time.Parse(pricing.DateLayout, req.StartDate)
	endTime, err := pricing.EndTime(startOfDay, dur)
	if err != nil {
		return nil, err
	}

	inv, err := s.x.CreateInvoice(xenditrepo.CreateInvoiceReq{
		ExternalID:  fmt.Sprintf("rental:%d:%d", userID, time.Now().UnixNano()),
		Amount:      breakdown.Total,
		PayerEmail:  req.PayerEmail,
		Description: "Sewa " + product.Name,
		ExpirySec:   int(invoiceExpiry.Seconds()),
	})
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ok, err := s.p.ReserveStock(ctx, tx, product.ID, breakdown.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrNoStock)
	}

	rec := &model.Rental{
		UserID:          userID,
		ProductID:       product.ID,
		Duration:        string(dur),
		AddTV:           req.AddTV,
		DeliveryMethod:  req.DeliveryMethod,
		DeliveryAddress: req.DeliveryAddress,
		Quantity:        breakdown.Quantity,
		StartDate:       req.StartDate,
		EndDate:         endDate,
		EndTime:         &endTime,
		TotalPrice:      breakdown.Total,
		Status:          model.RentalBooked,
		XenditInvoiceID: &inv.InvoiceID,
		PaymentLink:     &inv.InvoiceURL,
	}
	rentalID, err := s.r.Insert(ctx, tx, rec)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &Created{
		RentalID:    rentalID,
		TotalPrice:  breakdown.Total,
		EndDate:     endDate,
		Status:      model.RentalBooked,
		PaymentLink: inv.InvoiceURL,
	}, nil
}

func (s *service) Return(ctx context.Context, userID, rentalID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rec, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if rec.UserID != userID {
		return makeErr(ErrNotOwner)
	}
	if rec.Status != model.RentalActive {
		return makeErr(ErrNotActive)
	}

	ok, err := s.r.MarkReturned(ctx, tx, rentalID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotActive)
	}
	if err = s.p.RestoreStock(ctx, tx, rec.ProductID, rec.Quantity); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) MyHistory(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return s.r.ListByUser(ctx, userID)
}

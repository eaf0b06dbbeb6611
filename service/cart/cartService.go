package cartsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sewabarang/model"
	"sewabarang/service/pricing"
	rentalsvc "sewabarang/service/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrNotOwner ErrCode = "NOT_OWNER"
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

// PricedItem is a cart line with its engine-computed quote. Cart lines are
// always quantity 1.
type PricedItem struct {
	model.CartItem
	Breakdown pricing.Breakdown `json:"breakdown"`
	EndDate   string            `json:"end_date"`
}

type CartTotals struct {
	Items      []PricedItem `json:"items"`
	GrandTotal int64        `json:"grand_total"`
}

type Repo interface {
	Add(ctx context.Context, item *model.CartItem) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Get(ctx context.Context, id int64) (*model.CartItem, error)
	Update(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type ProductRepo interface {
	Detail(ctx context.Context, id int64) (*model.Product, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	Add(ctx context.Context, userID int64, req model.AddCartItemReq) (int64, error)
	Update(ctx context.Context, userID, itemID int64, req model.UpdateCartItemReq) error
	Remove(ctx context.Context, userID, itemID int64) error

	// Clear drops every line in the user's cart.
	Clear(ctx context.Context, userID int64) error

	// Totals prices every line through the engine; lines whose product
	// vanished are skipped rather than failing the whole cart.
	Totals(ctx context.Context, userID int64) (*CartTotals, error)

	// Checkout submits one rental per line, then empties the cart.
	Checkout(ctx context.Context, userID int64, payerEmail string) ([]rentalsvc.Created, error)
}

type service struct {
	r       Repo
	p       ProductRepo
	u       UserRepo
	rentals rentalsvc.Service
}

func New(r Repo, p ProductRepo, u UserRepo, rentals rentalsvc.Service) Service {
	return &service{r: r, p: p, u: u, rentals: rentals}
}

func (s *service) Add(ctx context.Context, userID int64, req model.AddCartItemReq) (int64, error) {
	if _, err := pricing.ParseDuration(req.Duration); err != nil {
		return 0, err
	}
	if _, err := s.p.Detail(ctx, req.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrNotFound)
		}
		return 0, err
	}
	return s.r.Add(ctx, &model.CartItem{
		UserID:         userID,
		ProductID:      req.ProductID,
		Duration:       req.Duration,
		AddTV:          req.AddTV,
		DeliveryMethod: req.DeliveryMethod,
		StartDate:      req.StartDate,
	})
}

func (s *service) Update(ctx context.Context, userID, itemID int64, req model.UpdateCartItemReq) error {
	if _, err := pricing.ParseDuration(req.Duration); err != nil {
		return err
	}
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	item.Duration = req.Duration
	item.AddTV = req.AddTV
	item.DeliveryMethod = req.DeliveryMethod
	item.StartDate = req.StartDate
	return s.r.Update(ctx, item)
}

func (s *service) Remove(ctx context.Context, userID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	return s.r.Delete(ctx, itemID)
}

func (s *service) Clear(ctx context.Context, userID int64) error {
	return s.r.DeleteByUser(ctx, userID)
}

func (s *service) ownedItem(ctx context.Context, userID, itemID int64) (*model.CartItem, error) {
	item, err := s.r.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, makeErr(ErrNotOwner)
	}
	return item, nil
}

func (s *service) Totals(ctx context.Context, userID int64) (*CartTotals, error) {
	items, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &CartTotals{}
	for _, item := range items {
		product, err := s.p.Detail(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		sel := pricing.Selection{
			Duration:       pricing.Duration(item.Duration),
			AddTV:          item.AddTV,
			DeliveryMethod: pricing.DeliveryMethod(item.DeliveryMethod),
			StartDate:      item.StartDate,
		}
		b, err := pricing.ComputeTotal(*product, sel)
		if err != nil {
			return nil, err
		}
		endDate, err := pricing.ComputeEndDate(item.StartDate, sel.Duration)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, PricedItem{CartItem: item, Breakdown: b, EndDate: endDate})
		out.GrandTotal += b.Total
	}
	return out, nil
}

func (s *service) Checkout(ctx context.Context, userID int64, payerEmail string) ([]rentalsvc.Created, error) {
	items, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, makeErr(ErrNotFound)
	}

	user, err := s.u.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var created []rentalsvc.Created
	for _, item := range items {
		req := model.CreateRentalReq{
			ProductID:      item.ProductID,
			Duration:       item.Duration,
			AddTV:          item.AddTV,
			DeliveryMethod: item.DeliveryMethod,
			StartDate:      item.StartDate,
			PayerEmail:     payerEmail,
		}
		if item.DeliveryMethod == string(pricing.Delivered) {
			// delivered cart lines ship to the profile address
			req.DeliveryAddress = user.Address
		}
		out, err := s.rentals.Create(ctx, userID, req)
		if err != nil {
			// earlier lines stay submitted; the caller sees which line broke
			return created, err
		}
		created = append(created, *out)
		// A line that stays behind here would be submitted again on the
		// next checkout, so a failed delete has to surface.
		if err := s.r.Delete(ctx, item.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return created, fmt.Errorf("clear cart line %d: %w", item.ID, err)
		}
	}
	return created, nil
}

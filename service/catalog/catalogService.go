package catalogsvc

import (
	"context"
	"errors"

	"sewabarang/model"
	"sewabarang/service/pricing"
)

type Product = model.Product

type Repo interface {
	Create(ctx context.Context, p *model.Product) (int64, error)
	List(ctx context.Context) ([]model.Product, error)
	Detail(ctx context.Context, id int64) (*model.Product, error)
	AddStock(ctx context.Context, id int64, n int64) error
}

// Quote is a priced preview for one product and selection, shown on the
// product-detail surface before checkout.
type Quote struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
	EndDate   string            `json:"end_date"`
}

type Service interface {
	Create(ctx context.Context, req model.CreateProductReq) (int64, error)
	List(ctx context.Context) ([]Product, error)
	Detail(ctx context.Context, id int64) (*Product, error)
	AddStock(ctx context.Context, id int64, n int64) error
	QuoteFor(ctx context.Context, productID int64, sel pricing.Selection) (*Quote, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, req model.CreateProductReq) (int64, error) {
	if req.Name == "" || req.Category == "" {
		return 0, errors.New("invalid payload")
	}
	if req.Price12Hours < 0 || req.Price1Day < 0 || req.Price2Days < 0 || req.Stock < 0 {
		return 0, errors.New("invalid payload")
	}
	return s.r.Create(ctx, &model.Product{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Price12Hours: req.Price12Hours,
		Price1Day:    req.Price1Day,
		Price2Days:   req.Price2Days,
		Stock:        req.Stock,
	})
}

func (s *service) List(ctx context.Context) ([]Product, error)            { return s.r.List(ctx) }
func (s *service) Detail(ctx context.Context, id int64) (*Product, error) { return s.r.Detail(ctx, id) }

func (s *service) AddStock(ctx context.Context, id int64, n int64) error {
	return s.r.AddStock(ctx, id, n)
}

// QuoteFor prices a prospective selection without reserving anything.
func (s *service) QuoteFor(ctx context.Context, productID int64, sel pricing.Selection) (*Quote, error) {
	p, err := s.r.Detail(ctx, productID)
	if err != nil {
		return nil, err
	}
	b, err := pricing.ComputeTotal(*p, sel)
	if err != nil {
		return nil, err
	}
	endDate, err := pricing.ComputeEndDate(sel.StartDate, sel.Duration)
	if err != nil {
		return nil, err
	}
	return &Quote{Breakdown: b, EndDate: endDate}, nil
}

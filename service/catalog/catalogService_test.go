// service/catalog/catalog_service_test.go
package catalogsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"sewabarang/model"
	catalogsvc "sewabarang/service/catalog"
	"sewabarang/service/pricing"
)

type repoMock struct {
	createFn   func(ctx context.Context, p *model.Product) (int64, error)
	listFn     func(ctx context.Context) ([]model.Product, error)
	detailFn   func(ctx context.Context, id int64) (*model.Product, error)
	addStockFn func(ctx context.Context, id int64, n int64) error
}

func (m *repoMock) Create(ctx context.Context, p *model.Product) (int64, error) {
	return m.createFn(ctx, p)
}
func (m *repoMock) List(ctx context.Context) ([]model.Product, error) { return m.listFn(ctx) }
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Product, error) {
	return m.detailFn(ctx, id)
}
func (m *repoMock) AddStock(ctx context.Context, id int64, n int64) error {
	return m.addStockFn(ctx, id, n)
}

func TestCreate_Validation(t *testing.T) {
	s := catalogsvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), model.CreateProductReq{Category: "elektronik"}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.Create(context.Background(), model.CreateProductReq{Name: "Proyektor"}); err == nil {
		t.Fatal("expected error for empty category")
	}
	if _, err := s.Create(context.Background(), model.CreateProductReq{
		Name: "Proyektor", Category: "elektronik", Price1Day: -1,
	}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, p *model.Product) (int64, error) {
			if p.Name != "Proyektor" || p.Price1Day != 90000 {
				t.Fatalf("unexpected product: %+v", p)
			}
			return 42, nil
		},
	}
	s := catalogsvc.New(m)
	id, err := s.Create(context.Background(), model.CreateProductReq{
		Name:         "Proyektor",
		Category:     "elektronik",
		Price12Hours: 50000,
		Price1Day:    90000,
		Price2Days:   150000,
		Stock:        3,
	})
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestQuoteFor(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Product, error) {
			return &model.Product{
				ID: id, Price12Hours: 50000, Price1Day: 90000, Price2Days: 150000, Stock: 3,
			}, nil
		},
	}
	s := catalogsvc.New(m)

	q, err := s.QuoteFor(context.Background(), 7, pricing.Selection{
		Duration:       pricing.TwoDays,
		AddTV:          true,
		DeliveryMethod: pricing.Delivered,
		StartDate:      "2025-03-10",
		Quantity:       1,
	})
	if err != nil {
		t.Fatalf("QuoteFor error: %v", err)
	}
	if q.Breakdown.Total != 185000 {
		t.Fatalf("total = %d; want 185000", q.Breakdown.Total)
	}
	if q.EndDate != "2025-03-12" {
		t.Fatalf("end date = %s; want 2025-03-12", q.EndDate)
	}
}

func TestQuoteFor_ProductMissing(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Product, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := catalogsvc.New(m)
	if _, err := s.QuoteFor(context.Background(), 7, pricing.Selection{Duration: pricing.OneDay, StartDate: "2025-03-10"}); err == nil {
		t.Fatal("expected error for missing product")
	}
}

func TestQuoteFor_BadDuration(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Product, error) {
			return &model.Product{ID: id, Stock: 1}, nil
		},
	}
	s := catalogsvc.New(m)
	_, err := s.QuoteFor(context.Background(), 7, pricing.Selection{Duration: "5_hari", StartDate: "2025-03-10"})
	if pricing.Code(err) != pricing.ErrInvalidDuration {
		t.Fatalf("got %v; want INVALID_DURATION", err)
	}
}

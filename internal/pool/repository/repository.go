package repository

import (
	"context"
	"errors"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool"
)

var (
	ErrNotFound = errors.New("not found")
)

// Repository provides persistence for pools, investors and buyout audit
// records. Implementations must treat buyouts as append-only.
type Repository interface {
	CreatePool(ctx context.Context, p *pool.Pool) (string, error)
	GetPool(ctx context.Context, id string) (*pool.Pool, error)
	ListPools(ctx context.Context) ([]*pool.Pool, error)
	IncrementAdminShare(ctx context.Context, poolID string, delta float64) error

	CreateInvestor(ctx context.Context, inv *pool.Investor) (string, error)
	GetInvestor(ctx context.Context, poolID, investorID string) (*pool.Investor, error)
	FindInvestorByName(ctx context.Context, name string) (*pool.Investor, error)
	ListInvestors(ctx context.Context, poolID string) ([]*pool.Investor, error)
	IncrementInvestorAmount(ctx context.Context, investorID string, delta float64) error

	CreateBuyout(ctx context.Context, b *pool.Buyout) (string, error)
	ListBuyoutsByPool(ctx context.Context, poolID string) ([]*pool.Buyout, error)
	ListBuyoutsByInvestor(ctx context.Context, investorID string) ([]*pool.Buyout, error)
}

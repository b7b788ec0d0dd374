package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check: *MemoryRepo must satisfy Repository.
var _ Repository = (*MemoryRepo)(nil)

// MemoryRepo is an in-memory Repository used by unit tests. Ids are ObjectID
// hex strings so id validation behaves the same as against Mongo.
type MemoryRepo struct {
	mu        sync.RWMutex
	pools     map[string]*pool.Pool
	investors map[string]*pool.Investor
	buyouts   map[string]*pool.Buyout
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		pools:     make(map[string]*pool.Pool),
		investors: make(map[string]*pool.Investor),
		buyouts:   make(map[string]*pool.Buyout),
	}
}

func newID() string { return primitive.NewObjectID().Hex() }

func (m *MemoryRepo) CreatePool(ctx context.Context, p *pool.Pool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	cp := *p
	m.pools[p.ID] = &cp
	return p.ID, nil
}

func (m *MemoryRepo) GetPool(ctx context.Context, id string) (*pool.Pool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pools[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepo) ListPools(ctx context.Context) ([]*pool.Pool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*pool.Pool, 0, len(m.pools))
	for _, p := range m.pools {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) IncrementAdminShare(ctx context.Context, poolID string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pools[poolID]
	if !ok {
		return ErrNotFound
	}
	p.AdminShare += delta
	return nil
}

func (m *MemoryRepo) CreateInvestor(ctx context.Context, inv *pool.Investor) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv.ID == "" {
		inv.ID = newID()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	cp := *inv
	m.investors[inv.ID] = &cp
	return inv.ID, nil
}

func (m *MemoryRepo) GetInvestor(ctx context.Context, poolID, investorID string) (*pool.Investor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.investors[investorID]
	if !ok || inv.PoolID != poolID {
		return nil, ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *MemoryRepo) FindInvestorByName(ctx context.Context, name string) (*pool.Investor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.investors {
		if inv.Name == name {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) ListInvestors(ctx context.Context, poolID string) ([]*pool.Investor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*pool.Investor{}
	for _, inv := range m.investors {
		if inv.PoolID == poolID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) IncrementInvestorAmount(ctx context.Context, investorID string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.investors[investorID]
	if !ok {
		return ErrNotFound
	}
	inv.Amount += delta
	return nil
}

func (m *MemoryRepo) CreateBuyout(ctx context.Context, b *pool.Buyout) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = newID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	cp := *b
	m.buyouts[b.ID] = &cp
	return b.ID, nil
}

func (m *MemoryRepo) ListBuyoutsByPool(ctx context.Context, poolID string) ([]*pool.Buyout, error) {
	return m.listBuyouts(func(b *pool.Buyout) bool { return b.PoolID == poolID })
}

func (m *MemoryRepo) ListBuyoutsByInvestor(ctx context.Context, investorID string) ([]*pool.Buyout, error) {
	return m.listBuyouts(func(b *pool.Buyout) bool { return b.InvestorID == investorID })
}

func (m *MemoryRepo) listBuyouts(match func(*pool.Buyout) bool) ([]*pool.Buyout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*pool.Buyout{}
	for _, b := range m.buyouts {
		if match(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

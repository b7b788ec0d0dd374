package service

import (
	"context"
	"strings"
	"sync"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool"
	"github.com/fundvault/fundvault/backend/go-services/internal/pool/repository"
	"github.com/fundvault/fundvault/backend/go-services/pkg/logger"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the pool ledger business operations. Capacity-checked
// mutations against the same pool are serialized with a per-pool mutex so two
// concurrent contributions cannot jointly overshoot the funding goal.
type Service struct {
	repo  repository.Repository
	locks sync.Map // map[poolID]*sync.Mutex
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// lockPool serializes mutations for one pool. Returns the unlock func.
func (s *Service) lockPool(poolID string) func() {
	v, _ := s.locks.LoadOrStore(poolID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func validID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// AddInvestorParams is the validated input for AddInvestor.
type AddInvestorParams struct {
	PoolID   string
	Name     string
	Amount   float64
	Mobile   string
	Password string
}

// BuyoutParams is the validated input for Buyout.
type BuyoutParams struct {
	PoolID     string
	InvestorID string
	Amount     float64
}

// CreatePool records a new pool. adminShare is the operator's initial capital
// and becomes the immutable initialAdminAmount snapshot.
func (s *Service) CreatePool(ctx context.Context, name string, totalAmount, adminShare float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Reason: "name and totalAmount are required"}
	}
	if totalAmount <= 0 {
		return "", &ValidationError{Reason: "totalAmount must be a positive number"}
	}
	if adminShare < 0 {
		return "", &ValidationError{Reason: "adminShare must not be negative"}
	}
	if adminShare > totalAmount {
		return "", &CapacityExceededError{Remaining: totalAmount}
	}
	p := &pool.Pool{
		Name:               name,
		TotalAmount:        totalAmount,
		AdminShare:         adminShare,
		InitialAdminAmount: adminShare,
	}
	return s.repo.CreatePool(ctx, p)
}

func (s *Service) ListPools(ctx context.Context) ([]*pool.Pool, error) {
	return s.repo.ListPools(ctx)
}

func (s *Service) ListInvestors(ctx context.Context, poolID string) ([]*pool.Investor, error) {
	if !validID(poolID) {
		return nil, &ValidationError{Reason: "invalid pool id format"}
	}
	if _, err := s.repo.GetPool(ctx, poolID); err != nil {
		return nil, err
	}
	return s.repo.ListInvestors(ctx, poolID)
}

// InvestmentStatus recomputes the pool's committed capital from scratch. Every
// capacity check below calls this fresh, never a cached value.
func (s *Service) InvestmentStatus(ctx context.Context, poolID string) (*pool.Pool, pool.InvestmentStatus, error) {
	var st pool.InvestmentStatus
	if !validID(poolID) {
		return nil, st, &ValidationError{Reason: "invalid pool id format"}
	}
	p, err := s.repo.GetPool(ctx, poolID)
	if err != nil {
		return nil, st, err
	}
	investors, err := s.repo.ListInvestors(ctx, poolID)
	if err != nil {
		return nil, st, err
	}
	total := p.AdminShare
	for _, inv := range investors {
		total += inv.Amount
	}
	st.TotalInvestment = total
	st.RemainingAmount = p.TotalAmount - total
	st.IsFunded = total >= p.TotalAmount
	return p, st, nil
}

// AddInvestor admits a new investor when the pool still has capacity. The
// plaintext password is bcrypt-hashed before anything is persisted.
func (s *Service) AddInvestor(ctx context.Context, params AddInvestorParams) (string, error) {
	if !validID(params.PoolID) {
		return "", &ValidationError{Reason: "invalid pool id format"}
	}
	if strings.TrimSpace(params.Name) == "" {
		return "", &ValidationError{Reason: "personName is required"}
	}
	if params.Amount <= 0 {
		return "", &ValidationError{Reason: "amount must be a positive number"}
	}
	if params.Password == "" {
		return "", &ValidationError{Reason: "password is required"}
	}

	unlock := s.lockPool(params.PoolID)
	defer unlock()

	_, st, err := s.InvestmentStatus(ctx, params.PoolID)
	if err != nil {
		return "", err
	}
	if params.Amount > st.RemainingAmount {
		return "", &CapacityExceededError{Remaining: st.RemainingAmount}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	inv := &pool.Investor{
		PoolID:        params.PoolID,
		Name:          strings.TrimSpace(params.Name),
		Amount:        params.Amount,
		InitialAmount: params.Amount,
		Mobile:        params.Mobile,
		PasswordHash:  string(hash),
	}
	return s.repo.CreateInvestor(ctx, inv)
}

// AddAdminShares increases the operator's capital in a pool, bounded by the
// remaining capacity. The increment is a single document-level update.
func (s *Service) AddAdminShares(ctx context.Context, poolID string, extraAmount float64) error {
	if !validID(poolID) {
		return &ValidationError{Reason: "invalid pool id format"}
	}
	if extraAmount <= 0 {
		return &ValidationError{Reason: "extraAmount must be a positive number"}
	}

	unlock := s.lockPool(poolID)
	defer unlock()

	_, st, err := s.InvestmentStatus(ctx, poolID)
	if err != nil {
		return err
	}
	if extraAmount > st.RemainingAmount {
		return &CapacityExceededError{Remaining: st.RemainingAmount}
	}
	return s.repo.IncrementAdminShare(ctx, poolID, extraAmount)
}

// Buyout transfers part of an investor's position to the admin share and logs
// an immutable audit record. The three writes are not one transaction; each
// later failure compensates the earlier writes so a partial buyout is not left
// behind.
func (s *Service) Buyout(ctx context.Context, params BuyoutParams) (string, error) {
	if !validID(params.PoolID) || !validID(params.InvestorID) {
		return "", &ValidationError{Reason: "invalid pool id or person id format"}
	}
	if params.Amount <= 0 {
		return "", &ValidationError{Reason: "buyout amount must be a positive number"}
	}

	unlock := s.lockPool(params.PoolID)
	defer unlock()

	inv, err := s.repo.GetInvestor(ctx, params.PoolID, params.InvestorID)
	if err != nil {
		return "", err
	}
	if params.Amount > inv.Amount {
		return "", &InvalidAmountError{Requested: params.Amount, Available: inv.Amount}
	}

	if err := s.repo.IncrementInvestorAmount(ctx, inv.ID, -params.Amount); err != nil {
		return "", err
	}
	if err := s.repo.IncrementAdminShare(ctx, params.PoolID, params.Amount); err != nil {
		if cerr := s.repo.IncrementInvestorAmount(ctx, inv.ID, params.Amount); cerr != nil {
			logger.Errorf("buyout compensation failed: pool=%s investor=%s amount=%.2f: %v", params.PoolID, inv.ID, params.Amount, cerr)
		}
		return "", err
	}
	b := &pool.Buyout{
		PoolID:       params.PoolID,
		InvestorID:   inv.ID,
		InvestorName: inv.Name,
		Amount:       params.Amount,
	}
	id, err := s.repo.CreateBuyout(ctx, b)
	if err != nil {
		if cerr := s.repo.IncrementAdminShare(ctx, params.PoolID, -params.Amount); cerr != nil {
			logger.Errorf("buyout compensation failed: pool=%s amount=%.2f: %v", params.PoolID, params.Amount, cerr)
		}
		if cerr := s.repo.IncrementInvestorAmount(ctx, inv.ID, params.Amount); cerr != nil {
			logger.Errorf("buyout compensation failed: investor=%s amount=%.2f: %v", inv.ID, params.Amount, cerr)
		}
		return "", err
	}
	return id, nil
}

// Summarize assembles the full derived view of a pool: header, capacity
// status, 2-decimal share percentages, active investors and buyout history
// newest-first.
func (s *Service) Summarize(ctx context.Context, poolID string) (*pool.Summary, error) {
	p, st, err := s.InvestmentStatus(ctx, poolID)
	if err != nil {
		return nil, err
	}
	investors, err := s.repo.ListInvestors(ctx, poolID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ListBuyoutsByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	active := []pool.InvestorShare{}
	for _, inv := range investors {
		if inv.Amount > 0 {
			active = append(active, pool.InvestorShare{
				Investor:        *inv,
				SharePercentage: sharePercentage(inv.Amount, p.TotalAmount),
			})
		}
	}

	return &pool.Summary{
		PoolDetails: pool.PoolDetails{
			ID:                 p.ID,
			Name:               p.Name,
			TotalAmount:        p.TotalAmount,
			InitialAdminAmount: p.InitialAdminAmount,
			CreatedAt:          p.CreatedAt,
		},
		InvestmentStatus: st,
		AdminContribution: pool.AdminContribution{
			Amount:          p.AdminShare,
			SharePercentage: sharePercentage(p.AdminShare, p.TotalAmount),
		},
		Investors:     active,
		InvestorCount: len(active),
		BuyoutHistory: history,
	}, nil
}

// ProfitDistribution computes each participant's cut of profitAmount in
// proportion to their current stake. Pure computation, nothing is persisted.
// The admin (when holding shares) comes first, then investors in insertion
// order.
func (s *Service) ProfitDistribution(ctx context.Context, poolID string, profitAmount float64) ([]pool.ProfitShare, error) {
	if !validID(poolID) {
		return nil, &ValidationError{Reason: "invalid pool id format"}
	}
	if profitAmount < 0 {
		return nil, &ValidationError{Reason: "profitAmount must be a positive number"}
	}
	p, st, err := s.InvestmentStatus(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if st.TotalInvestment == 0 {
		return nil, ErrZeroInvestment
	}
	investors, err := s.repo.ListInvestors(ctx, poolID)
	if err != nil {
		return nil, err
	}

	total := decimal.NewFromFloat(st.TotalInvestment)
	profit := decimal.NewFromFloat(profitAmount)
	distribution := []pool.ProfitShare{}

	appendShare := func(id, name string, investment float64) {
		frac := decimal.NewFromFloat(investment).Div(total)
		distribution = append(distribution, pool.ProfitShare{
			ParticipantID:   id,
			Name:            name,
			Investment:      investment,
			SharePercentage: frac.Mul(decimal.NewFromInt(100)).InexactFloat64(),
			ProfitShare:     profit.Mul(frac).InexactFloat64(),
		})
	}

	if p.AdminShare > 0 {
		appendShare("admin", "Admin", p.AdminShare)
	}
	for _, inv := range investors {
		if inv.Amount > 0 {
			appendShare(inv.ID, inv.Name, inv.Amount)
		}
	}
	return distribution, nil
}

// LookupInvestor verifies an investor's name+password and returns their record
// with buyout history newest-first. Unknown name and wrong password yield the
// identical error.
func (s *Service) LookupInvestor(ctx context.Context, name, password string) (*pool.Investor, []*pool.Buyout, error) {
	if strings.TrimSpace(name) == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}
	inv, err := s.repo.FindInvestorByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(inv.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	history, err := s.repo.ListBuyoutsByInvestor(ctx, inv.ID)
	if err != nil {
		return nil, nil, err
	}
	return inv, history, nil
}

// sharePercentage returns amount/total as a percentage rounded to 2 decimal
// places; 0 when total is 0.
func sharePercentage(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

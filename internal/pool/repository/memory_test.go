package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryRepo_PoolLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	id, err := repo.CreatePool(ctx, &pool.Pool{Name: "Fund A", TotalAmount: 1000, AdminShare: 100})
	require.NoError(t, err)
	// ids must be valid ObjectID hex so service-level validation holds
	_, err = primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	p, err := repo.GetPool(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Fund A", p.Name)
	require.False(t, p.CreatedAt.IsZero())

	require.NoError(t, repo.IncrementAdminShare(ctx, id, 50))
	p, err = repo.GetPool(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 150.0, p.AdminShare)

	_, err = repo.GetPool(ctx, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_ListPoolsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	old := time.Now().UTC().Add(-time.Hour)
	_, err := repo.CreatePool(ctx, &pool.Pool{Name: "old", TotalAmount: 1, CreatedAt: old})
	require.NoError(t, err)
	_, err = repo.CreatePool(ctx, &pool.Pool{Name: "new", TotalAmount: 1})
	require.NoError(t, err)

	pools, err := repo.ListPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	require.Equal(t, "new", pools[0].Name)
}

func TestMemoryRepo_Investors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	poolID, err := repo.CreatePool(ctx, &pool.Pool{Name: "Fund A", TotalAmount: 1000})
	require.NoError(t, err)
	otherPool, err := repo.CreatePool(ctx, &pool.Pool{Name: "Fund B", TotalAmount: 1000})
	require.NoError(t, err)

	invID, err := repo.CreateInvestor(ctx, &pool.Investor{PoolID: poolID, Name: "alice", Amount: 100})
	require.NoError(t, err)

	// lookup is scoped to the pool
	_, err = repo.GetInvestor(ctx, otherPool, invID)
	require.ErrorIs(t, err, ErrNotFound)

	inv, err := repo.GetInvestor(ctx, poolID, invID)
	require.NoError(t, err)
	require.Equal(t, "alice", inv.Name)

	require.NoError(t, repo.IncrementInvestorAmount(ctx, invID, -40))
	inv, err = repo.GetInvestor(ctx, poolID, invID)
	require.NoError(t, err)
	require.Equal(t, 60.0, inv.Amount)

	byName, err := repo.FindInvestorByName(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, invID, byName.ID)
	_, err = repo.FindInvestorByName(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_BuyoutsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	poolID, err := repo.CreatePool(ctx, &pool.Pool{Name: "Fund A", TotalAmount: 1000})
	require.NoError(t, err)
	invID, err := repo.CreateInvestor(ctx, &pool.Investor{PoolID: poolID, Name: "alice", Amount: 300})
	require.NoError(t, err)

	older := time.Now().UTC().Add(-time.Minute)
	_, err = repo.CreateBuyout(ctx, &pool.Buyout{PoolID: poolID, InvestorID: invID, Amount: 50, CreatedAt: older})
	require.NoError(t, err)
	_, err = repo.CreateBuyout(ctx, &pool.Buyout{PoolID: poolID, InvestorID: invID, Amount: 75})
	require.NoError(t, err)

	byPool, err := repo.ListBuyoutsByPool(ctx, poolID)
	require.NoError(t, err)
	require.Len(t, byPool, 2)
	require.Equal(t, 75.0, byPool[0].Amount)

	byInvestor, err := repo.ListBuyoutsByInvestor(ctx, invID)
	require.NoError(t, err)
	require.Len(t, byInvestor, 2)
	require.Equal(t, 75.0, byInvestor[0].Amount)
}

func TestMemoryRepo_CopySemantics(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	id, err := repo.CreatePool(ctx, &pool.Pool{Name: "Fund A", TotalAmount: 1000})
	require.NoError(t, err)

	p, err := repo.GetPool(ctx, id)
	require.NoError(t, err)
	p.Name = "mutated"

	again, err := repo.GetPool(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Fund A", again.Name)
}

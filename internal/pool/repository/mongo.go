package repository

import (
	"context"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check: *MongoRepo must satisfy Repository.
var _ Repository = (*MongoRepo)(nil)

// MongoRepo implements Repository over the pools, people and buyouts
// collections. Pool and investor ids are ObjectID hex strings; cross-document
// references (poolId, personId) are stored as plain hex strings.
type MongoRepo struct {
	pools   *mongo.Collection
	people  *mongo.Collection
	buyouts *mongo.Collection
}

// NewMongoRepo creates the repository and ensures the reference-field indexes.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	people := db.Collection("people")
	buyouts := db.Collection("buyouts")
	// index lookups by owning pool and by investor
	people.Indexes().CreateOne(context.Background(),
		mongo.IndexModel{Keys: bson.D{{Key: "poolId", Value: 1}}})
	buyouts.Indexes().CreateOne(context.Background(),
		mongo.IndexModel{Keys: bson.D{{Key: "poolId", Value: 1}}})
	buyouts.Indexes().CreateOne(context.Background(),
		mongo.IndexModel{Keys: bson.D{{Key: "personId", Value: 1}}})
	return &MongoRepo{
		pools:   db.Collection("pools"),
		people:  people,
		buyouts: buyouts,
	}
}

func (r *MongoRepo) CreatePool(ctx context.Context, p *pool.Pool) (string, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := r.pools.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}
	return oid.Hex(), nil
}

func (r *MongoRepo) GetPool(ctx context.Context, id string) (*pool.Pool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var p pool.Pool
	if err := r.pools.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepo) ListPools(ctx context.Context) ([]*pool.Pool, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.pools.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*pool.Pool{}
	for cur.Next(ctx) {
		var p pool.Pool
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

// IncrementAdminShare applies a single document-level $inc so concurrent
// updates cannot lose writes.
func (r *MongoRepo) IncrementAdminShare(ctx context.Context, poolID string, delta float64) error {
	oid, err := primitive.ObjectIDFromHex(poolID)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.pools.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"adminShare": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) CreateInvestor(ctx context.Context, inv *pool.Investor) (string, error) {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	res, err := r.people.InsertOne(ctx, inv)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}
	return oid.Hex(), nil
}

func (r *MongoRepo) GetInvestor(ctx context.Context, poolID, investorID string) (*pool.Investor, error) {
	oid, err := primitive.ObjectIDFromHex(investorID)
	if err != nil {
		return nil, ErrNotFound
	}
	var inv pool.Investor
	if err := r.people.FindOne(ctx, bson.M{"_id": oid, "poolId": poolID}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *MongoRepo) FindInvestorByName(ctx context.Context, name string) (*pool.Investor, error) {
	var inv pool.Investor
	if err := r.people.FindOne(ctx, bson.M{"personName": name}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *MongoRepo) ListInvestors(ctx context.Context, poolID string) ([]*pool.Investor, error) {
	cur, err := r.people.Find(ctx, bson.M{"poolId": poolID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*pool.Investor{}
	for cur.Next(ctx) {
		var inv pool.Investor
		if err := cur.Decode(&inv); err != nil {
			return nil, err
		}
		out = append(out, &inv)
	}
	return out, cur.Err()
}

func (r *MongoRepo) IncrementInvestorAmount(ctx context.Context, investorID string, delta float64) error {
	oid, err := primitive.ObjectIDFromHex(investorID)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.people.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"amount": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) CreateBuyout(ctx context.Context, b *pool.Buyout) (string, error) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	res, err := r.buyouts.InsertOne(ctx, b)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}
	return oid.Hex(), nil
}

func (r *MongoRepo) ListBuyoutsByPool(ctx context.Context, poolID string) ([]*pool.Buyout, error) {
	return r.listBuyouts(ctx, bson.M{"poolId": poolID})
}

func (r *MongoRepo) ListBuyoutsByInvestor(ctx context.Context, investorID string) ([]*pool.Buyout, error) {
	return r.listBuyouts(ctx, bson.M{"personId": investorID})
}

func (r *MongoRepo) listBuyouts(ctx context.Context, filter bson.M) ([]*pool.Buyout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "buyoutDate", Value: -1}})
	cur, err := r.buyouts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*pool.Buyout{}
	for cur.Next(ctx) {
		var b pool.Buyout
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

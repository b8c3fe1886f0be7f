package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

const ordersCollection = "orders"

// OrderRepository implements ports.OrderRepository using MongoDB.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoOrderItem struct {
	Qty     int          `bson:"qty"`
	Product mongoProduct `bson:"product"`
}

type mongoOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"userId"`
	Client        string             `bson:"client"`
	Products      []mongoOrderItem   `bson:"products"`
	Status        string             `bson:"status"`
	DateEntry     time.Time          `bson:"dateEntry"`
	DateProcessed *time.Time         `bson:"dateProcessed,omitempty"`
}

func toMongoItems(items []domain.OrderItem) []mongoOrderItem {
	out := make([]mongoOrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, mongoOrderItem{Qty: it.Qty, Product: toMongoProduct(it.Product)})
	}
	return out
}

func (mo mongoOrder) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(mo.Products))
	for _, it := range mo.Products {
		items = append(items, domain.OrderItem{Qty: it.Qty, Product: *it.Product.toDomain()})
	}
	o := &domain.Order{
		ID:        mo.ID.Hex(),
		UserID:    mo.UserID,
		Client:    mo.Client,
		Products:  items,
		Status:    domain.OrderStatus(mo.Status),
		DateEntry: mo.DateEntry.UTC(),
	}
	if mo.DateProcessed != nil {
		t := mo.DateProcessed.UTC()
		o.DateProcessed = &t
	}
	return o
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		UserID:        o.UserID,
		Client:        o.Client,
		Products:      toMongoItems(o.Products),
		Status:        string(o.Status),
		DateEntry:     o.DateEntry,
		DateProcessed: o.DateProcessed,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

// Update atomically sets the changed fields and returns the order after the
// write.
func (r *OrderRepository) Update(ctx context.Context, id string, u domain.OrderUpdate) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mo mongoOrder
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": orderSetDoc(u)}, opts).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("delete order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, page domain.Page) ([]*domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	cur, err := r.coll.Find(ctx, bson.M{}, pageOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode orders: %w", err)
	}

	items := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, total, nil
}

// EnsureIndexes creates the indexes used by order listings.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

func orderSetDoc(u domain.OrderUpdate) bson.M {
	set := bson.M{}
	if u.UserID != nil {
		set["userId"] = *u.UserID
	}
	if u.Client != nil {
		set["client"] = *u.Client
	}
	if u.Products != nil {
		set["products"] = toMongoItems(u.Products)
	}
	if u.Status != nil {
		set["status"] = string(*u.Status)
	}
	if u.DateProcessed != nil {
		set["dateProcessed"] = *u.DateProcessed
	}
	return set
}

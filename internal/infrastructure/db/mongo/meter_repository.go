package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hydrai/telemetry-system/internal/core/domain"
)

const metersCollection = "meters"

// MeterRepository implements ports.MeterRepository on MongoDB. Measurements
// are embedded in the meter document, matching how devices report them.
type MeterRepository struct {
	coll *mongo.Collection
}

func NewMeterRepository(db *mongo.Database) *MeterRepository {
	return &MeterRepository{coll: db.Collection(metersCollection)}
}

type meterDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	OwnerID      string               `bson:"owner_id"`
	Name         string               `bson:"name"`
	Type         string               `bson:"type"`
	Status       string               `bson:"status"`
	Measurements []domain.Measurement `bson:"measurements"`
	CreatedAt    time.Time            `bson:"created_at"`
}

func (d meterDoc) toDomain() *domain.Meter {
	return &domain.Meter{
		ID:           d.ID.Hex(),
		OwnerID:      d.OwnerID,
		Name:         d.Name,
		Type:         d.Type,
		Status:       domain.MeterStatus(d.Status),
		Measurements: d.Measurements,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

// EnsureIndexes creates the owner index used by every list query.
func (r *MeterRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}

func (r *MeterRepository) Create(ctx context.Context, m *domain.Meter) (*domain.Meter, error) {
	doc := meterDoc{
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		Type:         m.Type,
		Status:       string(m.Status),
		Measurements: m.Measurements,
		CreatedAt:    m.CreatedAt,
	}
	if doc.Measurements == nil {
		doc.Measurements = []domain.Measurement{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeErr("insert meter", err)
	}

	created := *m
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MeterRepository) FindByID(ctx context.Context, id string) (*domain.Meter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMeterNotFound
	}

	var doc meterDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMeterNotFound
		}
		return nil, storeErr("find meter", err)
	}
	return doc.toDomain(), nil
}

func (r *MeterRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Meter, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, storeErr("list meters", err)
	}
	defer cur.Close(ctx)

	meters := make([]*domain.Meter, 0)
	for cur.Next(ctx) {
		var doc meterDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode meter", err)
		}
		meters = append(meters, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list meters", err)
	}
	return meters, nil
}

// AppendMeasurement atomically pushes a reading onto the meter document.
func (r *MeterRepository) AppendMeasurement(ctx context.Context, meterID string, m domain.Measurement) error {
	oid, err := primitive.ObjectIDFromHex(meterID)
	if err != nil {
		return domain.ErrMeterNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"measurements": m}},
	)
	if err != nil {
		return storeErr("append measurement", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMeterNotFound
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements DocumentStore against a MongoDB database. Timestamp
// stamping and id parsing live here so entity services cannot get them wrong.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a store over db. A nil db yields ErrUnavailable on
// every operation.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Create inserts doc with created_at and updated_at set to the same UTC
// instant and returns the generated id as a hex string.
func (s *MongoStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	if s.db == nil {
		return "", ErrUnavailable
	}
	fields, err := toDocument(doc)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	fields["created_at"] = now
	fields["updated_at"] = now

	res, err := s.db.Collection(collection).InsertOne(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert into %s: unexpected id type %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

// List decodes all documents matching opts into results.
func (s *MongoStore) List(ctx context.Context, collection string, opts ListOptions, results any) error {
	if s.db == nil {
		return ErrUnavailable
	}
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		sort := bson.D{}
		for _, sf := range opts.Sort {
			dir := 1
			if sf.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: sf.Field, Value: dir})
		}
		findOpts.SetSort(sort)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, toBSONFilter(opts.Filter), findOpts)
	if err != nil {
		return fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("decode from %s: %w", collection, err)
	}
	return nil
}

// FindOne decodes the first document matching filter into result.
func (s *MongoStore) FindOne(ctx context.Context, collection string, filter Filter, result any) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}
	err := s.db.Collection(collection).FindOne(ctx, toBSONFilter(filter)).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find one in %s: %w", collection, err)
	}
	return true, nil
}

// GetByID decodes the document with the given hex id into result. A
// malformed id reads as not found.
func (s *MongoStore) GetByID(ctx context.Context, collection, id string, result any) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	return s.FindOne(ctx, collection, Filter{"_id": oid}, result)
}

// Update merges fields into the identified document and refreshes
// updated_at. Reports whether exactly one document was modified.
func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("update in %s: %w", collection, err)
	}
	return res.ModifiedCount == 1, nil
}

// Delete removes the identified document and reports whether one was deleted.
func (s *MongoStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete in %s: %w", collection, err)
	}
	return res.DeletedCount == 1, nil
}

// Count returns the number of documents matching filter.
func (s *MongoStore) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	if s.db == nil {
		return 0, ErrUnavailable
	}
	n, err := s.db.Collection(collection).CountDocuments(ctx, toBSONFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count in %s: %w", collection, err)
	}
	return n, nil
}

// SumField sums a numeric field over all documents matching filter.
func (s *MongoStore) SumField(ctx context.Context, collection, field string, filter Filter) (float64, error) {
	if s.db == nil {
		return 0, ErrUnavailable
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: toBSONFilter(filter)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}
	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode aggregate from %s: %w", collection, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// toDocument converts a tagged struct or map into a flat bson document.
func toDocument(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fields, nil
}

func toBSONFilter(f Filter) bson.M {
	m := bson.M{}
	for k, v := range f {
		if ne, ok := v.(NotEqualMatcher); ok {
			m[k] = bson.M{"$ne": ne.Value}
			continue
		}
		m[k] = v
	}
	return m
}

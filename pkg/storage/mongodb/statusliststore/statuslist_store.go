/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statusliststore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
	"github.com/trustbloc/vcs-issuance/pkg/storage/mongodb"
)

const (
	collectionName = "status_lists"

	fieldID           = "_id"
	fieldTenantID     = "tenantId"
	fieldSequence     = "sequence"
	fieldBitsPerEntry = "bitsPerEntry"
	fieldSize         = "size"
	fieldNextIndex    = "nextIndex"
	fieldBits         = "bits"
	fieldCreatedAt    = "createdAt"
)

type document struct {
	ID           string    `bson:"_id"`
	TenantID     string    `bson:"tenantId"`
	Sequence     int       `bson:"sequence"`
	BitsPerEntry int       `bson:"bitsPerEntry"`
	Size         int       `bson:"size"`
	NextIndex    int       `bson:"nextIndex"`
	Bits         []byte    `bson:"bits"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// Store manages status lists in mongodb.
type Store struct {
	mongoClient *mongodb.Client
}

// NewStore creates Store and ensures its indexes.
func NewStore(ctx context.Context, mongoClient *mongodb.Client) (*Store, error) {
	s := &Store{mongoClient: mongoClient}

	if err := s.migrate(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: fieldTenantID, Value: 1},
				{Key: fieldBitsPerEntry, Value: 1},
				{Key: fieldSequence, Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: fieldTenantID, Value: 1}, {Key: fieldCreatedAt, Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create status list indexes: %w", err)
	}

	return nil
}

func (s *Store) collection() *mongo.Collection {
	return s.mongoClient.Collection(collectionName)
}

// Create inserts a new list.
func (s *Store) Create(ctx context.Context, list *statuslist.StatusList) error {
	_, err := s.collection().InsertOne(ctx, &document{
		ID:           list.ID,
		TenantID:     list.TenantID,
		Sequence:     list.Sequence,
		BitsPerEntry: list.BitsPerEntry,
		Size:         list.Size,
		NextIndex:    list.NextIndex,
		Bits:         list.Bits,
		CreatedAt:    list.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return statuslist.ErrListExists
		}

		return fmt.Errorf("insert status list: %w", err)
	}

	return nil
}

// Get returns the list by id.
func (s *Store) Get(ctx context.Context, listID string) (*statuslist.StatusList, error) {
	doc := &document{}

	err := s.collection().FindOne(ctx, bson.M{fieldID: listID}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, statuslist.ErrDataNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("status list find failed: %w", err)
	}

	return doc.toModel(), nil
}

// Current returns the list with the highest sequence for the tenant and width.
func (s *Store) Current(ctx context.Context, tenantID string, bitsPerEntry int) (*statuslist.StatusList, error) {
	doc := &document{}

	err := s.collection().FindOne(ctx,
		bson.M{fieldTenantID: tenantID, fieldBitsPerEntry: bitsPerEntry},
		options.FindOne().SetSort(bson.D{{Key: fieldSequence, Value: -1}}),
	).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, statuslist.ErrDataNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("current status list find failed: %w", err)
	}

	return doc.toModel(), nil
}

// ReserveIndex increments nextIndex only while it is below size and returns
// the value it had before the increment.
func (s *Store) ReserveIndex(ctx context.Context, listID string) (int, error) {
	doc := &document{}

	err := s.collection().FindOneAndUpdate(ctx,
		bson.M{
			fieldID: listID,
			"$expr": bson.M{"$lt": bson.A{"$" + fieldNextIndex, "$" + fieldSize}},
		},
		bson.M{"$inc": bson.M{fieldNextIndex: 1}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.Before).
			SetProjection(bson.M{fieldNextIndex: 1}),
	).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := s.Get(ctx, listID); getErr != nil {
			return 0, getErr
		}

		return 0, statuslist.ErrListExhausted
	}

	if err != nil {
		return 0, fmt.Errorf("reserve status list index: %w", err)
	}

	return doc.NextIndex, nil
}

// UpdateBits replaces the packed bytes of the list.
func (s *Store) UpdateBits(ctx context.Context, listID string, bits []byte) error {
	res, err := s.collection().UpdateByID(ctx, listID, bson.M{
		"$set": bson.M{fieldBits: bits},
	})
	if err != nil {
		return fmt.Errorf("update status list bits: %w", err)
	}

	if res.MatchedCount == 0 {
		return statuslist.ErrDataNotFound
	}

	return nil
}

// FindByTenant returns all lists of the tenant ordered by creation.
func (s *Store) FindByTenant(ctx context.Context, tenantID string) ([]*statuslist.StatusList, error) {
	cursor, err := s.collection().Find(ctx, bson.M{fieldTenantID: tenantID},
		options.Find().SetSort(bson.D{{Key: fieldCreatedAt, Value: 1}, {Key: fieldSequence, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find status lists: %w", err)
	}

	var docs []*document

	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode status lists: %w", err)
	}

	lists := make([]*statuslist.StatusList, 0, len(docs))
	for _, d := range docs {
		lists = append(lists, d.toModel())
	}

	return lists, nil
}

// DeleteTenant removes all lists of the tenant.
func (s *Store) DeleteTenant(ctx context.Context, tenantID string) error {
	if _, err := s.collection().DeleteMany(ctx, bson.M{fieldTenantID: tenantID}); err != nil {
		return fmt.Errorf("delete status lists: %w", err)
	}

	return nil
}

func (d *document) toModel() *statuslist.StatusList {
	return &statuslist.StatusList{
		ID:           d.ID,
		TenantID:     d.TenantID,
		Sequence:     d.Sequence,
		BitsPerEntry: d.BitsPerEntry,
		Size:         d.Size,
		NextIndex:    d.NextIndex,
		Bits:         d.Bits,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

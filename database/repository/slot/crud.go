// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"syncslot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, ids := prepare(slots)
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("failed to insert slots: %w", err)
	}
	return ids, nil
}

// ReplaceForOwner deletes every slot matching filter and inserts slots in one
// transaction, so readers never see a half-replaced set.
func (r *mongoSlotRepo) ReplaceForOwner(ctx context.Context, filter SlotFilter, slots []models.TimeSlot) ([]models.TimeSlot, error) {
	if filter.EventID == "" || filter.OwnerID == "" || filter.Kind == "" {
		return nil, fmt.Errorf("replace requires event, owner and kind")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs, ids := prepare(slots)

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.DeleteMany(sc, filter.bson()); err != nil {
			return fmt.Errorf("delete previous slots failed: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert slots failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, fmt.Errorf("slot replacement transaction failed: %w", err)
	}

	out := make([]models.TimeSlot, len(slots))
	for i := range slots {
		out[i] = docs[i].(models.TimeSlot)
		out[i].ID = ids[i]
	}
	return out, nil
}

func (r *mongoSlotRepo) DeleteMatching(ctx context.Context, filter SlotFilter) (int64, error) {
	if filter.EventID == "" {
		return 0, fmt.Errorf("delete requires an event id")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, filter.bson())
	if err != nil {
		return 0, fmt.Errorf("failed to delete slots: %w", err)
	}
	return res.DeletedCount, nil
}

// prepare assigns IDs and creation times to slots that lack them.
func prepare(slots []models.TimeSlot) ([]interface{}, []string) {
	now := time.Now().UTC()
	docs := make([]interface{}, len(slots))
	ids := make([]string, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		docs[i] = slot
		ids[i] = slot.ID
	}
	return docs, ids
}

func (f SlotFilter) bson() bson.M {
	m := bson.M{}
	if f.EventID != "" {
		m["eventId"] = f.EventID
	}
	if f.OwnerID != "" {
		m["ownerId"] = f.OwnerID
	}
	if f.Kind != "" {
		m["kind"] = f.Kind
	}
	if f.Source != "" {
		m["source"] = f.Source
	}
	return m
}

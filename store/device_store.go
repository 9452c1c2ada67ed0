// store/device_store.go
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetdesk/models"
)

type MongoDeviceStore struct {
	coll *mongo.Collection
}

func NewMongoDeviceStore(coll *mongo.Collection) *MongoDeviceStore {
	return &MongoDeviceStore{coll: coll}
}

func (s *MongoDeviceStore) Get(ctx context.Context, deviceID string) (*models.Device, error) {
	var dev models.Device
	err := s.coll.FindOne(ctx, bson.M{"deviceId": deviceID}).Decode(&dev)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dev, nil
}

func (s *MongoDeviceStore) List(ctx context.Context) ([]models.Device, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}

func (s *MongoDeviceStore) ListByAssignee(ctx context.Context, employeeID string) ([]models.Device, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"assignedTo": employeeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}

func (s *MongoDeviceStore) Create(ctx context.Context, dev models.Device) (*models.Device, error) {
	dev.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	dev.CreatedAt = now
	dev.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, dev); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &dev, nil
}

func (s *MongoDeviceStore) Replace(ctx context.Context, dev models.Device) (*models.Device, error) {
	update := bson.M{"$set": bson.M{
		"model":      dev.Model,
		"assignedTo": dev.AssignedTo,
		"status":     dev.Status,
		"department": dev.Department,
		"updatedAt":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Device
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"deviceId": dev.DeviceID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoDeviceStore) Delete(ctx context.Context, deviceID string) (*models.Device, error) {
	var deleted models.Device
	err := s.coll.FindOneAndDelete(ctx, bson.M{"deviceId": deviceID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

func (s *MongoDeviceStore) SetAssignee(ctx context.Context, deviceID string, employeeID, department *string) (*models.Device, error) {
	update := bson.M{"$set": bson.M{
		"assignedTo": employeeID,
		"department": department,
		"updatedAt":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Device
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"deviceId": deviceID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoDeviceStore) UnassignAll(ctx context.Context, employeeID string) (int64, error) {
	result, err := s.coll.UpdateMany(ctx,
		bson.M{"assignedTo": employeeID},
		bson.M{"$set": bson.M{
			"assignedTo": nil,
			"department": nil,
			"updatedAt":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

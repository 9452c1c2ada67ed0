// store/license_store.go
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

type MongoLicenseStore struct {
	coll *mongo.Collection
}

func NewMongoLicenseStore(coll *mongo.Collection) *MongoLicenseStore {
	return &MongoLicenseStore{coll: coll}
}

func (s *MongoLicenseStore) Get(ctx context.Context, licenseID string) (*models.License, error) {
	var lic models.License
	err := s.coll.FindOne(ctx, bson.M{"licenseId": licenseID}).Decode(&lic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lic, nil
}

func (s *MongoLicenseStore) List(ctx context.Context) ([]models.License, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var licenses []models.License
	if err := cursor.All(ctx, &licenses); err != nil {
		return nil, err
	}
	if licenses == nil {
		licenses = []models.License{}
	}
	return licenses, nil
}

func (s *MongoLicenseStore) ListByAssignee(ctx context.Context, employeeID string) ([]models.License, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"assignedTo": employeeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var licenses []models.License
	if err := cursor.All(ctx, &licenses); err != nil {
		return nil, err
	}
	if licenses == nil {
		licenses = []models.License{}
	}
	return licenses, nil
}

func (s *MongoLicenseStore) Create(ctx context.Context, lic models.License) (*models.License, error) {
	lic.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	lic.CreatedAt = now
	lic.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, lic); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &lic, nil
}

func (s *MongoLicenseStore) Replace(ctx context.Context, lic models.License) (*models.License, error) {
	update := bson.M{"$set": bson.M{
		"licenseName": lic.LicenseName,
		"type":        lic.Type,
		"assignedTo":  lic.AssignedTo,
		"status":      lic.Status,
		"department":  lic.Department,
		"description": lic.Description,
		"updatedAt":   time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.License
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"licenseId": lic.LicenseID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoLicenseStore) Delete(ctx context.Context, licenseID string) (*models.License, error) {
	var deleted models.License
	err := s.coll.FindOneAndDelete(ctx, bson.M{"licenseId": licenseID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

func (s *MongoLicenseStore) SetAssignee(ctx context.Context, licenseID string, employeeID, department *string) (*models.License, error) {
	update := bson.M{"$set": bson.M{
		"assignedTo": employeeID,
		"department": department,
		"updatedAt":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.License
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"licenseId": licenseID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoLicenseStore) UnassignAll(ctx context.Context, employeeID string) (int64, error) {
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

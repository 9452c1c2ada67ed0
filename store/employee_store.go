// store/employee_store.go
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

type MongoEmployeeStore struct {
	coll *mongo.Collection
}

func NewMongoEmployeeStore(coll *mongo.Collection) *MongoEmployeeStore {
	return &MongoEmployeeStore{coll: coll}
}

func (s *MongoEmployeeStore) Get(ctx context.Context, employeeID string) (*models.Employee, error) {
	var emp models.Employee
	err := s.coll.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&emp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (s *MongoEmployeeStore) List(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "employeeName", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (s *MongoEmployeeStore) Create(ctx context.Context, emp models.Employee) (*models.Employee, error) {
	emp.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	if emp.Role == nil {
		emp.Role = []string{}
	}
	if emp.AssignedDevices == nil {
		emp.AssignedDevices = []string{}
	}
	if emp.AssignedLicenses == nil {
		emp.AssignedLicenses = []string{}
	}

	if _, err := s.coll.InsertOne(ctx, emp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &emp, nil
}

func (s *MongoEmployeeStore) Replace(ctx context.Context, emp models.Employee) (*models.Employee, error) {
	update := bson.M{"$set": bson.M{
		"employeeName":     emp.EmployeeName,
		"department":       emp.Department,
		"location":         emp.Location,
		"role":             emp.Role,
		"assignedDevices":  emp.AssignedDevices,
		"assignedLicenses": emp.AssignedLicenses,
		"updatedAt":        time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Employee
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"employeeId": emp.EmployeeID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoEmployeeStore) Delete(ctx context.Context, employeeID string) (*models.Employee, error) {
	var deleted models.Employee
	err := s.coll.FindOneAndDelete(ctx, bson.M{"employeeId": employeeID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

func (s *MongoEmployeeStore) PullDevice(ctx context.Context, deviceID string) (int64, error) {
	result, err := s.coll.UpdateMany(ctx,
		bson.M{"assignedDevices": deviceID},
		bson.M{
			"$pull": bson.M{"assignedDevices": deviceID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *MongoEmployeeStore) PullLicense(ctx context.Context, licenseID string) (int64, error) {
	result, err := s.coll.UpdateMany(ctx,
		bson.M{"assignedLicenses": licenseID},
		bson.M{
			"$pull": bson.M{"assignedLicenses": licenseID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

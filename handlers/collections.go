// handlers/collections.go
package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"assetdesk/assignment"
	"assetdesk/config"
	"assetdesk/database"
	"assetdesk/store"
)

var (
	userCollection     *mongo.Collection
	deviceCollection   *mongo.Collection
	employeeCollection *mongo.Collection
	licenseCollection  *mongo.Collection
	auditLogCollection *mongo.Collection

	employeeStore store.EmployeeStore
	deviceStore   store.DeviceStore
	licenseStore  store.LicenseStore
	assignments   *assignment.Manager
)

func InitCollections() {
	db := database.Client.Database(config.DatabaseName)
	userCollection = db.Collection("users")
	deviceCollection = db.Collection("devices")
	employeeCollection = db.Collection("employees")
	licenseCollection = db.Collection("licenses")
	auditLogCollection = db.Collection("auditlogs")

	UseStores(
		store.NewMongoEmployeeStore(employeeCollection),
		store.NewMongoDeviceStore(deviceCollection),
		store.NewMongoLicenseStore(licenseCollection),
	)
}

// UseStores wires the handlers to the given document collaborators. Tests
// substitute in-memory stores here.
func UseStores(employees store.EmployeeStore, devices store.DeviceStore, licenses store.LicenseStore) {
	employeeStore = employees
	deviceStore = devices
	licenseStore = licenses
	assignments = assignment.NewManager(employees, devices, licenses)
}

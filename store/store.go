// store/store.go
//
// Document collaborators for the three entity collections. The assignment
// manager and the HTTP handlers only talk to these interfaces; the Mongo
// implementations live alongside them in this package.
package store

import (
	"context"
	"errors"

	"assetdesk/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// EmployeeStore is the collaborator for the employees collection.
type EmployeeStore interface {
	Get(ctx context.Context, employeeID string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, emp models.Employee) (*models.Employee, error)
	// Replace overwrites the mutable fields of the employee identified by
	// emp.EmployeeID and returns the updated document.
	Replace(ctx context.Context, emp models.Employee) (*models.Employee, error)
	Delete(ctx context.Context, employeeID string) (*models.Employee, error)
	// PullDevice removes deviceID from every employee's assignedDevices list
	// and returns the number of employees touched.
	PullDevice(ctx context.Context, deviceID string) (int64, error)
	// PullLicense removes licenseID from every employee's assignedLicenses list.
	PullLicense(ctx context.Context, licenseID string) (int64, error)
}

// DeviceStore is the collaborator for the devices collection.
type DeviceStore interface {
	Get(ctx context.Context, deviceID string) (*models.Device, error)
	List(ctx context.Context) ([]models.Device, error)
	ListByAssignee(ctx context.Context, employeeID string) ([]models.Device, error)
	Create(ctx context.Context, dev models.Device) (*models.Device, error)
	Replace(ctx context.Context, dev models.Device) (*models.Device, error)
	Delete(ctx context.Context, deviceID string) (*models.Device, error)
	// SetAssignee points the device at employeeID, stamping the denormalized
	// department copy, or clears both when employeeID is nil.
	SetAssignee(ctx context.Context, deviceID string, employeeID, department *string) (*models.Device, error)
	// UnassignAll clears assignedTo (and department) on every device
	// currently pointing at employeeID.
	UnassignAll(ctx context.Context, employeeID string) (int64, error)
}

// LicenseStore is the collaborator for the licenses collection.
type LicenseStore interface {
	Get(ctx context.Context, licenseID string) (*models.License, error)
	List(ctx context.Context) ([]models.License, error)
	ListByAssignee(ctx context.Context, employeeID string) ([]models.License, error)
	Create(ctx context.Context, lic models.License) (*models.License, error)
	Replace(ctx context.Context, lic models.License) (*models.License, error)
	Delete(ctx context.Context, licenseID string) (*models.License, error)
	SetAssignee(ctx context.Context, licenseID string, employeeID, department *string) (*models.License, error)
	UnassignAll(ctx context.Context, employeeID string) (int64, error)
}

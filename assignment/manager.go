// assignment/manager.go
//
// The Manager keeps the two physical copies of the assignment relation in
// agreement: assignedTo on devices/licenses and the assignedDevices/
// assignedLicenses lists on employees. The two sides live in independent
// collections with no cross-collection transaction, so a failure between the
// employee write and the reverse-link writes can leave them inconsistent;
// callers accept that window.
package assignment

import (
	"context"
	"fmt"
	"log"

	"assetdesk/models"
	"assetdesk/store"
)

// ValidationError reports a field value that fails schema constraints.
// It is raised before any reverse-link side effect runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

type Manager struct {
	employees store.EmployeeStore
	devices   store.DeviceStore
	licenses  store.LicenseStore
}

func NewManager(employees store.EmployeeStore, devices store.DeviceStore, licenses store.LicenseStore) *Manager {
	return &Manager{employees: employees, devices: devices, licenses: licenses}
}

// EmployeeUpdate carries a partial employee mutation. Nil fields are left
// unchanged; a non-nil device/license list is the complete replacement list,
// not a delta.
type EmployeeUpdate struct {
	EmployeeName     *string
	Department       *string
	Location         *string
	Role             *[]string
	AssignedDevices  *[]string
	AssignedLicenses *[]string
}

// CreateEmployee persists the employee with its assignment lists as given and
// points every listed device/license at the new employee. A listed id that
// does not resolve is skipped; the employee keeps it in its list regardless.
func (m *Manager) CreateEmployee(ctx context.Context, emp models.Employee) (*models.Employee, error) {
	created, err := m.employees.Create(ctx, emp)
	if err != nil {
		return nil, err
	}

	dept := created.Department
	for _, deviceID := range created.AssignedDevices {
		if _, err := m.devices.SetAssignee(ctx, deviceID, &created.EmployeeID, &dept); err != nil {
			if err != store.ErrNotFound {
				log.Printf("assign device %s to %s: %v", deviceID, created.EmployeeID, err)
			}
			continue
		}
	}
	for _, licenseID := range created.AssignedLicenses {
		if _, err := m.licenses.SetAssignee(ctx, licenseID, &created.EmployeeID, &dept); err != nil {
			if err != store.ErrNotFound {
				log.Printf("assign license %s to %s: %v", licenseID, created.EmployeeID, err)
			}
			continue
		}
	}

	return created, nil
}

// UpdateEmployee applies a partial update and reconciles the reverse links.
// Only ids leaving or entering the lists receive a device/license write; an
// id present in both old and new lists is not touched.
func (m *Manager) UpdateEmployee(ctx context.Context, employeeID string, upd EmployeeUpdate) (*models.Employee, error) {
	current, err := m.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	newDevices := current.AssignedDevices
	if upd.AssignedDevices != nil {
		newDevices = *upd.AssignedDevices
	}
	newLicenses := current.AssignedLicenses
	if upd.AssignedLicenses != nil {
		newLicenses = *upd.AssignedLicenses
	}

	removedDevices, addedDevices := diffIDs(current.AssignedDevices, newDevices)
	removedLicenses, addedLicenses := diffIDs(current.AssignedLicenses, newLicenses)

	next := *current
	if upd.EmployeeName != nil {
		next.EmployeeName = *upd.EmployeeName
	}
	if upd.Department != nil {
		next.Department = *upd.Department
	}
	if upd.Location != nil {
		next.Location = *upd.Location
	}
	if upd.Role != nil {
		next.Role = *upd.Role
	}
	next.AssignedDevices = newDevices
	next.AssignedLicenses = newLicenses

	updated, err := m.employees.Replace(ctx, next)
	if err != nil {
		return nil, err
	}

	for _, deviceID := range removedDevices {
		if _, err := m.devices.SetAssignee(ctx, deviceID, nil, nil); err != nil && err != store.ErrNotFound {
			log.Printf("unassign device %s: %v", deviceID, err)
		}
	}
	for _, licenseID := range removedLicenses {
		if _, err := m.licenses.SetAssignee(ctx, licenseID, nil, nil); err != nil && err != store.ErrNotFound {
			log.Printf("unassign license %s: %v", licenseID, err)
		}
	}

	dept := updated.Department
	for _, deviceID := range addedDevices {
		if _, err := m.devices.SetAssignee(ctx, deviceID, &employeeID, &dept); err != nil && err != store.ErrNotFound {
			log.Printf("assign device %s to %s: %v", deviceID, employeeID, err)
		}
	}
	for _, licenseID := range addedLicenses {
		if _, err := m.licenses.SetAssignee(ctx, licenseID, &employeeID, &dept); err != nil && err != store.ErrNotFound {
			log.Printf("assign license %s to %s: %v", licenseID, employeeID, err)
		}
	}

	return updated, nil
}

// DeleteEmployee unassigns every device and license pointing at the employee,
// then deletes the employee document. The bulk unassign scans assignedTo
// rather than trusting the employee's own (possibly stale) lists.
func (m *Manager) DeleteEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	if _, err := m.employees.Get(ctx, employeeID); err != nil {
		return nil, err
	}

	if _, err := m.devices.UnassignAll(ctx, employeeID); err != nil {
		return nil, err
	}
	if _, err := m.licenses.UnassignAll(ctx, employeeID); err != nil {
		return nil, err
	}

	return m.employees.Delete(ctx, employeeID)
}

// DeleteDevice pulls the device id out of every employee's assignedDevices
// list, then deletes the device document.
func (m *Manager) DeleteDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	if _, err := m.devices.Get(ctx, deviceID); err != nil {
		return nil, err
	}

	if _, err := m.employees.PullDevice(ctx, deviceID); err != nil {
		return nil, err
	}

	return m.devices.Delete(ctx, deviceID)
}

// DeleteLicense pulls the license id out of every employee's assignedLicenses
// list, then deletes the license document.
func (m *Manager) DeleteLicense(ctx context.Context, licenseID string) (*models.License, error) {
	if _, err := m.licenses.Get(ctx, licenseID); err != nil {
		return nil, err
	}

	if _, err := m.employees.PullLicense(ctx, licenseID); err != nil {
		return nil, err
	}

	return m.licenses.Delete(ctx, licenseID)
}

// CreateDevice persists the device as given. A supplied assignedTo is stored
// but the employee side is not updated; full linking is employee-driven.
func (m *Manager) CreateDevice(ctx context.Context, dev models.Device) (*models.Device, error) {
	if !models.ValidDeviceStatus(dev.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be 0 (available), 1 (in use) or 2 (under maintenance)"}
	}
	return m.devices.Create(ctx, dev)
}

// CreateLicense persists the license as given, with the same one-directional
// assignedTo behavior as CreateDevice.
func (m *Manager) CreateLicense(ctx context.Context, lic models.License) (*models.License, error) {
	if !models.ValidLicenseStatus(lic.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be 0 (available), 1 (in use) or 2 (expired)"}
	}
	if !models.ValidLicenseType(lic.Type) {
		return nil, &ValidationError{Field: "type", Message: "must be Subscription or Perpetual"}
	}
	return m.licenses.Create(ctx, lic)
}

// DeviceUpdate carries a partial device mutation. AssignedTo is nil when the
// field is absent, and points to nil to unassign.
type DeviceUpdate struct {
	Model      *string
	Status     *int
	AssignedTo **string
}

// UpdateDevice applies a partial update to a device. Changing assignedTo here
// is one-directional: the employee's list is not adjusted.
func (m *Manager) UpdateDevice(ctx context.Context, deviceID string, upd DeviceUpdate) (*models.Device, error) {
	current, err := m.devices.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil && !models.ValidDeviceStatus(*upd.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be 0 (available), 1 (in use) or 2 (under maintenance)"}
	}

	next := *current
	if upd.Model != nil {
		next.Model = *upd.Model
	}
	if upd.Status != nil {
		next.Status = *upd.Status
	}
	if upd.AssignedTo != nil {
		next.AssignedTo = *upd.AssignedTo
		next.Department = m.lookupDepartment(ctx, *upd.AssignedTo)
	}

	return m.devices.Replace(ctx, next)
}

// LicenseUpdate carries a partial license mutation, with the same AssignedTo
// convention as DeviceUpdate.
type LicenseUpdate struct {
	LicenseName *string
	Type        *string
	Status      *int
	Description *string
	AssignedTo  **string
}

// UpdateLicense applies a partial update to a license, one-directional on
// assignedTo like UpdateDevice.
func (m *Manager) UpdateLicense(ctx context.Context, licenseID string, upd LicenseUpdate) (*models.License, error) {
	current, err := m.licenses.Get(ctx, licenseID)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil && !models.ValidLicenseStatus(*upd.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be 0 (available), 1 (in use) or 2 (expired)"}
	}
	if upd.Type != nil && !models.ValidLicenseType(*upd.Type) {
		return nil, &ValidationError{Field: "type", Message: "must be Subscription or Perpetual"}
	}

	next := *current
	if upd.LicenseName != nil {
		next.LicenseName = *upd.LicenseName
	}
	if upd.Type != nil {
		next.Type = *upd.Type
	}
	if upd.Status != nil {
		next.Status = *upd.Status
	}
	if upd.Description != nil {
		next.Description = *upd.Description
	}
	if upd.AssignedTo != nil {
		next.AssignedTo = *upd.AssignedTo
		next.Department = m.lookupDepartment(ctx, *upd.AssignedTo)
	}

	return m.licenses.Replace(ctx, next)
}

// lookupDepartment resolves the denormalized department copy for a new
// assignee. A missing employee leaves the copy empty.
func (m *Manager) lookupDepartment(ctx context.Context, employeeID *string) *string {
	if employeeID == nil {
		return nil
	}
	emp, err := m.employees.Get(ctx, *employeeID)
	if err != nil {
		return nil
	}
	dept := emp.Department
	return &dept
}

// store/memory.go
//
// In-memory implementations of the store interfaces, backed by maps under a
// mutex. Used by handler tests; behavior mirrors the Mongo implementations,
// including the $pull / unassign-all scan semantics.
package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"assetdesk/models"
)

type MemoryEmployeeStore struct {
	mu   sync.Mutex
	docs map[string]models.Employee
}

func NewMemoryEmployeeStore() *MemoryEmployeeStore {
	return &MemoryEmployeeStore{docs: make(map[string]models.Employee)}
}

func (s *MemoryEmployeeStore) Get(_ context.Context, employeeID string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.docs[employeeID]
	if !ok {
		return nil, ErrNotFound
	}
	return &emp, nil
}

func (s *MemoryEmployeeStore) List(_ context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Employee, 0, len(s.docs))
	for _, emp := range s.docs {
		out = append(out, emp)
	}
	return out, nil
}

func (s *MemoryEmployeeStore) Create(_ context.Context, emp models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[emp.EmployeeID]; ok {
		return nil, ErrDuplicate
	}
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
	s.docs[emp.EmployeeID] = emp
	return &emp, nil
}

func (s *MemoryEmployeeStore) Replace(_ context.Context, emp models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[emp.EmployeeID]
	if !ok {
		return nil, ErrNotFound
	}
	current.EmployeeName = emp.EmployeeName
	current.Department = emp.Department
	current.Location = emp.Location
	current.Role = emp.Role
	current.AssignedDevices = emp.AssignedDevices
	current.AssignedLicenses = emp.AssignedLicenses
	current.UpdatedAt = time.Now().UTC()
	s.docs[emp.EmployeeID] = current
	return &current, nil
}

func (s *MemoryEmployeeStore) Delete(_ context.Context, employeeID string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.docs[employeeID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.docs, employeeID)
	return &emp, nil
}

func (s *MemoryEmployeeStore) PullDevice(_ context.Context, deviceID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var modified int64
	for key, emp := range s.docs {
		kept := emp.AssignedDevices[:0:0]
		for _, id := range emp.AssignedDevices {
			if id != deviceID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(emp.AssignedDevices) {
			emp.AssignedDevices = kept
			emp.UpdatedAt = time.Now().UTC()
			s.docs[key] = emp
			modified++
		}
	}
	return modified, nil
}

func (s *MemoryEmployeeStore) PullLicense(_ context.Context, licenseID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var modified int64
	for key, emp := range s.docs {
		kept := emp.AssignedLicenses[:0:0]
		for _, id := range emp.AssignedLicenses {
			if id != licenseID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(emp.AssignedLicenses) {
			emp.AssignedLicenses = kept
			emp.UpdatedAt = time.Now().UTC()
			s.docs[key] = emp
			modified++
		}
	}
	return modified, nil
}

type MemoryDeviceStore struct {
	mu   sync.Mutex
	docs map[string]models.Device
}

func NewMemoryDeviceStore() *MemoryDeviceStore {
	return &MemoryDeviceStore{docs: make(map[string]models.Device)}
}

func (s *MemoryDeviceStore) Get(_ context.Context, deviceID string) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev, ok := s.docs[deviceID]
	if !ok {
		return nil, ErrNotFound
	}
	return &dev, nil
}

func (s *MemoryDeviceStore) List(_ context.Context) ([]models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Device, 0, len(s.docs))
	for _, dev := range s.docs {
		out = append(out, dev)
	}
	return out, nil
}

func (s *MemoryDeviceStore) ListByAssignee(_ context.Context, employeeID string) ([]models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Device{}
	for _, dev := range s.docs {
		if dev.AssignedTo != nil && *dev.AssignedTo == employeeID {
			out = append(out, dev)
		}
	}
	return out, nil
}

func (s *MemoryDeviceStore) Create(_ context.Context, dev models.Device) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[dev.DeviceID]; ok {
		return nil, ErrDuplicate
	}
	dev.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	dev.CreatedAt = now
	dev.UpdatedAt = now
	s.docs[dev.DeviceID] = dev
	return &dev, nil
}

func (s *MemoryDeviceStore) Replace(_ context.Context, dev models.Device) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[dev.DeviceID]
	if !ok {
		return nil, ErrNotFound
	}
	current.Model = dev.Model
	current.AssignedTo = dev.AssignedTo
	current.Status = dev.Status
	current.Department = dev.Department
	current.UpdatedAt = time.Now().UTC()
	s.docs[dev.DeviceID] = current
	return &current, nil
}

func (s *MemoryDeviceStore) Delete(_ context.Context, deviceID string) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev, ok := s.docs[deviceID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.docs, deviceID)
	return &dev, nil
}

func (s *MemoryDeviceStore) SetAssignee(_ context.Context, deviceID string, employeeID, department *string) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev, ok := s.docs[deviceID]
	if !ok {
		return nil, ErrNotFound
	}
	dev.AssignedTo = employeeID
	dev.Department = department
	dev.UpdatedAt = time.Now().UTC()
	s.docs[deviceID] = dev
	return &dev, nil
}

func (s *MemoryDeviceStore) UnassignAll(_ context.Context, employeeID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var modified int64
	for key, dev := range s.docs {
		if dev.AssignedTo != nil && *dev.AssignedTo == employeeID {
			dev.AssignedTo = nil
			dev.Department = nil
			dev.UpdatedAt = time.Now().UTC()
			s.docs[key] = dev
			modified++
		}
	}
	return modified, nil
}

type MemoryLicenseStore struct {
	mu   sync.Mutex
	docs map[string]models.License
}

func NewMemoryLicenseStore() *MemoryLicenseStore {
	return &MemoryLicenseStore{docs: make(map[string]models.License)}
}

func (s *MemoryLicenseStore) Get(_ context.Context, licenseID string) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lic, ok := s.docs[licenseID]
	if !ok {
		return nil, ErrNotFound
	}
	return &lic, nil
}

func (s *MemoryLicenseStore) List(_ context.Context) ([]models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.License, 0, len(s.docs))
	for _, lic := range s.docs {
		out = append(out, lic)
	}
	return out, nil
}

func (s *MemoryLicenseStore) ListByAssignee(_ context.Context, employeeID string) ([]models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.License{}
	for _, lic := range s.docs {
		if lic.AssignedTo != nil && *lic.AssignedTo == employeeID {
			out = append(out, lic)
		}
	}
	return out, nil
}

func (s *MemoryLicenseStore) Create(_ context.Context, lic models.License) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[lic.LicenseID]; ok {
		return nil, ErrDuplicate
	}
	lic.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	lic.CreatedAt = now
	lic.UpdatedAt = now
	s.docs[lic.LicenseID] = lic
	return &lic, nil
}

func (s *MemoryLicenseStore) Replace(_ context.Context, lic models.License) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[lic.LicenseID]
	if !ok {
		return nil, ErrNotFound
	}
	current.LicenseName = lic.LicenseName
	current.Type = lic.Type
	current.AssignedTo = lic.AssignedTo
	current.Status = lic.Status
	current.Department = lic.Department
	current.Description = lic.Description
	current.UpdatedAt = time.Now().UTC()
	s.docs[lic.LicenseID] = current
	return &current, nil
}

func (s *MemoryLicenseStore) Delete(_ context.Context, licenseID string) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lic, ok := s.docs[licenseID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.docs, licenseID)
	return &lic, nil
}

func (s *MemoryLicenseStore) SetAssignee(_ context.Context, licenseID string, employeeID, department *string) (*models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lic, ok := s.docs[licenseID]
	if !ok {
		return nil, ErrNotFound
	}
	lic.AssignedTo = employeeID
	lic.Department = department
	lic.UpdatedAt = time.Now().UTC()
	s.docs[licenseID] = lic
	return &lic, nil
}

func (s *MemoryLicenseStore) UnassignAll(_ context.Context, employeeID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var modified int64
	for key, lic := range s.docs {
		if lic.AssignedTo != nil && *lic.AssignedTo == employeeID {
			lic.AssignedTo = nil
			lic.Department = nil
			lic.UpdatedAt = time.Now().UTC()
			s.docs[key] = lic
			modified++
		}
	}
	return modified, nil
}

var (
	_ EmployeeStore = (*MemoryEmployeeStore)(nil)
	_ DeviceStore   = (*MemoryDeviceStore)(nil)
	_ LicenseStore  = (*MemoryLicenseStore)(nil)
)

package assignment

import (
	"context"
	"fmt"

	"assetdesk/models"
	"assetdesk/store"
)

// In-memory collaborators recording every reverse-link write, so tests can
// assert not just final state but which documents were touched.

type assigneeCall struct {
	id       string
	assignee *string
}

func (c assigneeCall) String() string {
	if c.assignee == nil {
		return c.id + "->nil"
	}
	return c.id + "->" + *c.assignee
}

type fakeEmployeeStore struct {
	docs map[string]models.Employee
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{docs: make(map[string]models.Employee)}
}

func (s *fakeEmployeeStore) Get(_ context.Context, employeeID string) (*models.Employee, error) {
	emp, ok := s.docs[employeeID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &emp, nil
}

func (s *fakeEmployeeStore) List(_ context.Context) ([]models.Employee, error) {
	out := make([]models.Employee, 0, len(s.docs))
	for _, emp := range s.docs {
		out = append(out, emp)
	}
	return out, nil
}

func (s *fakeEmployeeStore) Create(_ context.Context, emp models.Employee) (*models.Employee, error) {
	if _, ok := s.docs[emp.EmployeeID]; ok {
		return nil, store.ErrDuplicate
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

func (s *fakeEmployeeStore) Replace(_ context.Context, emp models.Employee) (*models.Employee, error) {
	if _, ok := s.docs[emp.EmployeeID]; !ok {
		return nil, store.ErrNotFound
	}
	s.docs[emp.EmployeeID] = emp
	return &emp, nil
}

func (s *fakeEmployeeStore) Delete(_ context.Context, employeeID string) (*models.Employee, error) {
	emp, ok := s.docs[employeeID]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.docs, employeeID)
	return &emp, nil
}

func (s *fakeEmployeeStore) PullDevice(_ context.Context, deviceID string) (int64, error) {
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
			s.docs[key] = emp
			modified++
		}
	}
	return modified, nil
}

func (s *fakeEmployeeStore) PullLicense(_ context.Context, licenseID string) (int64, error) {
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
			s.docs[key] = emp
			modified++
		}
	}
	return modified, nil
}

type fakeDeviceStore struct {
	docs  map[string]models.Device
	calls []assigneeCall // every SetAssignee invocation, hit or miss
}

func newFakeDeviceStore() *fakeDeviceStore {
	return &fakeDeviceStore{docs: make(map[string]models.Device)}
}

func (s *fakeDeviceStore) Get(_ context.Context, deviceID string) (*models.Device, error) {
	dev, ok := s.docs[deviceID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &dev, nil
}

func (s *fakeDeviceStore) List(_ context.Context) ([]models.Device, error) {
	out := make([]models.Device, 0, len(s.docs))
	for _, dev := range s.docs {
		out = append(out, dev)
	}
	return out, nil
}

func (s *fakeDeviceStore) ListByAssignee(_ context.Context, employeeID string) ([]models.Device, error) {
	var out []models.Device
	for _, dev := range s.docs {
		if dev.AssignedTo != nil && *dev.AssignedTo == employeeID {
			out = append(out, dev)
		}
	}
	return out, nil
}

func (s *fakeDeviceStore) Create(_ context.Context, dev models.Device) (*models.Device, error) {
	if _, ok := s.docs[dev.DeviceID]; ok {
		return nil, store.ErrDuplicate
	}
	s.docs[dev.DeviceID] = dev
	return &dev, nil
}

func (s *fakeDeviceStore) Replace(_ context.Context, dev models.Device) (*models.Device, error) {
	if _, ok := s.docs[dev.DeviceID]; !ok {
		return nil, store.ErrNotFound
	}
	s.docs[dev.DeviceID] = dev
	return &dev, nil
}

func (s *fakeDeviceStore) Delete(_ context.Context, deviceID string) (*models.Device, error) {
	dev, ok := s.docs[deviceID]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.docs, deviceID)
	return &dev, nil
}

func (s *fakeDeviceStore) SetAssignee(_ context.Context, deviceID string, employeeID, department *string) (*models.Device, error) {
	s.calls = append(s.calls, assigneeCall{id: deviceID, assignee: employeeID})
	dev, ok := s.docs[deviceID]
	if !ok {
		return nil, store.ErrNotFound
	}
	dev.AssignedTo = employeeID
	dev.Department = department
	s.docs[deviceID] = dev
	return &dev, nil
}

func (s *fakeDeviceStore) UnassignAll(_ context.Context, employeeID string) (int64, error) {
	var modified int64
	for key, dev := range s.docs {
		if dev.AssignedTo != nil && *dev.AssignedTo == employeeID {
			dev.AssignedTo = nil
			dev.Department = nil
			s.docs[key] = dev
			modified++
		}
	}
	return modified, nil
}

type fakeLicenseStore struct {
	docs  map[string]models.License
	calls []assigneeCall
}

func newFakeLicenseStore() *fakeLicenseStore {
	return &fakeLicenseStore{docs: make(map[string]models.License)}
}

func (s *fakeLicenseStore) Get(_ context.Context, licenseID string) (*models.License, error) {
	lic, ok := s.docs[licenseID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &lic, nil
}

func (s *fakeLicenseStore) List(_ context.Context) ([]models.License, error) {
	out := make([]models.License, 0, len(s.docs))
	for _, lic := range s.docs {
		out = append(out, lic)
	}
	return out, nil
}

func (s *fakeLicenseStore) ListByAssignee(_ context.Context, employeeID string) ([]models.License, error) {
	var out []models.License
	for _, lic := range s.docs {
		if lic.AssignedTo != nil && *lic.AssignedTo == employeeID {
			out = append(out, lic)
		}
	}
	return out, nil
}

func (s *fakeLicenseStore) Create(_ context.Context, lic models.License) (*models.License, error) {
	if _, ok := s.docs[lic.LicenseID]; ok {
		return nil, store.ErrDuplicate
	}
	s.docs[lic.LicenseID] = lic
	return &lic, nil
}

func (s *fakeLicenseStore) Replace(_ context.Context, lic models.License) (*models.License, error) {
	if _, ok := s.docs[lic.LicenseID]; !ok {
		return nil, store.ErrNotFound
	}
	s.docs[lic.LicenseID] = lic
	return &lic, nil
}

func (s *fakeLicenseStore) Delete(_ context.Context, licenseID string) (*models.License, error) {
	lic, ok := s.docs[licenseID]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.docs, licenseID)
	return &lic, nil
}

func (s *fakeLicenseStore) SetAssignee(_ context.Context, licenseID string, employeeID, department *string) (*models.License, error) {
	s.calls = append(s.calls, assigneeCall{id: licenseID, assignee: employeeID})
	lic, ok := s.docs[licenseID]
	if !ok {
		return nil, store.ErrNotFound
	}
	lic.AssignedTo = employeeID
	lic.Department = department
	s.docs[licenseID] = lic
	return &lic, nil
}

func (s *fakeLicenseStore) UnassignAll(_ context.Context, employeeID string) (int64, error) {
	var modified int64
	for key, lic := range s.docs {
		if lic.AssignedTo != nil && *lic.AssignedTo == employeeID {
			lic.AssignedTo = nil
			lic.Department = nil
			s.docs[key] = lic
			modified++
		}
	}
	return modified, nil
}

// callStrings renders recorded assignee calls for readable assertions.
func callStrings(calls []assigneeCall) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = fmt.Sprint(c)
	}
	return out
}

var (
	_ store.EmployeeStore = (*fakeEmployeeStore)(nil)
	_ store.DeviceStore   = (*fakeDeviceStore)(nil)
	_ store.LicenseStore  = (*fakeLicenseStore)(nil)
)

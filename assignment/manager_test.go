package assignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/models"
	"assetdesk/store"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	employees *fakeEmployeeStore
	devices   *fakeDeviceStore
	licenses  *fakeLicenseStore
	manager   *Manager
}

func newFixture() *fixture {
	f := &fixture{
		employees: newFakeEmployeeStore(),
		devices:   newFakeDeviceStore(),
		licenses:  newFakeLicenseStore(),
	}
	f.manager = NewManager(f.employees, f.devices, f.licenses)
	return f
}

func (f *fixture) seedEmployee(id, name, department string, deviceIDs, licenseIDs []string) {
	if deviceIDs == nil {
		deviceIDs = []string{}
	}
	if licenseIDs == nil {
		licenseIDs = []string{}
	}
	f.employees.docs[id] = models.Employee{
		EmployeeID:       id,
		EmployeeName:     name,
		Department:       department,
		AssignedDevices:  deviceIDs,
		AssignedLicenses: licenseIDs,
	}
}

func (f *fixture) seedDevice(id, model string, assignedTo *string) {
	f.devices.docs[id] = models.Device{DeviceID: id, Model: model, AssignedTo: assignedTo}
}

func (f *fixture) seedLicense(id, name string, assignedTo *string) {
	f.licenses.docs[id] = models.License{
		LicenseID: id, LicenseName: name, Type: models.LicensePerpetual, AssignedTo: assignedTo,
	}
}

// checkAgreement verifies bidirectional agreement between the employee lists
// and the device/license assignedTo fields across everything in the fixture.
func (f *fixture) checkAgreement(t *testing.T) {
	t.Helper()
	for id, dev := range f.devices.docs {
		if dev.AssignedTo != nil {
			emp, ok := f.employees.docs[*dev.AssignedTo]
			require.True(t, ok, "device %s assigned to missing employee %s", id, *dev.AssignedTo)
			assert.Contains(t, emp.AssignedDevices, id)
		}
	}
	for _, emp := range f.employees.docs {
		for _, deviceID := range emp.AssignedDevices {
			if dev, ok := f.devices.docs[deviceID]; ok {
				require.NotNil(t, dev.AssignedTo, "device %s not pointing back at %s", deviceID, emp.EmployeeID)
				assert.Equal(t, emp.EmployeeID, *dev.AssignedTo)
			}
		}
	}
	for id, lic := range f.licenses.docs {
		if lic.AssignedTo != nil {
			emp, ok := f.employees.docs[*lic.AssignedTo]
			require.True(t, ok, "license %s assigned to missing employee %s", id, *lic.AssignedTo)
			assert.Contains(t, emp.AssignedLicenses, id)
		}
	}
}

func TestCreateEmployeeLinksDevicesAndLicenses(t *testing.T) {
	f := newFixture()
	f.seedDevice("D1", "ThinkPad", nil)
	f.seedLicense("L1", "Office", nil)

	created, err := f.manager.CreateEmployee(context.Background(), models.Employee{
		EmployeeID:       "E1",
		EmployeeName:     "Ada",
		Department:       "Engineering",
		AssignedDevices:  []string{"D1"},
		AssignedLicenses: []string{"L1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"D1"}, created.AssignedDevices)

	dev := f.devices.docs["D1"]
	require.NotNil(t, dev.AssignedTo)
	assert.Equal(t, "E1", *dev.AssignedTo)
	require.NotNil(t, dev.Department)
	assert.Equal(t, "Engineering", *dev.Department)

	lic := f.licenses.docs["L1"]
	require.NotNil(t, lic.AssignedTo)
	assert.Equal(t, "E1", *lic.AssignedTo)

	f.checkAgreement(t)
}

func TestCreateEmployeeMissingDeviceIsSilentlySkipped(t *testing.T) {
	f := newFixture()

	created, err := f.manager.CreateEmployee(context.Background(), models.Employee{
		EmployeeID:      "E1",
		EmployeeName:    "Ada",
		AssignedDevices: []string{"D8"},
	})
	require.NoError(t, err)
	// The list is stored as given even though D8 does not exist.
	assert.Equal(t, []string{"D8"}, created.AssignedDevices)
	assert.Equal(t, []string{"D8->E1"}, callStrings(f.devices.calls))
}

func TestCreateEmployeeDuplicateID(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", nil, nil)

	_, err := f.manager.CreateEmployee(context.Background(), models.Employee{EmployeeID: "E1"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.Empty(t, f.devices.calls)
}

func TestUpdateEmployeeDeltaOnlyTouchesChangedIDs(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", []string{"D1", "D2"}, nil)
	f.seedDevice("D1", "ThinkPad", strPtr("E1"))
	f.seedDevice("D2", "MacBook", strPtr("E1"))
	f.seedDevice("D3", "XPS", nil)

	updated, err := f.manager.UpdateEmployee(context.Background(), "E1", EmployeeUpdate{
		AssignedDevices: &[]string{"D2", "D3"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"D2", "D3"}, updated.AssignedDevices)

	// Exactly D1 unassigned and D3 assigned; D2 untouched.
	assert.ElementsMatch(t, []string{"D1->nil", "D3->E1"}, callStrings(f.devices.calls))
	assert.Nil(t, f.devices.docs["D1"].AssignedTo)
	require.NotNil(t, f.devices.docs["D3"].AssignedTo)
	assert.Equal(t, "E1", *f.devices.docs["D3"].AssignedTo)
	require.NotNil(t, f.devices.docs["D2"].AssignedTo)
	assert.Equal(t, "E1", *f.devices.docs["D2"].AssignedTo)

	f.checkAgreement(t)
}

func TestUpdateEmployeeSameListsIssuesNoReverseWrites(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", []string{"D1", "D2"}, []string{"L1"})
	f.seedDevice("D1", "ThinkPad", strPtr("E1"))
	f.seedDevice("D2", "MacBook", strPtr("E1"))
	f.seedLicense("L1", "Office", strPtr("E1"))

	_, err := f.manager.UpdateEmployee(context.Background(), "E1", EmployeeUpdate{
		AssignedDevices:  &[]string{"D1", "D2"},
		AssignedLicenses: &[]string{"L1"},
	})
	require.NoError(t, err)
	assert.Empty(t, f.devices.calls)
	assert.Empty(t, f.licenses.calls)
}

func TestUpdateEmployeeOmittedListsAreUnchanged(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", []string{"D1"}, nil)
	f.seedDevice("D1", "ThinkPad", strPtr("E1"))

	updated, err := f.manager.UpdateEmployee(context.Background(), "E1", EmployeeUpdate{
		EmployeeName: strPtr("Ada L."),
		Location:     strPtr("Berlin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.EmployeeName)
	assert.Equal(t, "Berlin", updated.Location)
	assert.Equal(t, "Engineering", updated.Department)
	assert.Equal(t, []string{"D1"}, updated.AssignedDevices)
	assert.Empty(t, f.devices.calls)
}

func TestUpdateEmployeeMissingReferenceSkipped(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", nil, nil)

	updated, err := f.manager.UpdateEmployee(context.Background(), "E1", EmployeeUpdate{
		AssignedDevices: &[]string{"D404"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"D404"}, updated.AssignedDevices)
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	f := newFixture()
	f.seedDevice("D1", "ThinkPad", nil)

	_, err := f.manager.UpdateEmployee(context.Background(), "E404", EmployeeUpdate{
		AssignedDevices: &[]string{"D1"},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
	// No device or license write may happen before the existence check.
	assert.Empty(t, f.devices.calls)
	assert.Empty(t, f.licenses.calls)
	assert.Nil(t, f.devices.docs["D1"].AssignedTo)
}

func TestDeleteEmployeeUnassignsEverything(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E2", "Grace", "Ops", []string{"D7"}, []string{"L3"})
	f.seedDevice("D7", "ThinkPad", strPtr("E2"))
	f.seedLicense("L3", "IDE", strPtr("E2"))

	deleted, err := f.manager.DeleteEmployee(context.Background(), "E2")
	require.NoError(t, err)
	assert.Equal(t, "E2", deleted.EmployeeID)

	_, ok := f.employees.docs["E2"]
	assert.False(t, ok)
	assert.Nil(t, f.devices.docs["D7"].AssignedTo)
	assert.Nil(t, f.licenses.docs["L3"].AssignedTo)
}

func TestDeleteEmployeeCleansStaleAssignments(t *testing.T) {
	f := newFixture()
	// D9 points at E2 but E2's own list forgot it; the bulk unassign scans
	// assignedTo, so D9 must still be cleared.
	f.seedEmployee("E2", "Grace", "Ops", []string{"D7"}, nil)
	f.seedDevice("D7", "ThinkPad", strPtr("E2"))
	f.seedDevice("D9", "MacBook", strPtr("E2"))

	_, err := f.manager.DeleteEmployee(context.Background(), "E2")
	require.NoError(t, err)
	assert.Nil(t, f.devices.docs["D7"].AssignedTo)
	assert.Nil(t, f.devices.docs["D9"].AssignedTo)
}

func TestDeleteEmployeeNotFound(t *testing.T) {
	f := newFixture()
	f.seedDevice("D1", "ThinkPad", strPtr("E404"))

	_, err := f.manager.DeleteEmployee(context.Background(), "E404")
	assert.ErrorIs(t, err, store.ErrNotFound)
	// NotFound aborts before any cleanup runs.
	require.NotNil(t, f.devices.docs["D1"].AssignedTo)
	assert.Equal(t, "E404", *f.devices.docs["D1"].AssignedTo)
}

func TestDeleteDevicePullsFromAllEmployees(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E9", "Linus", "IT", []string{"D5", "D6"}, nil)
	f.seedEmployee("E10", "Ken", "IT", []string{"D5"}, nil)
	f.seedDevice("D5", "ThinkPad", strPtr("E9"))
	f.seedDevice("D6", "MacBook", strPtr("E9"))

	deleted, err := f.manager.DeleteDevice(context.Background(), "D5")
	require.NoError(t, err)
	assert.Equal(t, "D5", deleted.DeviceID)

	_, ok := f.devices.docs["D5"]
	assert.False(t, ok)
	assert.Equal(t, []string{"D6"}, f.employees.docs["E9"].AssignedDevices)
	assert.Empty(t, f.employees.docs["E10"].AssignedDevices)
	f.checkAgreement(t)
}

func TestDeleteDeviceNotFound(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", []string{"D404"}, nil)

	_, err := f.manager.DeleteDevice(context.Background(), "D404")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, []string{"D404"}, f.employees.docs["E1"].AssignedDevices)
}

func TestDeleteLicensePullsFromAllEmployees(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", nil, []string{"L1", "L2"})
	f.seedLicense("L1", "Office", strPtr("E1"))
	f.seedLicense("L2", "IDE", strPtr("E1"))

	_, err := f.manager.DeleteLicense(context.Background(), "L1")
	require.NoError(t, err)
	_, ok := f.licenses.docs["L1"]
	assert.False(t, ok)
	assert.Equal(t, []string{"L2"}, f.employees.docs["E1"].AssignedLicenses)
}

func TestCreateDeviceDoesNotTouchEmployeeSide(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", nil, nil)

	created, err := f.manager.CreateDevice(context.Background(), models.Device{
		DeviceID:   "D1",
		Model:      "ThinkPad",
		AssignedTo: strPtr("E1"),
		Status:     models.DeviceInUse,
	})
	require.NoError(t, err)
	require.NotNil(t, created.AssignedTo)
	assert.Equal(t, "E1", *created.AssignedTo)
	// Record creation is one-directional: the employee list stays empty.
	assert.Empty(t, f.employees.docs["E1"].AssignedDevices)
}

func TestCreateDeviceRejectsUnknownStatus(t *testing.T) {
	f := newFixture()

	_, err := f.manager.CreateDevice(context.Background(), models.Device{
		DeviceID: "D1",
		Model:    "ThinkPad",
		Status:   7,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
	assert.Empty(t, f.devices.docs)
}

func TestCreateLicenseRejectsUnknownType(t *testing.T) {
	f := newFixture()

	_, err := f.manager.CreateLicense(context.Background(), models.License{
		LicenseID:   "L1",
		LicenseName: "Office",
		Type:        "Trial",
		Status:      models.LicenseAvailable,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	assert.Empty(t, f.licenses.docs)
}

func TestUpdateDevicePartialAndUnassign(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", []string{"D1"}, nil)
	f.seedDevice("D1", "ThinkPad", strPtr("E1"))

	status := models.DeviceUnderMaintenance
	updated, err := f.manager.UpdateDevice(context.Background(), "D1", DeviceUpdate{
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DeviceUnderMaintenance, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, "E1", *updated.AssignedTo)

	var cleared *string
	updated, err = f.manager.UpdateDevice(context.Background(), "D1", DeviceUpdate{
		AssignedTo: &cleared,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedTo)
	// One-directional: the employee list still holds D1.
	assert.Equal(t, []string{"D1"}, f.employees.docs["E1"].AssignedDevices)
}

func TestUpdateDeviceStampsDepartmentOnAssign(t *testing.T) {
	f := newFixture()
	f.seedEmployee("E1", "Ada", "Engineering", nil, nil)
	f.seedDevice("D1", "ThinkPad", nil)

	assignee := strPtr("E1")
	updated, err := f.manager.UpdateDevice(context.Background(), "D1", DeviceUpdate{
		AssignedTo: &assignee,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Engineering", *updated.Department)
}

func TestUpdateLicenseRejectsBadStatusBeforeWriting(t *testing.T) {
	f := newFixture()
	f.seedLicense("L1", "Office", nil)

	bad := 9
	_, err := f.manager.UpdateLicense(context.Background(), "L1", LicenseUpdate{
		Status:      &bad,
		LicenseName: strPtr("Office 365"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Office", f.licenses.docs["L1"].LicenseName)
}

func TestAgreementHoldsAcrossOperationSequence(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, id := range []string{"D1", "D2", "D3"} {
		_, err := f.manager.CreateDevice(ctx, models.Device{DeviceID: id, Model: "ThinkPad"})
		require.NoError(t, err)
	}
	_, err := f.manager.CreateLicense(ctx, models.License{
		LicenseID: "L1", LicenseName: "Office", Type: models.LicenseSubscription,
	})
	require.NoError(t, err)

	_, err = f.manager.CreateEmployee(ctx, models.Employee{
		EmployeeID: "E1", EmployeeName: "Ada", Department: "Engineering",
		AssignedDevices: []string{"D1", "D2"}, AssignedLicenses: []string{"L1"},
	})
	require.NoError(t, err)
	f.checkAgreement(t)

	_, err = f.manager.UpdateEmployee(ctx, "E1", EmployeeUpdate{
		AssignedDevices: &[]string{"D2", "D3"},
	})
	require.NoError(t, err)
	f.checkAgreement(t)

	_, err = f.manager.DeleteDevice(ctx, "D2")
	require.NoError(t, err)
	f.checkAgreement(t)

	_, err = f.manager.DeleteEmployee(ctx, "E1")
	require.NoError(t, err)
	f.checkAgreement(t)

	for _, dev := range f.devices.docs {
		assert.Nil(t, dev.AssignedTo)
	}
	for _, lic := range f.licenses.docs {
		assert.Nil(t, lic.AssignedTo)
	}
}

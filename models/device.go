// models/device.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Device status values
const (
	DeviceAvailable        = 0
	DeviceInUse            = 1
	DeviceUnderMaintenance = 2
)

type Device struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeviceID   string             `bson:"deviceId" json:"deviceId"`
	Model      string             `bson:"model" json:"model"`
	AssignedTo *string            `bson:"assignedTo" json:"assignedTo"`
	Status     int                `bson:"status" json:"status"` // 0 available, 1 in use, 2 under maintenance
	Department *string            `bson:"department" json:"department"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidDeviceStatus reports whether s is one of the known device status values.
func ValidDeviceStatus(s int) bool {
	return s == DeviceAvailable || s == DeviceInUse || s == DeviceUnderMaintenance
}

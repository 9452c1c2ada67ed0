// models/license.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// License status values
const (
	LicenseAvailable = 0
	LicenseInUse     = 1
	LicenseExpired   = 2
)

// License types
const (
	LicenseSubscription = "Subscription"
	LicensePerpetual    = "Perpetual"
)

type License struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LicenseID   string             `bson:"licenseId" json:"licenseId"`
	LicenseName string             `bson:"licenseName" json:"licenseName"`
	Type        string             `bson:"type" json:"type"` // Subscription or Perpetual
	AssignedTo  *string            `bson:"assignedTo" json:"assignedTo"`
	Status      int                `bson:"status" json:"status"` // 0 available, 1 in use, 2 expired
	Department  *string            `bson:"department" json:"department"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidLicenseStatus reports whether s is one of the known license status values.
func ValidLicenseStatus(s int) bool {
	return s == LicenseAvailable || s == LicenseInUse || s == LicenseExpired
}

// ValidLicenseType reports whether t is a known license type.
func ValidLicenseType(t string) bool {
	return t == LicenseSubscription || t == LicensePerpetual
}

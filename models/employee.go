// models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID       string             `bson:"employeeId" json:"employeeId"`
	EmployeeName     string             `bson:"employeeName" json:"employeeName"`
	Department       string             `bson:"department" json:"department"`
	Location         string             `bson:"location" json:"location"`
	Role             []string           `bson:"role" json:"role"`
	AssignedDevices  []string           `bson:"assignedDevices" json:"assignedDevices"`
	AssignedLicenses []string           `bson:"assignedLicenses" json:"assignedLicenses"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

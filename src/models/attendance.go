package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DropOffInfo is the attested identity of the person delivering the child.
type DropOffInfo struct {
	PersonName   string `bson:"personName" json:"personName"`
	Relationship string `bson:"relationship" json:"relationship"`
	Signature    string `bson:"signature" json:"signature"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// PickUpInfo is the attested identity of the person retrieving the child.
type PickUpInfo struct {
	PersonName   string    `bson:"personName" json:"personName"`
	Relationship string    `bson:"relationship" json:"relationship"`
	Signature    string    `bson:"signature" json:"signature"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Time         time.Time `bson:"time" json:"time"`
}

// HealthStatus as reported at drop-off. Temperature is required when
// HasFever is set.
type HealthStatus struct {
	HasFever    bool     `bson:"hasFever" json:"hasFever"`
	Temperature *float64 `bson:"temperature" json:"temperature"`
	Symptoms    []string `bson:"symptoms" json:"symptoms"`
	Medications []string `bson:"medications" json:"medications"`
}

// Meals planned for the day.
type Meals struct {
	Breakfast bool `bson:"breakfast" json:"breakfast"`
	Lunch     bool `bson:"lunch" json:"lunch"`
	Snack     bool `bson:"snack" json:"snack"`
}

// AlternativePickup designates someone other than the guardian who may
// pick the child up.
type AlternativePickup struct {
	Name         string `bson:"name" json:"name"`
	Relationship string `bson:"relationship" json:"relationship"`
	Phone        string `bson:"phone" json:"phone"`
}

// AttendanceSession is one child's presence interval from check-in to
// check-out. A nil CheckOutTime means the session is still open.
type AttendanceSession struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChildID           primitive.ObjectID `bson:"childId" json:"childId"`
	GuardianID        string             `bson:"guardianId" json:"guardianId"`
	CheckInTime       time.Time          `bson:"checkInTime" json:"checkInTime"`
	CheckOutTime      *time.Time         `bson:"checkOutTime" json:"checkOutTime"`
	DropOffInfo       DropOffInfo        `bson:"dropOffInfo" json:"dropOffInfo"`
	PickUpInfo        *PickUpInfo        `bson:"pickUpInfo,omitempty" json:"pickUpInfo,omitempty"`
	HealthStatus      HealthStatus       `bson:"healthStatus" json:"healthStatus"`
	Meals             Meals              `bson:"meals" json:"meals"`
	Concerns          string             `bson:"concerns,omitempty" json:"concerns,omitempty"`
	AlternativePickup *AlternativePickup `bson:"alternativePickup,omitempty" json:"alternativePickup,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedBy         string             `bson:"createdBy" json:"createdBy"`
	UpdatedAt         *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	UpdatedBy         string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// Open reports whether the session has no recorded check-out.
func (s *AttendanceSession) Open() bool {
	return s.CheckOutTime == nil
}

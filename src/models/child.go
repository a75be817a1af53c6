package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmergencyContact for a child.
type EmergencyContact struct {
	Name         string `bson:"name" json:"name"`
	Relationship string `bson:"relationship" json:"relationship"`
	Phone        string `bson:"phone" json:"phone"`
}

// MedicalInfo groups a child's health records.
type MedicalInfo struct {
	Allergies   []string `bson:"allergies" json:"allergies"`
	Medications []string `bson:"medications" json:"medications"`
	Conditions  []string `bson:"conditions" json:"conditions"`
	Notes       string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Child enrolled at the daycare. Owned by exactly one guardian account.
// Children are never hard-deleted; sessions reference them forever.
type Child struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName         string             `bson:"firstName" json:"firstName"`
	LastName          string             `bson:"lastName" json:"lastName"`
	DateOfBirth       time.Time          `bson:"dateOfBirth" json:"dateOfBirth"`
	ParentID          string             `bson:"parentId" json:"parentId"`
	EmergencyContacts []EmergencyContact `bson:"emergencyContacts" json:"emergencyContacts"`
	MedicalInfo       MedicalInfo        `bson:"medicalInfo" json:"medicalInfo"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Age in whole years at the given time. Always derived from DateOfBirth,
// never stored.
func (c *Child) Age(at time.Time) int {
	years := at.Year() - c.DateOfBirth.Year()
	anniversary := c.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

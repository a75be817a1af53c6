package attendance

import (
	"strings"

	"Backend-KiddoCare/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validateID(field, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return &ValidationError{Field: field, Reason: "must be a valid id"}
	}
	return nil
}

func validateDropOff(d models.DropOffInfo) error {
	if strings.TrimSpace(d.PersonName) == "" {
		return &ValidationError{Field: "dropOffInfo.personName", Reason: "is required"}
	}
	if strings.TrimSpace(d.Relationship) == "" {
		return &ValidationError{Field: "dropOffInfo.relationship", Reason: "is required"}
	}
	if strings.TrimSpace(d.Signature) == "" {
		return &ValidationError{Field: "dropOffInfo.signature", Reason: "is required"}
	}
	return nil
}

func validatePickUp(p models.PickUpInfo) error {
	if strings.TrimSpace(p.PersonName) == "" {
		return &ValidationError{Field: "pickUpInfo.personName", Reason: "is required"}
	}
	if strings.TrimSpace(p.Relationship) == "" {
		return &ValidationError{Field: "pickUpInfo.relationship", Reason: "is required"}
	}
	if strings.TrimSpace(p.Signature) == "" {
		return &ValidationError{Field: "pickUpInfo.signature", Reason: "is required"}
	}
	return nil
}

func validateHealth(h models.HealthStatus) error {
	if h.HasFever && h.Temperature == nil {
		return &ValidationError{Field: "healthStatus.temperature", Reason: "is required when hasFever is set"}
	}
	return nil
}

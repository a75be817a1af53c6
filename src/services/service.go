package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID converts a hex id, with a uniform error for bad input.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid id")
	}
	return oid, nil
}

package children

import (
	"context"
	"errors"
	"time"

	"Backend-KiddoCare/src/database"
	"Backend-KiddoCare/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrChildNotFound = errors.New("child not found")

// CreateChild registers a child under a guardian account.
func CreateChild(child *models.Child) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	child.ID = primitive.NewObjectID()
	child.CreatedAt = now
	child.UpdatedAt = now
	if child.EmergencyContacts == nil {
		child.EmergencyContacts = []models.EmergencyContact{}
	}
	if child.MedicalInfo.Allergies == nil {
		child.MedicalInfo.Allergies = []string{}
	}
	if child.MedicalInfo.Medications == nil {
		child.MedicalInfo.Medications = []string{}
	}
	if child.MedicalInfo.Conditions == nil {
		child.MedicalInfo.Conditions = []string{}
	}

	_, err := database.ChildCollection.InsertOne(ctx, child)
	return err
}

// GetChildByID fetches one child.
func GetChildByID(id string) (*models.Child, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid child ID")
	}

	var child models.Child
	err = database.ChildCollection.FindOne(context.Background(), bson.M{"_id": oid}).Decode(&child)
	if err == mongo.ErrNoDocuments {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}
	return &child, nil
}

// GetChildrenByParent lists a guardian's children.
func GetChildrenByParent(parentID string) ([]models.Child, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.ChildCollection.Find(ctx, bson.M{"parentId": parentID},
		options.Find().SetSort(bson.D{{Key: "firstName", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Child
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetChildrenWithFilter lists all children for staff, with name search and
// paging.
func GetChildrenWithFilter(params models.PaginationParams) ([]models.Child, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	filter := bson.M{}
	if params.Search != "" {
		regex := bson.M{"$regex": params.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": regex},
			bson.M{"lastName": regex},
		}
	}

	total, err := database.ChildCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := database.ChildCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var out []models.Child
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateChild applies guardian edits. ParentID is immutable here; children
// are never hard-deleted.
func UpdateChild(id string, patch *models.Child) (*models.Child, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid child ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"firstName":         patch.FirstName,
		"lastName":          patch.LastName,
		"dateOfBirth":       patch.DateOfBirth,
		"emergencyContacts": patch.EmergencyContacts,
		"medicalInfo":       patch.MedicalInfo,
		"updatedAt":         time.Now(),
	}}

	res, err := database.ChildCollection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrChildNotFound
	}
	return GetChildByID(id)
}

package reports

import (
	"context"
	"errors"
	"time"

	"Backend-KiddoCare/src/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChildSummary aggregates a child's attendance over a date range. Minutes
// only count closed sessions; an open session has no duration yet.
type ChildSummary struct {
	ChildID        string    `json:"childId"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	TotalSessions  int       `json:"totalSessions"`
	ClosedSessions int       `json:"closedSessions"`
	TotalMinutes   float64   `json:"totalMinutes"`
	FeverCheckIns  int       `json:"feverCheckIns"`
	Meals          struct {
		Breakfast int `json:"breakfast"`
		Lunch     int `json:"lunch"`
		Snack     int `json:"snack"`
	} `json:"meals"`
}

// AttendanceSummary runs the aggregation for one child and range.
func AttendanceSummary(childID string, from, to time.Time) (*ChildSummary, error) {
	oid, err := primitive.ObjectIDFromHex(childID)
	if err != nil {
		return nil, errors.New("invalid child ID")
	}
	if !to.After(from) {
		return nil, errors.New("date range is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	closedCond := bson.M{"$ne": bson.A{"$checkOutTime", nil}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"childId":     oid,
			"checkInTime": bson.M{"$gte": from, "$lt": to},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"total":  bson.M{"$sum": 1},
			"closed": bson.M{"$sum": bson.M{"$cond": bson.A{closedCond, 1, 0}}},
			"minutes": bson.M{"$sum": bson.M{"$cond": bson.A{
				closedCond,
				bson.M{"$divide": bson.A{
					bson.M{"$subtract": bson.A{"$checkOutTime", "$checkInTime"}},
					60000,
				}},
				0,
			}}},
			"fever":     bson.M{"$sum": bson.M{"$cond": bson.A{"$healthStatus.hasFever", 1, 0}}},
			"breakfast": bson.M{"$sum": bson.M{"$cond": bson.A{"$meals.breakfast", 1, 0}}},
			"lunch":     bson.M{"$sum": bson.M{"$cond": bson.A{"$meals.lunch", 1, 0}}},
			"snack":     bson.M{"$sum": bson.M{"$cond": bson.A{"$meals.snack", 1, 0}}},
		}}},
	}

	cursor, err := database.CheckInCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summary := &ChildSummary{ChildID: childID, From: from, To: to}

	var row struct {
		Total     int     `bson:"total"`
		Closed    int     `bson:"closed"`
		Minutes   float64 `bson:"minutes"`
		Fever     int     `bson:"fever"`
		Breakfast int     `bson:"breakfast"`
		Lunch     int     `bson:"lunch"`
		Snack     int     `bson:"snack"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		summary.TotalSessions = row.Total
		summary.ClosedSessions = row.Closed
		summary.TotalMinutes = row.Minutes
		summary.FeverCheckIns = row.Fever
		summary.Meals.Breakfast = row.Breakfast
		summary.Meals.Lunch = row.Lunch
		summary.Meals.Snack = row.Snack
	}
	return summary, nil
}

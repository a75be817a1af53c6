package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"Backend-KiddoCare/src/database"
	"Backend-KiddoCare/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser creates a guardian or staff account with a bcrypt-hashed
// password. Emails are stored lowercase and must be unique.
func RegisterUser(user *models.User, plainPassword string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role != models.RoleParent && user.Role != models.RoleStaff {
		user.Role = models.RoleParent
	}

	count, err := database.UserCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.CreatedAt = time.Now()

	res, err := database.UserCollection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// AuthenticateUser checks credentials and returns the account without the
// password hash.
func AuthenticateUser(email, password string) (*models.User, error) {
	ctx := context.Background()

	var dbUser models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&dbUser)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	dbUser.Password = ""
	return &dbUser, nil
}

// GetUserByID loads an account by its hex id.
func GetUserByID(id string) (*models.User, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.UserCollection.FindOne(context.Background(), bson.M{"_id": oid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

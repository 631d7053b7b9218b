package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RegistrationRepo interface {
	CreateRegistration(ctx context.Context, reg *Registration) (*Registration, error)
	GetRegistrationByID(ctx context.Context, id primitive.ObjectID) (*Registration, error)
	FindRegistration(ctx context.Context, eventID, userID primitive.ObjectID) (*Registration, error)
	FindRegistrationWithStatus(ctx context.Context, eventID, userID primitive.ObjectID, statuses []string) (*Registration, error)
	ListRegistrations(ctx context.Context, filter bson.M) ([]*Registration, error)
	UpdateRegistrationStatus(ctx context.Context, id primitive.ObjectID, status string) (*Registration, error)
	DeleteRegistrationByID(ctx context.Context, id primitive.ObjectID) error
	DeleteRegistration(ctx context.Context, eventID, userID primitive.ObjectID) (*Registration, error)
	DeleteRegistrationsByEvent(ctx context.Context, eventID primitive.ObjectID) error
	CountRegistrations(ctx context.Context, filter bson.M) (int64, error)
}

func (mdb *MongodbRepo) CreateRegistration(ctx context.Context, reg *Registration) (*Registration, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return nil, err
	}

	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}
	return reg, nil
}

func (mdb *MongodbRepo) GetRegistrationByID(ctx context.Context, id primitive.ObjectID) (*Registration, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return nil, err
	}

	var reg Registration
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return &reg, nil
}

func (mdb *MongodbRepo) FindRegistration(ctx context.Context, eventID, userID primitive.ObjectID) (*Registration, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return nil, err
	}

	var reg Registration
	err = col.FindOne(ctx, bson.M{"event": eventID, "user": userID}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return &reg, nil
}

func (mdb *MongodbRepo) FindRegistrationWithStatus(ctx context.Context, eventID, userID primitive.ObjectID, statuses []string) (*Registration, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"event":  eventID,
		"user":   userID,
		"status": bson.M{"$in": statuses},
	}
	var reg Registration
	err = col.FindOne(ctx, filter).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return &reg, nil
}

func (mdb *MongodbRepo) ListRegistrations(ctx context.Context, filter bson.M) ([]*Registration, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var regs []*Registration
	for cursor.Next(ctx) {
		var reg Registration
		if err := cursor.Decode(&reg); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		regs = append(regs, &reg)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return regs, nil
}

func (mdb *MongodbRepo) UpdateRegistrationStatus(ctx context.Context, id primitive.ObjectID, status string) (*Registration, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return mdb.GetRegistrationByID(ctx, id)
}

func (mdb *MongodbRepo) DeleteRegistrationByID(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return err
	}
	if _, err := col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) DeleteRegistration(ctx context.Context, eventID, userID primitive.ObjectID) (*Registration, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return nil, err
	}

	var removed Registration
	err = col.FindOneAndDelete(ctx, bson.M{"event": eventID, "user": userID}).Decode(&removed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete registration: %w", err)
	}
	return &removed, nil
}

func (mdb *MongodbRepo) DeleteRegistrationsByEvent(ctx context.Context, eventID primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return err
	}
	if _, err := col.DeleteMany(ctx, bson.M{"event": eventID}); err != nil {
		return fmt.Errorf("failed to delete registrations for event: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) CountRegistrations(ctx context.Context, filter bson.M) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, RegistrationColName)
	if err != nil {
		return 0, err
	}

	if filter == nil {
		filter = bson.M{}
	}
	count, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FeedbackRepo interface {
	UpsertFeedback(ctx context.Context, eventID, userID primitive.ObjectID, rating int, comment string, now time.Time) (*Feedback, error)
	FindFeedback(ctx context.Context, eventID, userID primitive.ObjectID) (*Feedback, error)
	ListFeedbackByEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Feedback, error)
	ListFeedbackWithComments(ctx context.Context) ([]*Feedback, error)
}

// UpsertFeedback writes the one feedback record for (event, user), creating
// it on first submission and updating rating/comment/updatedAt afterwards.
// The single FindOneAndUpdate keeps concurrent submissions from ever
// producing two records: the unique (event, user) index makes the losing
// writer's insert collapse into an update on retry by the server, so
// createdAt is only ever set once via $setOnInsert.
func (mdb *MongodbRepo) UpsertFeedback(ctx context.Context, eventID, userID primitive.ObjectID, rating int, comment string, now time.Time) (*Feedback, error) {
	col, err := mdb.GetCollection(ctx, DbName, FeedbackColName)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"event": eventID, "user": userID}
	update := bson.M{
		"$set": bson.M{
			"rating":    rating,
			"comment":   comment,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"event":     eventID,
			"user":      userID,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Feedback
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if mongo.IsDuplicateKeyError(err) {
		// Lost an upsert race against the unique index; the record now
		// exists, so apply the same write as a plain update.
		err = col.FindOneAndUpdate(ctx, filter, bson.M{"$set": update["$set"]},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&result)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert feedback: %w", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) FindFeedback(ctx context.Context, eventID, userID primitive.ObjectID) (*Feedback, error) {
	col, err := mdb.GetCollection(ctx, DbName, FeedbackColName)
	if err != nil {
		return nil, err
	}

	var fb Feedback
	err = col.FindOne(ctx, bson.M{"event": eventID, "user": userID}).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return &fb, nil
}

func (mdb *MongodbRepo) ListFeedbackByEvent(ctx context.Context, eventID primitive.ObjectID) ([]*Feedback, error) {
	col, err := mdb.GetCollection(ctx, DbName, FeedbackColName)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"event": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeFeedbacks(ctx, cursor)
}

// ListFeedbackWithComments returns every feedback record carrying a
// non-empty comment, the input set for admin analytics.
func (mdb *MongodbRepo) ListFeedbackWithComments(ctx context.Context) ([]*Feedback, error) {
	col, err := mdb.GetCollection(ctx, DbName, FeedbackColName)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"comment": bson.M{"$exists": true, "$ne": ""}}
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback with comments: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeFeedbacks(ctx, cursor)
}

func decodeFeedbacks(ctx context.Context, cursor *mongo.Cursor) ([]*Feedback, error) {
	var feedbacks []*Feedback
	for cursor.Next(ctx) {
		var fb Feedback
		if err := cursor.Decode(&fb); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
		feedbacks = append(feedbacks, &fb)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return feedbacks, nil
}

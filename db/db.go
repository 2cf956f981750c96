package db

import (
	"context"
	"time"

	"wanderlust/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo bundles the client and the collections the handlers work with.
type Mongo struct {
	Client *mongo.Client

	ListingsCollection *mongo.Collection
	ReviewsCollection  *mongo.Collection
	JourneyCollection  *mongo.Collection
	UserCollection     *mongo.Collection
}

func Connect(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDB)
	m := &Mongo{
		Client:             client,
		ListingsCollection: database.Collection("listings"),
		ReviewsCollection:  database.Collection("reviews"),
		JourneyCollection:  database.Collection("journeys"),
		UserCollection:     database.Collection("users"),
	}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	// 2dsphere on the mirrored GeoJSON point drives the proximity queries
	_, err := m.JourneyCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location.geo", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "pricing.basePrice", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = m.ListingsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "listingid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}

	_, err = m.ReviewsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reviewid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// ConnectDB opens the process-wide Mongo client. An unreachable server is
// logged rather than fatal and handlers surface store errors per request; a
// client that cannot be constructed at all leaves the handle unset, which
// GetCollection treats as a startup error.
func ConnectDB(cfg App) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Printf("Failed to connect to MongoDB: %v", err)
		return
	}

	if err := c.Ping(ctx, nil); err != nil {
		log.Printf("Failed to ping MongoDB: %v", err)
	} else {
		log.Println("Connected to the database.")
	}

	client = c
	database = c.Database(cfg.MongoDB)
}

func GetCollection(name string) *mongo.Collection {
	if database == nil {
		log.Panicf("MongoDB connection not established; cannot open collection %q (check MONGODB_URI)", name)
	}
	return database.Collection(name)
}

// EnsureIndexes creates the unique indexes the services rely on:
// properties.propertyId and users.email.
func EnsureIndexes(ctx context.Context) {
	if database == nil {
		return
	}

	unique := options.Index().SetUnique(true)

	_, err := GetCollection("properties").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "propertyId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Printf("Failed to create property index: %v", err)
	}

	_, err = GetCollection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Printf("Failed to create user index: %v", err)
	}
}

package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DBinstance connects to MongoDB using the configured URI and verifies the
// connection before returning the client.
func DBinstance(cfg Config) *mongo.Client {
	fmt.Println("Connecting to MongoDB...")

	client, err := mongo.NewClient(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Connected to MongoDB")
	return client
}

// OpenCollection returns a handle to a named collection in the service database.
func OpenCollection(client *mongo.Client, cfg Config, collectionName string) *mongo.Collection {
	return client.Database(cfg.DatabaseName).Collection(collectionName)
}

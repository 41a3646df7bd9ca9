package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const databaseName = "MongoDB"

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the user collection relies on. It is
// safe to call on every start.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_idx").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "registration_number", Value: 1}},
			Options: options.Index().SetName("registration_number_idx"),
		},
		{
			Keys:    bson.D{{Key: "reset_token", Value: 1}},
			Options: options.Index().SetName("reset_token_idx").SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("could not create MongoDB indexes: %w", err)
	}
	return nil
}

// Pinger reports the health of a MongoDB deployment.
type Pinger struct {
	client *mongo.Client
}

func NewPinger(client *mongo.Client) *Pinger {
	if client == nil {
		panic("Argument client must not be nil.")
	}
	return &Pinger{client: client}
}

func (p *Pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

func (p *Pinger) Name() string {
	return databaseName
}

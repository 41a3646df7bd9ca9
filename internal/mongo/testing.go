package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTestDatabase connects to TEST_MONGODB_URL and returns a fresh
// database that is dropped when the test finishes. Tests are skipped when
// the variable is not set.
func CreateTestDatabase(t testing.TB) *mongo.Database {
	t.Helper()
	uri := os.Getenv("TEST_MONGODB_URL")
	if uri == "" {
		t.Skip("TEST_MONGODB_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri)
	if err != nil {
		t.Fatalf("Could not connect to MongoDB: %v", err)
	}
	if err := NewPinger(client).Ping(ctx); err != nil {
		t.Fatalf("MongoDB is not reachable: %v", err)
	}

	database := client.Database(fmt.Sprintf("regportal_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		database.Drop(ctx)
		client.Disconnect(ctx)
	})
	return database
}

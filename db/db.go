package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	OrganizationsCollection *mongo.Collection
	PitchesCollection       *mongo.Collection
	SessionsCollection      *mongo.Collection
	SessionCalendarCol      *mongo.Collection
	OrgStatsCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("pitchpro")
	UserCollection = database.Collection("users")
	OrganizationsCollection = database.Collection("organizations")
	// Pitches live in one collection keyed by organization_id.
	PitchesCollection = database.Collection("pitches")
	SessionsCollection = database.Collection("sessions")
	// Composite _id: "{pitchId}:{month}:{year}"
	SessionCalendarCol = database.Collection("sessionCalendar")
	// Per-organization day-stat batches, one doc per pitch per period.
	OrgStatsCollection = database.Collection("organizationStats")
}

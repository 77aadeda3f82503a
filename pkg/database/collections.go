package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createJournalIndexes()
}

func createJournalIndexes() {
	journalCollection := GetCollection("announcement_journal")
	_, err := journalCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "rid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "station", Value: 1}, {Key: "category", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "announcedat", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7 * 24 * 3600), // Expire after a week
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

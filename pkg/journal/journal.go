// Package journal records every announcement played, so operators can
// audit what a station said and when.
package journal

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/davwheat/rail-announcements-sub000/pkg/database"
)

// Entry is one played announcement.
type Entry struct {
	Station  string `bson:"station"`
	Category string `bson:"category"`

	RID                string   `bson:"rid"`
	TOC                string   `bson:"toc"`
	Platform           string   `bson:"platform"`
	TerminatingStation string   `bson:"terminatingstation"`
	Clips              []string `bson:"clips"`

	AnnouncedAt time.Time `bson:"announcedat"`
}

// Recorder persists journal entries. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// MongoRecorder writes entries to the announcement_journal collection.
type MongoRecorder struct{}

func (MongoRecorder) Record(ctx context.Context, entry Entry) {
	collection := database.GetCollection("announcement_journal")

	if _, err := collection.InsertOne(ctx, entry); err != nil {
		log.Error().Err(err).Str("rid", entry.RID).Msg("Failed to journal announcement")
	}
}

// NopRecorder discards entries, for deployments without MongoDB.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) {}

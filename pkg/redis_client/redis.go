package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/davwheat/rail-announcements-sub000/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["ANNOUNCER_REDIS_ADDRESS"] != "" {
		address = env["ANNOUNCER_REDIS_ADDRESS"]
	}

	if env["ANNOUNCER_REDIS_PASSWORD"] != "" {
		password = env["ANNOUNCER_REDIS_PASSWORD"]
	}

	if env["ANNOUNCER_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["ANNOUNCER_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	return Client.Ping(context.Background()).Err()
}

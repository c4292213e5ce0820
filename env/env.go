// Package env loads the service endpoints used by discovery runs from the
// process environment, with .env support for local development.
package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Environment struct {
	RabbitURI      string
	Exchange       string
	MinerQueue     string
	CouchURI       string
	CouchDB        string
	ConformanceURI string
	MaxDepth       int
	MaxStates      int
}

func LoadEnv(logger *zap.Logger) *Environment {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, reading process environment")
	}

	uri, ok := os.LookupEnv("RABBITMQ_URI")
	if !ok {
		logger.Fatal("RABBITMQ_URI not set")
	}
	exchange, ok := os.LookupEnv("AMQP_EXCHANGE")
	if !ok {
		logger.Fatal("AMQP_EXCHANGE not set")
	}
	queue, ok := os.LookupEnv("MINER_QUEUE")
	if !ok {
		logger.Fatal("MINER_QUEUE not set")
	}
	couchURI, ok := os.LookupEnv("COUCHDB_URI")
	if !ok {
		logger.Fatal("COUCHDB_URI not set")
	}
	couchDB, ok := os.LookupEnv("COUCHDB_DB")
	if !ok {
		couchDB = "magnet"
	}
	conformance := os.Getenv("CONFORMANCE_URI")

	return &Environment{
		RabbitURI:      uri,
		Exchange:       exchange,
		MinerQueue:     queue,
		CouchURI:       couchURI,
		CouchDB:        couchDB,
		ConformanceURI: conformance,
		MaxDepth:       intEnv(logger, "SEARCH_MAX_DEPTH"),
		MaxStates:      intEnv(logger, "SEARCH_MAX_STATES"),
	}
}

func intEnv(logger *zap.Logger, key string) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Fatal("failed to parse "+key, zap.Error(err))
	}
	return int(v)
}

package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	MongoClient *mongo.Client
	DBName      string
	Redis       *redis.Client
	JWTSecret   string
	Port        string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present), connects Mongo and Redis, and returns
// the shared Config handed to route setup.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	mongoURI := getenv("MONGO_URI", "mongodb://127.0.0.1:27017")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("mongo.Connect error:", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("mongo ping error:", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_ADDR", "127.0.0.1:6379"),
	})

	return &Config{
		MongoClient: client,
		DBName:      getenv("DB_NAME", "evently"),
		Redis:       rdb,
		JWTSecret:   getenv("JWT_SECRET", "supersecret"),
		Port:        getenv("PORT", "5000"),
	}
}

package db

import (
	"go.mongodb.org/mongo-driver/mongo"
)

type Database interface {
	Connect() error
	Close() error
	DB() *mongo.Database
}

package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetName("orderId_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "consumerId", Value: 1}},
			Options: options.Index().SetName("consumerId_index"),
		},
		{
			Keys:    bson.D{{Key: "agentId", Value: 1}},
			Options: options.Index().SetName("agentId_index"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsureStoreIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("stores").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "consumerId", Value: 1}},
			Options: options.Index().SetName("consumerId_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "registeredBy", Value: 1}},
			Options: options.Index().SetName("registeredBy_index"),
		},
	}

	log.Println("EnsureStoreIndexes: creating store indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureStoreIndexes: store index error:", err)
		return err
	}
	log.Println("EnsureStoreIndexes: store indexes created")
	return nil
}

func EnsureDeliveryPartnerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("delivery_partners").Indexes()

	phoneIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetName("phone_unique").SetUnique(true),
	}

	log.Println("EnsureDeliveryPartnerIndexes: creating phone_unique index")
	_, err := indexes.CreateOne(ctx, phoneIndex)
	if err != nil {
		log.Println("EnsureDeliveryPartnerIndexes: phone index error:", err)
		return err
	}
	log.Println("EnsureDeliveryPartnerIndexes: phone_unique index created")
	return nil
}

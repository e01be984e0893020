package drivers

import (
	"context"
	"fmt"
	"time"

	"github.com/shirouto/dsprobe/types"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongodbProvider struct {
	name    string
	mongodb *mongo.Client
	Config  types.IMongoDB
}

func (m *mongodbProvider) Name() string {
	return m.name
}

func (m *mongodbProvider) Dialect() types.Dialect {
	return types.DialectMongoDB
}

func (m *mongodbProvider) Open(ctx context.Context) error {
	clientOptions := options.Client()
	clientOptions.ApplyURI(m.Config.GetDsn())
	clientOptions.SetConnectTimeout(time.Duration(m.Config.GetConnectTimeout()) * time.Second)
	clientOptions.SetServerSelectionTimeout(time.Duration(m.Config.GetServerSelectionTimeout()) * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("mongodb: connect: %w", err)
	}

	m.mongodb = client
	return nil
}

func (m *mongodbProvider) Validate(ctx context.Context) error {
	if m.mongodb == nil {
		return fmt.Errorf("mongodb: validate before open")
	}
	if err := m.mongodb.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping: %w", err)
	}
	return nil
}

func (m *mongodbProvider) Close() error {
	if m.mongodb == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	return m.mongodb.Disconnect(ctx)
}

// seed-admin creates or replaces an admin credential so the ledger API has a
// login to start from.
//
// Usage:
//
//	MONGODB_URI=mongodb://localhost:27017 seed-admin -name operator -password 'long secret'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fundvault/fundvault/backend/go-services/internal/admins"
	"github.com/fundvault/fundvault/backend/go-services/internal/config"
	"github.com/fundvault/fundvault/backend/go-services/internal/database"
	"github.com/fundvault/fundvault/backend/go-services/pkg/logger"
)

func main() {
	name := flag.String("name", "", "admin name (required)")
	password := flag.String("password", "", "admin password, at least 8 characters (required)")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	if *name == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed-admin -name <name> -password <password>")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	col := client.Database(cfg.MongoDB.Database).Collection("admins")
	svc := admins.NewService(admins.NewMongoRepository(col))

	a, err := svc.SetCredential(ctx, *name, *password)
	if err != nil {
		logger.Fatalf("failed to set credential: %v", err)
	}
	logger.Infof("admin %q ready (id %s)", a.Name, a.ID)
}

// Package main is a one-shot bootstrap that makes sure the default
// Collector account exists. Safe to run repeatedly.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/reliefhub/reliefhub-backend/internal/awsutil"
	"github.com/reliefhub/reliefhub-backend/internal/config"
	"github.com/reliefhub/reliefhub-backend/internal/ddb"
	"github.com/reliefhub/reliefhub-backend/internal/workflow"
)

// Default bootstrap account. The password must be rotated on first login in
// any real deployment.
const (
	defaultUsername = "collector"
	defaultEmail    = "collector@reliefhub.com"
	defaultPassword = "collector123"
)

func main() {
	ctx := context.Background()
	env := config.MustLoad()
	cfg, _, err := awsutil.Load(ctx, env.Region)
	if err != nil {
		log.Fatal(err)
	}
	repo := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}
	flows := workflow.New(repo)

	created, err := flows.EnsureDefaultCollector(ctx, defaultUsername, defaultEmail, defaultPassword)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if created {
		log.Println("Default collector user created")
	} else {
		log.Println("Default collector user already present")
	}
}

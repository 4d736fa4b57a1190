// Package main serves the public donation tracking lookup. No
// authentication: anyone holding a tracking number may check its donation.
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/reliefhub/reliefhub-backend/internal/awsutil"
	"github.com/reliefhub/reliefhub-backend/internal/config"
	"github.com/reliefhub/reliefhub-backend/internal/ddb"
	"github.com/reliefhub/reliefhub-backend/internal/httpx"
	"github.com/reliefhub/reliefhub-backend/internal/workflow"
)

// App holds the application state.
type App struct {
	flows *workflow.Coordinator
}

// main initializes the application and starts the Lambda handler.
func main() {
	env := config.MustLoad()
	cfg, _, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}
	repo := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}
	app := &App{flows: workflow.New(repo)}
	lambda.Start(app.handler)
}

// handler looks up a donation by its tracking number.
func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	trackingID := req.PathParameters["trackingId"]
	if trackingID == "" {
		return httpx.Error(http.StatusBadRequest, "tracking id required")
	}
	donation, err := a.flows.TrackDonation(ctx, trackingID)
	if err != nil {
		return httpx.FromError(err)
	}
	return httpx.JSON(http.StatusOK, donation)
}

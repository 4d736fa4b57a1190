// Package main serves the donation endpoints: creation, listing, detail and
// status transitions.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/authz"
	"github.com/reliefhub/reliefhub-backend/internal/awsutil"
	"github.com/reliefhub/reliefhub-backend/internal/config"
	"github.com/reliefhub/reliefhub-backend/internal/ddb"
	"github.com/reliefhub/reliefhub-backend/internal/httpx"
	"github.com/reliefhub/reliefhub-backend/internal/workflow"
)

// App holds the application state, including configuration and workflows.
type App struct {
	env   config.Env
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
	app := &App{env: env, flows: workflow.New(repo)}
	lambda.Start(app.handler)
}

// handler routes donation requests by method and path.
func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ident, err := authz.FromRequest(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.FromError(err)
	}
	donationID := req.PathParameters["id"]

	switch {
	case req.RequestContext.HTTP.Method == http.MethodPost:
		var body api.CreateDonationRequest
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
		donation, err := a.flows.CreateDonation(ctx, ident, body)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusCreated, donation)

	case req.RequestContext.HTTP.Method == http.MethodPut && donationID != "" && strings.HasSuffix(req.RawPath, "/status"):
		var body api.UpdateStatusRequest
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
		donation, err := a.flows.UpdateDonationStatus(ctx, ident, donationID, body.Status)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, donation)

	case req.RequestContext.HTTP.Method == http.MethodGet && donationID != "":
		donation, err := a.flows.GetDonation(ctx, ident, donationID)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, donation)

	case req.RequestContext.HTTP.Method == http.MethodGet:
		donations, err := a.flows.ListDonations(ctx, ident)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, donations)
	}

	return httpx.Error(http.StatusNotFound, "Route not found")
}

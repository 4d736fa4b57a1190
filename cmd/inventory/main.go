// Package main serves the inventory endpoints: per-camp stock reads,
// whole-list replacement and the cross-camp low-stock alert view.
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

// handler routes inventory requests by method and path.
func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ident, err := authz.FromRequest(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.FromError(err)
	}
	campID := req.PathParameters["campId"]

	switch {
	case req.RequestContext.HTTP.Method == http.MethodGet && strings.HasSuffix(req.RawPath, "/alerts/low-stock"):
		alerts, err := a.flows.LowStockAlerts(ctx, ident)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, alerts)

	case req.RequestContext.HTTP.Method == http.MethodGet && campID != "":
		inv, err := a.flows.GetInventory(ctx, ident, campID)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, inv)

	case req.RequestContext.HTTP.Method == http.MethodPut && campID != "":
		var body api.ReplaceInventoryRequest
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
		inv, err := a.flows.ReplaceInventoryItems(ctx, ident, campID, body.Items)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, inv)
	}

	return httpx.Error(http.StatusNotFound, "Route not found")
}

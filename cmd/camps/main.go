// Package main serves the camp endpoints: creation, listing, detail and
// camp-official registration.
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

// handler routes camp requests by method and path.
func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ident, err := authz.FromRequest(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.FromError(err)
	}

	switch {
	case req.RequestContext.HTTP.Method == http.MethodPost && strings.HasSuffix(req.RawPath, "/register-official"):
		var body api.RegisterOfficialRequest
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
		res, err := a.flows.RegisterOfficial(ctx, ident, body)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusCreated, res)

	case req.RequestContext.HTTP.Method == http.MethodPost:
		var body api.CreateCampRequest
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
		camp, err := a.flows.CreateCamp(ctx, ident, body)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusCreated, camp)

	case req.RequestContext.HTTP.Method == http.MethodGet:
		if campID := req.PathParameters["id"]; campID != "" {
			camp, err := a.flows.GetCamp(ctx, ident, campID)
			if err != nil {
				return httpx.FromError(err)
			}
			return httpx.JSON(http.StatusOK, camp)
		}
		camps, err := a.flows.ListCamps(ctx, ident)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, camps)
	}

	return httpx.Error(http.StatusNotFound, "Route not found")
}

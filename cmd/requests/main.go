// Package main serves the supply-request endpoints: creation, listing,
// detail, status transitions and deletion.
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

// handler routes request endpoints by method and path.
func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ident, err := authz.FromRequest(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.FromError(err)
	}
	requestID := req.PathParameters["id"]

	switch {
	case req.RequestContext.HTTP.Method == http.MethodPost:
		var body api.CreateSupplyRequest
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
		request, err := a.flows.CreateRequest(ctx, ident, body)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusCreated, request)

	case req.RequestContext.HTTP.Method == http.MethodPut && requestID != "" && strings.HasSuffix(req.RawPath, "/status"):
		var body api.UpdateStatusRequest
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
		request, err := a.flows.UpdateRequestStatus(ctx, ident, requestID, body.Status)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, request)

	case req.RequestContext.HTTP.Method == http.MethodDelete && requestID != "":
		res, err := a.flows.DeleteRequest(ctx, ident, requestID)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, res)

	case req.RequestContext.HTTP.Method == http.MethodGet && requestID != "":
		request, err := a.flows.GetRequest(ctx, ident, requestID)
		if err != nil {
			return httpx.FromError(err)
		}
		if req.QueryStringParameters["prefill"] == "true" {
			return httpx.JSON(http.StatusOK, prefill(request))
		}
		return httpx.JSON(http.StatusOK, request)

	case req.RequestContext.HTTP.Method == http.MethodGet:
		requests, err := a.flows.ListRequests(ctx, ident)
		if err != nil {
			return httpx.FromError(err)
		}
		return httpx.JSON(http.StatusOK, requests)
	}

	return httpx.Error(http.StatusNotFound, "Route not found")
}

// prefill projects a request to the flat shape the donor dashboard uses to
// pre-populate a donation form: just the first item.
func prefill(r *api.RequestView) api.UrgentRequestSummary {
	summary := api.UrgentRequestSummary{
		RequestID: r.RequestID,
		CampID:    r.Camp.CampID,
		CampName:  r.Camp.CampName,
		Urgency:   r.Urgency,
	}
	if len(r.Items) > 0 {
		summary.ItemName = r.Items[0].Name
		summary.Quantity = r.Items[0].Quantity
		summary.Unit = r.Items[0].Unit
	}
	return summary
}

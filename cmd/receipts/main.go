// Package main issues presigned URLs for uploading signed delivery-receipt
// documents against a donation.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/reliefhub/reliefhub-backend/internal/api"
	"github.com/reliefhub/reliefhub-backend/internal/authz"
	"github.com/reliefhub/reliefhub-backend/internal/awsutil"
	"github.com/reliefhub/reliefhub-backend/internal/config"
	"github.com/reliefhub/reliefhub-backend/internal/ddb"
	"github.com/reliefhub/reliefhub-backend/internal/httpx"
	"github.com/reliefhub/reliefhub-backend/internal/s3io"
	"github.com/reliefhub/reliefhub-backend/internal/workflow"
)

// App holds the application state, including configuration and AWS clients.
type App struct {
	env   config.Env
	s3p   *s3.PresignClient
	flows *workflow.Coordinator
}

// main initializes the application and starts the Lambda handler.
func main() {
	env := config.MustLoadWithBucket()
	cfg, endpoint, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}

	// S3 client: use path-style when hitting LocalStack
	s3c := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
		}
	})

	repo := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}
	app := &App{
		env:   env,
		s3p:   s3.NewPresignClient(s3c),
		flows: workflow.New(repo),
	}
	lambda.Start(app.handler)
}

// handler authorizes the caller against the donation's camp and returns a
// presigned PUT for the receipt object.
func (a *App) handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	ident, err := authz.FromRequest(req, a.env.DevBypassAuth)
	if err != nil {
		return httpx.FromError(err)
	}
	donationID := req.PathParameters["id"]
	if donationID == "" {
		return httpx.Error(http.StatusBadRequest, "donation id required")
	}

	var body api.ReceiptPresignRequest
	if req.Body != "" {
		if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
			return httpx.Error(http.StatusBadRequest, "invalid json")
		}
	}
	if body.ContentType == "" {
		body.ContentType = s3io.ContentTypePDF
	}
	if body.ContentType != s3io.ContentTypePDF {
		return httpx.Error(http.StatusBadRequest, "Content-Type must be application/pdf")
	}

	donation, err := a.flows.AuthorizeReceiptUpload(ctx, ident, donationID)
	if err != nil {
		return httpx.FromError(err)
	}

	key := s3io.BuildReceiptKey(donation.CampID, donation.DonationID)
	meta := map[string]string{
		"donation_id": donation.DonationID,
		"uploaded_by": ident.UserID,
	}
	url, ttl, err := s3io.PresignPut(ctx, a.s3p, a.env.ReceiptsBucket, key, body.ContentType, meta, a.env.PresignTTL)
	if err != nil {
		log.Printf("presign err: %v", err)
		return httpx.Error(http.StatusInternalServerError, "presign error")
	}

	return httpx.JSON(http.StatusOK, api.ReceiptPresignResponse{
		DonationID:    donation.DonationID,
		S3Key:         key,
		PresignedURL:  url,
		ExpiresIn:     int(ttl.Seconds()),
		ContentType:   body.ContentType,
		UploadHeaders: s3io.UploadHeaders(donation.DonationID, ident.UserID, body.ContentType),
	})
}

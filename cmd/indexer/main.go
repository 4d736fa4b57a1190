// Package main finalizes a receipt upload after S3 PUT by stamping the
// document's details onto its donation.
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/reliefhub/reliefhub-backend/internal/awsutil"
	"github.com/reliefhub/reliefhub-backend/internal/config"
	"github.com/reliefhub/reliefhub-backend/internal/ddb"
	"github.com/reliefhub/reliefhub-backend/internal/models"
	"github.com/reliefhub/reliefhub-backend/internal/s3io"
	"github.com/reliefhub/reliefhub-backend/internal/workflow"
)

// App holds the application state, including configuration and AWS clients.
type App struct {
	env   config.Env
	s3c   *s3.Client
	flows *workflow.Coordinator
}

// main initializes the app and starts the Lambda handler.
func main() {
	env := config.MustLoadWithBucket()
	cfg, endpoint, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatal(err)
	}

	s3c := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true // localstack/dev friendliness
		}
	})

	repo := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}
	app := &App{env: env, s3c: s3c, flows: workflow.New(repo)}
	lambda.Start(app.handler)
}

// handler processes S3 event records to finalize receipt uploads.
func (a *App) handler(ctx context.Context, ev events.S3Event) (any, error) {
	for _, rec := range ev.Records {
		if err := a.processS3Record(ctx, rec); err != nil {
			log.Printf("indexer: process error: %v", err)
		}
	}
	return nil, nil
}

// processS3Record handles a single S3 event record.
func (a *App) processS3Record(ctx context.Context, record events.S3EventRecord) error {
	bucket := record.S3.Bucket.Name
	keyEsc := record.S3.Object.Key
	key, _ := url.QueryUnescape(keyEsc)

	meta, err := a.getObjectMetadata(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("head %s: %w", key, err)
	}

	// Prefer metadata-sourced ids; fall back to path parsing.
	donationID := strings.TrimSpace(meta.Meta["donation_id"])
	if donationID == "" {
		_, d2, ok := s3io.ParseReceiptKey(key)
		if !ok {
			return fmt.Errorf("bad key %q", key)
		}
		donationID = d2
	}

	receipt := models.Receipt{
		S3Key:      key,
		SizeBytes:  meta.Size,
		ETag:       meta.ETag,
		UploadedAt: ddb.NowISO(),
	}
	if err := a.flows.FinalizeReceipt(ctx, donationID, receipt); err != nil {
		return fmt.Errorf("finalize %s: %w", donationID, err)
	}

	log.Printf("receipt attached to donation %s size=%d etag=%s", donationID, meta.Size, meta.ETag)
	return nil
}

// objectMetadata holds S3 object metadata and user-defined metadata.
type objectMetadata struct {
	Size        int64
	ETag        string
	ContentType string
	Meta        map[string]string // lowercased user metadata
}

// getObjectMetadata fetches S3 object metadata including user-defined metadata.
func (a *App) getObjectMetadata(ctx context.Context, bucket, key string) (*objectMetadata, error) {
	ho, err := a.s3c.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}

	m := &objectMetadata{
		Meta: make(map[string]string, len(ho.Metadata)),
	}
	if ho.ContentLength != nil {
		m.Size = *ho.ContentLength
	}
	if ho.ETag != nil {
		m.ETag = strings.Trim(*ho.ETag, "\"")
	}
	if ho.ContentType != nil {
		m.ContentType = strings.ToLower(*ho.ContentType)
		// Be tolerant: log if unexpected but don't fail the pipeline
		if m.ContentType != "" && m.ContentType != s3io.ContentTypePDF {
			log.Printf("indexer: warning content-type=%s for %s", m.ContentType, key)
		}
	}
	// Normalize user metadata keys to lowercase
	for k, v := range ho.Metadata {
		m.Meta[strings.ToLower(k)] = v
	}

	return m, nil
}

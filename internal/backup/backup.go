// Package backup writes JSON snapshots of both collections to S3-compatible
// object storage.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/factkeeper/internal/common"
	fkconfig "github.com/dmitrijs2005/factkeeper/internal/config"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/google/uuid"
)

// LinkValidity is how long the returned download link works.
const LinkValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// Source supplies the collections to snapshot.
type Source interface {
	ListPublished(ctx context.Context) []models.Fact
	ListPending(ctx context.Context) []models.SubmittedFact
}

// Snapshot is the document written to the bucket.
type Snapshot struct {
	TakenAt time.Time              `json:"takenAt"`
	Facts   []models.Fact          `json:"facts"`
	Pending []models.SubmittedFact `json:"pending"`
}

// Result names the stored object and a presigned link to it.
type Result struct {
	Key string
	URL string
}

type Service struct {
	source Source
	config *fkconfig.Config
	logger logging.Logger
}

func NewService(source Source, cfg *fkconfig.Config, logger logging.Logger) *Service {
	return &Service{source: source, config: cfg, logger: logger.With("module", "backup")}
}

// StorageKey returns a date-partitioned object key for t.
func StorageKey(t time.Time) string {
	return fmt.Sprintf("backups/%d/%d/%d/%v.json", t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *Service) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Snapshot uploads the current collections and returns where they went.
func (s *Service) Snapshot(ctx context.Context) (*Result, error) {
	taken := now().UTC()
	doc := Snapshot{
		TakenAt: taken,
		Facts:   s.source.ListPublished(ctx),
		Pending: s.source.ListPending(ctx),
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 config: %w", common.ErrorOperationFailed, err)
	}

	bucket := s.config.S3Bucket
	key := StorageKey(taken)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		s.logger.Error(ctx, "upload snapshot failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: upload snapshot: %w", common.ErrorOperationFailed, err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(LinkValidity))
	if err != nil {
		return nil, fmt.Errorf("%w: presign snapshot: %w", common.ErrorOperationFailed, err)
	}

	s.logger.Info(ctx, "snapshot stored", "key", key, "facts", len(doc.Facts), "pending", len(doc.Pending))
	return &Result{Key: key, URL: req.URL}, nil
}

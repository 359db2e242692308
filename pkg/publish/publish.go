// Package publish uploads rendered snapshots to S3.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ContentTypeHTML is the content type of published snapshots.
const ContentTypeHTML = "text/html; charset=utf-8"

var (
	ErrNoBucket      = errors.New("publish: bucket not set")
	ErrNoCredentials = errors.New("publish: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	ErrEmptyName     = errors.New("publish: empty object name")
)

// PutObjectAPI is the part of *s3.Client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock overrides the time recorded in object metadata.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// Publisher writes snapshots under a key prefix of one bucket.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a publisher. prefix may be empty.
func New(client PutObjectAPI, bucket, prefix string, opts ...Option) (*Publisher, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	p := &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Key returns the object key name is stored under.
func (p *Publisher) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads html as name and returns its object key.
func (p *Publisher) Publish(ctx context.Context, name string, html []byte) (string, error) {
	if strings.Trim(name, "/") == "" {
		return "", ErrEmptyName
	}
	key := p.Key(name)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(html),
		ContentLength: aws.Int64(int64(len(html))),
		ContentType:   aws.String(ContentTypeHTML),
		CacheControl:  aws.String("no-cache"),
		Metadata: map[string]string{
			"generator":    "weave",
			"published-at": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("publish s3://%s/%s: %w", p.bucket, key, err)
	}
	p.logger.Info("snapshot published", "bucket", p.bucket, "key", key, "bytes", len(html))
	return key, nil
}

// NewClientFromEnv builds an S3 client from the standard AWS environment
// variables. region falls back to AWS_REGION. When WEAVE_S3_ENDPOINT is set,
// requests go to that endpoint with path-style addressing, as S3-compatible
// stores expect.
func NewClientFromEnv(region string) (*s3.Client, error) {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return nil, ErrNoCredentials
	}
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}
	session := os.Getenv("AWS_SESSION_TOKEN")

	creds := aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    session,
			Source:          "Environment",
		}, nil
	}))

	opts := s3.Options{
		Region:      region,
		Credentials: creds,
	}
	if endpoint := os.Getenv("WEAVE_S3_ENDPOINT"); endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts), nil
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	sc "github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AvatarStore hands out presigned links to avatar images kept in an
// S3-compatible bucket.
type AvatarStore struct {
	config *sc.Config

	mu     sync.Mutex
	client *s3.PresignClient
}

func NewAvatarStore(config *sc.Config) *AvatarStore {
	return &AvatarStore{config: config}
}

// AvatarKey returns a fresh object key for userID's avatar.
func AvatarKey(userID int64) string {
	return fmt.Sprintf("avatars/%d/%v", userID, uuid.New())
}

// getPresignClient builds the presign client on first use.
func (s *AvatarStore) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

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

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	s.client = newS3PresignClient(client)
	return s.client, nil
}

func (s *AvatarStore) ttl() time.Duration {
	if s.config.AvatarURLTTL > 0 {
		return s.config.AvatarURLTTL
	}
	return 15 * time.Minute
}

// PresignPut returns a new object key for userID and a URL the image can be
// uploaded to.
func (s *AvatarStore) PresignPut(ctx context.Context, userID int64) (string, string, error) {

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := AvatarKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.ttl()))

	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignGet returns a time-limited download link for key.
func (s *AvatarStore) PresignGet(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.ttl()))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

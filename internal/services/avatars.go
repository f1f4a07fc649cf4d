package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/config"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
)

const MaxAvatarSize = 2 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// AvatarStore persists an uploaded avatar and returns the URL it is served from.
type AvatarStore interface {
	Save(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

type LocalAvatarStore struct {
	directory string
}

func NewLocalAvatarStore(directory string) *LocalAvatarStore {
	return &LocalAvatarStore{directory: directory}
}

func (store *LocalAvatarStore) Directory() string {
	return store.directory
}

func (store *LocalAvatarStore) Save(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	if err := os.MkdirAll(store.directory, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(store.directory, key), data, 0o644); err != nil {
		return "", fmt.Errorf("writing avatar: %w", err)
	}
	return "/uploads/" + key, nil
}

type S3AvatarStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3AvatarStore(ctx context.Context, cfg config.S3Config) (*S3AvatarStore, error) {
	options := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3AvatarStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (store *S3AvatarStore) Save(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String("avatars/" + key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading avatar to s3: %w", err)
	}
	return store.publicURL + "/avatars/" + key, nil
}

type AvatarService struct {
	store    AvatarStore
	userRepo repository.UserRepository
	clock    clock.Clock
}

func NewAvatarService(store AvatarStore, userRepo repository.UserRepository, clock clock.Clock) *AvatarService {
	return &AvatarService{store: store, userRepo: userRepo, clock: clock}
}

// Upload validates the image, stores it and points the user's profile image at it.
// The content type is sniffed from the data rather than trusted from the client.
func (service *AvatarService) Upload(ctx context.Context, userID string, body io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxAvatarSize+1))
	if err != nil {
		return "", fmt.Errorf("reading avatar: %w", err)
	}
	if len(data) == 0 {
		return "", models.ValidationErrors{{Field: "file", Message: "no file provided"}}
	}
	if len(data) > MaxAvatarSize {
		return "", models.ValidationErrors{{Field: "file", Message: "file too large, max size is 2MB"}}
	}

	contentType := http.DetectContentType(data)
	extension, ok := avatarExtensions[contentType]
	if !ok {
		return "", models.ValidationErrors{{Field: "file", Message: "invalid file type, allowed: JPG, PNG, GIF, WebP"}}
	}

	key := fmt.Sprintf("avatar_%s_%d.%s", userID, service.clock.Now().UnixMilli(), extension)
	imageURL, err := service.store.Save(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	if err := service.userRepo.UpdateImage(ctx, userID, imageURL); err != nil {
		return "", fmt.Errorf("updating user image: %w", err)
	}
	return imageURL, nil
}

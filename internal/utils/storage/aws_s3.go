package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"kitchen-planner/domain"
	"kitchen-planner/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/webp"}

var ErrStorageDisabled = errors.New("object storage is not configured")

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	// ObjectAPI is the part of the S3 client used here.
	ObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client ObjectAPI
		bucket string
		region string
	}
)

// NewAwsS3 builds a client from the AWS_* settings. It returns a client whose
// calls fail with ErrStorageDisabled when no bucket is configured.
func NewAwsS3(ctx context.Context) (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" {
		return &awsS3{bucket: "", region: region}, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewAwsS3WithClient(s3.NewFromConfig(cfg), bucket, region), nil
}

func NewAwsS3WithClient(client ObjectAPI, bucket string, region string) AwsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

func contentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
}

func allowedType(ct string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == ct {
			return true
		}
	}
	return false
}

func (s *awsS3) put(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed []string) (string, error) {
	if s.client == nil {
		return "", ErrStorageDisabled
	}
	if file == nil {
		return "", domain.ErrInvalidImageFormat
	}
	ct := contentType(file)
	if !allowedType(ct, allowed) {
		return "", domain.ErrInvalidImageFormat
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(ct),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (s *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext := ""
	if file != nil {
		ext = strings.ToLower(filepath.Ext(file.Filename))
	}
	objectKey := fileName + ext
	if folder != "" {
		objectKey = strings.Trim(folder, "/") + "/" + objectKey
	}
	return s.put(ctx, objectKey, file, allowed)
}

func (s *awsS3) UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed ...string) (string, error) {
	return s.put(ctx, objectKey, file, allowed)
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return s.baseURL() + objectKey
}

// GetObjectKeyFromLink returns "" for links outside this bucket.
func (s *awsS3) GetObjectKeyFromLink(link string) string {
	base := s.baseURL()
	if !strings.HasPrefix(link, base) {
		return ""
	}
	return strings.TrimPrefix(link, base)
}

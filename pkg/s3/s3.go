package s3

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"

	"connectly/pkg/config"
)

// Client uploads user avatars to an S3-compatible store. Endpoint and
// path-style addressing are configurable so MinIO works in development.
type Client struct {
	uploader *s3manager.Uploader
	svc      *s3.S3
	bucket   string
	endpoint string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsCfg := &aws.Config{
		Region:      aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
	}
	if cfg.AWSEndpoint != "" {
		// Custom endpoints (MinIO) need path-style bucket addressing.
		awsCfg.Endpoint = aws.String(cfg.AWSEndpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
		awsCfg.DisableSSL = aws.Bool(cfg.S3UseSSL != "true")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("s3: session: %w", err)
	}

	return &Client{
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(sess),
		bucket:   cfg.S3BucketName,
		endpoint: cfg.AWSEndpoint,
	}, nil
}

// UploadAvatar stores the file under avatars/<userID><ext> and returns
// the public URL. Re-uploading overwrites the previous avatar.
func (c *Client) UploadAvatar(userID string, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", fmt.Errorf("s3: unsupported avatar type %q", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("s3: open upload: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("avatars/%s-%s%s", userID, uuid.New().String()[:8], ext)

	out, err := c.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("s3: upload avatar: %w", err)
	}
	return out.Location, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Used on
// startup against MinIO in development.
func (c *Client) EnsureBucket() error {
	_, err := c.svc.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err == nil {
		return nil
	}
	_, err = c.svc.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(c.bucket)})
	if err != nil {
		return fmt.Errorf("s3: create bucket %s: %w", c.bucket, err)
	}
	return nil
}

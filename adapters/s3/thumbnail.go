package s3

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultPresignExpires 是預簽網址的預設有效時間
const DefaultPresignExpires = 15 * time.Minute

var (
	ErrEmptyKey         = errors.New("thumbnail key is empty")
	ErrUnsupportedImage = errors.New("thumbnail key is not a supported image")
)

// ClientConfig 是建立 S3 客戶端所需的連線設定
type ClientConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// NewClient 以靜態憑證建立 S3 客戶端，不會對外發出請求
func NewClient(ctx context.Context, config ClientConfig) (*s3.Client, error) {
	const op = "s3.NewClient"
	region := config.Region
	if region == "" {
		region = "auto"
	}
	cfg, err := awsConfig.LoadDefaultConfig(
		ctx,
		awsConfig.WithBaseEndpoint(config.Endpoint),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, "")),
		awsConfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load aws config: %w", op, err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = config.UsePathStyle
	}), nil
}

type thumbnailOptions struct {
	logger         *slog.Logger
	expires        time.Duration
	publicEndpoint *url.URL
}

type ThumbnailOption func(*thumbnailOptions)

// WithThumbnailLogger 設置日誌記錄器
func WithThumbnailLogger(logger *slog.Logger) ThumbnailOption {
	return func(o *thumbnailOptions) {
		o.logger = logger
	}
}

// WithPresignExpires 設置預簽網址的有效時間
func WithPresignExpires(d time.Duration) ThumbnailOption {
	return func(o *thumbnailOptions) {
		o.expires = d
	}
}

// WithPublicEndpoint 設置 bucket 的公開網址，設置後直接組出公開網址而不預簽
func WithPublicEndpoint(endpoint *url.URL) ThumbnailOption {
	return func(o *thumbnailOptions) {
		o.publicEndpoint = endpoint
	}
}

// Thumbnailer 將 listing 的縮圖 key 轉換成瀏覽器可以直接讀取的網址
type Thumbnailer struct {
	presign *s3.PresignClient
	bucket  string
	logger  *slog.Logger
	options thumbnailOptions
}

func NewThumbnailer(client *s3.Client, bucket string, opts ...ThumbnailOption) (*Thumbnailer, error) {
	const op = "s3.NewThumbnailer"
	if client == nil {
		return nil, fmt.Errorf("%s: s3 client cannot be nil", op)
	}
	if bucket == "" {
		return nil, fmt.Errorf("%s: bucket cannot be empty", op)
	}

	options := thumbnailOptions{
		logger:  slog.Default(),
		expires: DefaultPresignExpires,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Thumbnailer{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		logger:  options.logger.With(slog.String("caller", "Thumbnailer"), slog.String("bucket", bucket)),
		options: options,
	}, nil
}

// URL 回傳縮圖的網址。簽章在本機計算，不會呼叫 S3。
func (t *Thumbnailer) URL(ctx context.Context, key string) (string, error) {
	const op = "s3.Thumbnailer.URL"
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}
	contentType, ok := ImageContentType(key)
	if !ok {
		return "", fmt.Errorf("%s: %w: %q", op, ErrUnsupportedImage, key)
	}

	if t.options.publicEndpoint != nil {
		uri := *t.options.publicEndpoint
		uri.Path = strings.TrimSuffix(uri.Path, "/") + "/" + key
		return uri.String(), nil
	}

	request, err := t.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:              aws.String(t.bucket),
		Key:                 aws.String(key),
		ResponseContentType: aws.String(contentType),
	}, s3.WithPresignExpires(t.options.expires))
	if err != nil {
		return "", fmt.Errorf("%s: failed to presign object: %w", op, err)
	}
	t.logger.Debug("thumbnail presigned", slog.String("key", key))
	return request.URL, nil
}

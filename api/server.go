package api

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	redisAdapter "uncommon/adapters/redis"
	internalS3 "uncommon/adapters/s3"
	"uncommon/adapters/session"
	"uncommon/adapters/sse"
	"uncommon/page"
)

type serverOptions struct {
	logger *slog.Logger
	store  session.IStore
}

type ServerOption func(*serverOptions)

// WithServerLogger 設置日誌記錄器
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

// WithSessionStore 以指定的 store 取代依設定建立的 session store
func WithSessionStore(store session.IStore) ServerOption {
	return func(o *serverOptions) {
		o.store = store
	}
}

type ServerImpl struct {
	logger      *slog.Logger
	sseManager  sse.IConnectionManager[page.Notification]
	thumbnailer *internalS3.Thumbnailer
	htmlChecker *bluemonday.Policy
	redisClient *redis.Client
	store       session.IStore
	template    *template.Template

	config ServerConfig
}

func NewServer(config ServerConfig, opts ...ServerOption) (*ServerImpl, error) {
	const op = "NewServer"
	options := serverOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}

	impl := &ServerImpl{
		logger:      options.logger.With(slog.String("caller", "Server")),
		htmlChecker: bluemonday.UGCPolicy(),
		config:      config,
	}

	impl.config.Listing.Listing = config.Listing.Listing.WithDefaults()
	if _, err := impl.newView(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: invalid listing config: %w", op, err)
	}

	tmpl, err := parseTemplate(impl.htmlChecker)
	if err != nil {
		return nil, fmt.Errorf("%s: fail to parse template: %w", op, err)
	}
	impl.template = tmpl

	// 初始化S3縮圖網址產生器
	if config.S3.Enabled() && impl.config.Listing.Listing.ThumbnailKey != "" {
		client, err := internalS3.NewClient(context.Background(), internalS3.ClientConfig{
			Endpoint:        config.S3.Endpoint,
			Region:          config.S3.Region,
			AccessKeyID:     config.S3.AccessKeyID,
			SecretAccessKey: config.S3.SecretAccessKey,
			UsePathStyle:    config.S3.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: fail to create s3 client: %w", op, err)
		}
		thumbnailOpts := []internalS3.ThumbnailOption{internalS3.WithThumbnailLogger(options.logger)}
		if config.S3.PresignExpires > 0 {
			thumbnailOpts = append(thumbnailOpts, internalS3.WithPresignExpires(config.S3.PresignExpires))
		}
		if config.S3.PublicBaseURL != "" {
			endpoint, err := url.Parse(config.S3.PublicBaseURL)
			if err != nil {
				return nil, fmt.Errorf("%s: fail to parse public base url: %w", op, err)
			}
			thumbnailOpts = append(thumbnailOpts, internalS3.WithPublicEndpoint(endpoint))
		}
		impl.thumbnailer, err = internalS3.NewThumbnailer(client, config.S3.Bucket, thumbnailOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s: fail to create thumbnailer: %w", op, err)
		}
	}

	// 初始化SSE管理器，設定Redis時通知經由stream轉送到所有實例
	managerOpts := []sse.ManagerOption[page.Notification]{sse.WithLogger[page.Notification](options.logger)}
	if config.Redis.Enabled() {
		impl.redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		relay, err := redisAdapter.NewStreamRelay[sse.PublishRequest[page.Notification]](
			impl.redisClient,
			config.Redis.SSEStream(),
			redisAdapter.WithRelayLogger(options.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: fail to create stream relay: %w", op, err)
		}
		managerOpts = append(managerOpts, sse.WithRelay[page.Notification](relay))
	}
	impl.sseManager = sse.NewConnectionManager(managerOpts...)

	impl.store = options.store
	if impl.store == nil {
		impl.store = impl.newSessionStore()
	}

	return impl, nil
}

func (impl *ServerImpl) Start() {
	// 啟動sse connection manager
	impl.sseManager.Start()
}

func (impl *ServerImpl) Close() {
	// 關閉sse connection manager，一併關閉relay
	impl.sseManager.Done()
	if impl.redisClient != nil {
		if err := impl.redisClient.Close(); err != nil {
			impl.logger.Warn("Fail to close redis client", slog.Any("error", err))
		}
	}
}

// RegisterHandlers 註冊所有路由
func (impl *ServerImpl) RegisterHandlers(router gin.IRouter) {
	router.GET("/healthz", impl.GetHealthz)

	pages := router.Group("/", impl.SessionMiddleware())
	pages.GET("/", impl.GetRoot)
	pages.GET("/listing", impl.GetListing)
	pages.GET("/listing/state", impl.GetListingState)
	pages.GET("/listing/events", impl.GetListingEvents)
	pages.POST("/listing/mode", impl.PostListingMode)
	pages.POST("/listing/tab", impl.PostListingTab)
	pages.POST("/listing/dialog/:kind/open", impl.PostListingDialogOpen)
	pages.POST("/listing/dialog/:kind/cancel", impl.PostListingDialogCancel)
	pages.POST("/listing/dialog/:kind/confirm", impl.PostListingDialogConfirm)
	pages.POST("/listing/reset", impl.PostListingReset)
}

// newView 以設定的商品資料建立新的頁面狀態
func (impl *ServerImpl) newView(ctx context.Context, opts ...page.ViewOption) (*page.View, error) {
	base := []page.ViewOption{
		page.WithLogger(impl.logger),
		page.WithStrictAmounts(impl.config.Listing.StrictAmounts),
		page.WithThumbnailURL(impl.thumbnailURL(ctx)),
	}
	if impl.config.Listing.BidIncrement > 0 {
		base = append(base, page.WithBidIncrement(impl.config.Listing.BidIncrement))
	}
	return page.NewView(impl.config.Listing.Listing, impl.config.Listing.Mode, append(base, opts...)...)
}

// thumbnailURL 無法產生網址時退回預設圖片
func (impl *ServerImpl) thumbnailURL(ctx context.Context) string {
	if impl.thumbnailer == nil {
		return page.PlaceholderThumbnail
	}
	uri, err := impl.thumbnailer.URL(ctx, impl.config.Listing.Listing.ThumbnailKey)
	if err != nil {
		impl.logger.Warn("Fall back to placeholder thumbnail", slog.Any("error", err))
		return page.PlaceholderThumbnail
	}
	return uri
}

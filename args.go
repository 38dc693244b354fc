package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"uncommon/api"
	"uncommon/models"
)

const (
	defaultRedisKeyPrefix = "uncommon:"
	defaultSSEStreamKey   = "shared-sse-stream"
)

func ParseArgs() (Args, error) {
	// server config
	pflag.String("server-url", "0.0.0.0:8080", "")

	// listing config
	pflag.String("listing-file", "", "yaml/json/toml file describing the listing")
	pflag.String("listing-mode", "", "buy-now or auction, overrides the mode in listing file")
	pflag.Bool("strict-amounts", false, "reject amounts below the minimum instead of accepting them")
	pflag.Int64("bid-increment", 100, "")

	// session config
	pflag.String("session-cookie-key", "listing_session", "")
	pflag.Duration("session-max-age", time.Hour, "")
	pflag.Bool("session-cookie-secure", false, "")

	// s3 config
	pflag.String("s3-endpoint", "", "")
	pflag.String("s3-region", "", "")
	pflag.String("s3-bucket", "", "")
	pflag.String("s3-public-base-url", "", "")
	pflag.String("s3-access-key-id", "", "")
	pflag.String("s3-secret-access-key", "", "")
	pflag.Bool("s3-use-path-style", false, "")
	pflag.Duration("s3-presign-expires", 15*time.Minute, "")

	// redis config
	pflag.String("redis-addr", "", "")
	pflag.String("redis-password", "", "")
	pflag.Int("redis-db", 15, "")
	pflag.String("redis-key-prefix", defaultRedisKeyPrefix, "")

	// redis stream keys
	pflag.String("redis-stream-key-for-sse", defaultSSEStreamKey, "")

	// bind pflag to viper
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("UNCOMMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	props, err := models.LoadProps(viper.GetString("listing-file"))
	if err != nil {
		return Args{}, err
	}
	mode, err := props.ResolveMode(viper.GetString("listing-mode"))
	if err != nil {
		return Args{}, err
	}

	// initial arguments
	return Args{
		ServerURL: viper.GetString("server-url"),
		ServerConfig: api.ServerConfig{
			Listing: api.ListingConfig{
				Listing:       props.Listing,
				Mode:          mode,
				StrictAmounts: viper.GetBool("strict-amounts"),
				BidIncrement:  viper.GetInt64("bid-increment"),
			},
			Session: api.SessionConfig{
				KeyForCookie: viper.GetString("session-cookie-key"),
				CookieMaxAge: viper.GetDuration("session-max-age"),
				CookieSecure: viper.GetBool("session-cookie-secure"),
			},
			S3: api.S3Config{
				Endpoint:        viper.GetString("s3-endpoint"),
				Region:          viper.GetString("s3-region"),
				Bucket:          viper.GetString("s3-bucket"),
				PublicBaseURL:   viper.GetString("s3-public-base-url"),
				AccessKeyID:     viper.GetString("s3-access-key-id"),
				SecretAccessKey: viper.GetString("s3-secret-access-key"),
				UsePathStyle:    viper.GetBool("s3-use-path-style"),
				PresignExpires:  viper.GetDuration("s3-presign-expires"),
			},
			Redis: api.RedisConfig{
				Addr:      viper.GetString("redis-addr"),
				Password:  viper.GetString("redis-password"),
				DB:        viper.GetInt("redis-db"),
				KeyPrefix: viper.GetString("redis-key-prefix"),
				StreamKeys: api.RedisStreamKeys{
					SSE: viper.GetString("redis-stream-key-for-sse"),
				},
			},
		},
	}, nil
}

type Args struct {
	ServerURL    string
	ServerConfig api.ServerConfig
}

func (args Args) Validate() error {
	switch {
	case args.ServerURL == "":
		return fmt.Errorf("missing server-url")
	case args.ServerConfig.Listing.BidIncrement <= 0:
		return fmt.Errorf("bid-increment must be positive")
	case args.ServerConfig.Session.KeyForCookie == "":
		return fmt.Errorf("missing session-cookie-key")
	case args.ServerConfig.S3.Enabled() && args.ServerConfig.S3.Endpoint == "":
		return fmt.Errorf("s3-bucket requires s3-endpoint")
	case args.ServerConfig.Redis.Enabled() && args.ServerConfig.Redis.StreamKeys.SSE == "":
		return fmt.Errorf("redis-addr requires redis-stream-key-for-sse")
	}
	return nil
}

package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/env"
)

var SystemName = "Blitz Gen"
var ServiceName = env.String("SERVICE_NAME", "blitz-gen")
var InstanceId = uuid.New().String()[:8]
var ServerAddress = env.String("SERVER_ADDRESS", "http://localhost:3000")

var SessionSecret = uuid.New().String()

var DebugEnabled = strings.ToLower(os.Getenv("DEBUG")) == "true"
var DebugSQLEnabled = strings.ToLower(os.Getenv("DEBUG_SQL")) == "true"

// Provider credentials. A provider is attempted only when its key is present.
var RunwayAPIKey = os.Getenv("RUNWAY_API_KEY")
var RunwayBaseURL = env.String("RUNWAY_BASE_URL", "https://api.dev.runwayml.com")
var LumaAPIKey = os.Getenv("LUMA_API_KEY")
var LumaBaseURL = env.String("LUMA_BASE_URL", "https://api.lumalabs.ai")
var PikaAPIKey = os.Getenv("PIKA_API_KEY")
var PikaBaseURL = env.String("PIKA_BASE_URL", "https://api.pika.art")
var OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
var OpenAIBaseURL = env.String("OPENAI_BASE_URL", "https://api.openai.com")

// Poll cadence for the async-job providers. Keep MaxPollAttempts*PollInterval
// below the host's hard request limit when deploying on serverless platforms.
var MaxPollAttempts = env.Int("MAX_POLL_ATTEMPTS", 120)
var PollIntervalSeconds = env.Int("POLL_INTERVAL_SECONDS", 5)

// Optional wall-clock bound across a whole orchestration run, 0 disables it.
var RunBudgetSeconds = env.Int("RUN_BUDGET_SECONDS", 0)

// Outbound HTTP timeout in seconds for a single upstream call, 0 disables it.
var RelayTimeout = env.Int("RELAY_TIMEOUT", 0)

var RateLimitKeyExpirationDuration = 20 * time.Minute
var GlobalApiRateLimitEnable = env.Bool("GLOBAL_API_RATE_LIMIT_ENABLE", true)
var GlobalApiRateLimitNum = env.Int("GLOBAL_API_RATE_LIMIT", 180)
var GlobalApiRateLimitDuration int64 = 3 * 60

// Shared secret for verifying dashboard JWTs issued by the hosted auth
// platform. Auth is skipped entirely when unset.
var AuthSecret = os.Getenv("AUTH_SECRET")

// Comma-separated dashboard origins allowed by CORS. Empty allows any origin,
// which is what local development wants.
var CORSAllowOrigins = strings.FieldsFunc(os.Getenv("CORS_ALLOW_ORIGINS"), func(r rune) bool {
	return r == ',' || r == ' '
})

// Optional S3-compatible mirror for generated assets (Cloudflare R2).
var R2BucketName = os.Getenv("R2_BUCKET_NAME")
var R2AccessKey = os.Getenv("R2_ACCESS_KEY")
var R2SecretKey = os.Getenv("R2_SECRET_KEY")
var R2Endpoint = os.Getenv("R2_ENDPOINT")
var R2PublicUrl = os.Getenv("R2_PUBLIC_URL")

var OnlyOneLogFile = env.Bool("ONLY_ONE_LOG_FILE", false)

var SQLitePath = env.String("SQLITE_PATH", "blitz-gen.db")
var SQLMaxIdleConns = env.Int("SQL_MAX_IDLE_CONNS", 100)
var SQLMaxOpenConns = env.Int("SQL_MAX_OPEN_CONNS", 1000)
var SQLMaxLifetime = env.Int("SQL_MAX_LIFETIME", 60)

type startupSettings struct {
	RunwayBaseURL   string `validate:"url"`
	LumaBaseURL     string `validate:"url"`
	PikaBaseURL     string `validate:"url"`
	OpenAIBaseURL   string `validate:"url"`
	MaxPollAttempts int    `validate:"gte=1"`
	PollInterval    int    `validate:"gte=1"`
}

// Validate catches obviously broken env overrides before the server starts
// taking traffic.
func Validate() error {
	v := validator.New()
	return v.Struct(startupSettings{
		RunwayBaseURL:   RunwayBaseURL,
		LumaBaseURL:     LumaBaseURL,
		PikaBaseURL:     PikaBaseURL,
		OpenAIBaseURL:   OpenAIBaseURL,
		MaxPollAttempts: MaxPollAttempts,
		PollInterval:    PollIntervalSeconds,
	})
}

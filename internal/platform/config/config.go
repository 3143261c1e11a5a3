package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures console configuration read once at startup.
type Server struct {
	Addr string

	// GatewayBaseURL is the upstream backend gateway that owns persistence
	// and validation. When empty the console runs against the legacy
	// in-memory backends.
	GatewayBaseURL string
	// GatewayToken is the default bearer token for outgoing gateway calls.
	// Per-session tokens stored at login take precedence.
	GatewayToken   string
	GatewayTimeout time.Duration

	// MediaResolverURL is the lookup service turning storage keys into
	// display URLs.
	MediaResolverURL string

	JWTSigningKey string
	TokenTTL      time.Duration

	// RedisAddr enables the Redis-backed operator session store when set;
	// otherwise sessions live in memory.
	RedisAddr     string
	RedisPassword string

	// OperatorUsername/OperatorPassword seed the single dev operator account.
	OperatorUsername string
	OperatorPassword string

	// CORSOrigins lists allowed browser origins for the console UI.
	CORSOrigins []string

	Environment string
}

var defaultTokenTTL = 15 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
// A local .env file is loaded first when present.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("KYCDESK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	tokenTTL := defaultTokenTTL
	if s := os.Getenv("TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			tokenTTL = d
		}
	}

	gatewayTimeout := 10 * time.Second
	if s := os.Getenv("GATEWAY_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			gatewayTimeout = d
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	operatorUsername := os.Getenv("OPERATOR_USERNAME")
	if operatorUsername == "" {
		operatorUsername = "operator"
	}
	operatorPassword := os.Getenv("OPERATOR_PASSWORD")
	if operatorPassword == "" {
		operatorPassword = "operator-dev-password"
	}

	var origins []string
	if s := os.Getenv("CORS_ORIGINS"); s != "" {
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	} else {
		origins = []string{"http://localhost:*"}
	}

	env := os.Getenv("KYCDESK_ENV")
	if env == "" {
		env = "dev"
	}

	return Server{
		Addr:             addr,
		GatewayBaseURL:   strings.TrimRight(os.Getenv("GATEWAY_BASE_URL"), "/"),
		GatewayToken:     os.Getenv("GATEWAY_TOKEN"),
		GatewayTimeout:   gatewayTimeout,
		MediaResolverURL: strings.TrimRight(os.Getenv("MEDIA_RESOLVER_URL"), "/"),
		JWTSigningKey:    jwtSigningKey,
		TokenTTL:         tokenTTL,
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		OperatorUsername: operatorUsername,
		OperatorPassword: operatorPassword,
		CORSOrigins:      origins,
		Environment:      env,
	}
}

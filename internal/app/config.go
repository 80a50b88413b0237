package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/eliteemart/storefront/internal/content"
)

// Config holds the complete application configuration, loadable from
// environment variables (STOREFRONT_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL  string `usage:"PostgreSQL connection URL (STOREFRONT_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	ImageBaseURL string `default:"" usage:"Base URL for product images (e.g. https://cdn.example.com/images)" flag:"image-base-url"`
	APIKeyPepper string `usage:"HMAC pepper for API key hashing (STOREFRONT_API_KEY_PEPPER)" flag:"api-key-pepper"`
	Cart         CartConfig
	Checkout     CheckoutConfig
	Auth         AuthConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// CartConfig controls session cart behavior.
type CartConfig struct {
	TTL             time.Duration `default:"30m" usage:"Idle time before a session cart is evicted" flag:"cart-ttl"`
	CleanupInterval time.Duration `default:"5m"  usage:"How often expired session carts are swept" flag:"cart-cleanup-interval"`
	PlaceholderURL  string        `default:"/images/placeholder.png" usage:"Image shown for cart rows without a product image" flag:"cart-placeholder-url"`
}

// CheckoutConfig controls order submission.
type CheckoutConfig struct {
	OrderEndpoint string `default:"http://localhost:8080/api/createOrder" usage:"Order-creation endpoint URL" flag:"order-endpoint"`
	OrderAPIKey   string `usage:"API key sent with order submissions (STOREFRONT_CHECKOUT_ORDER_API_KEY)" flag:"order-api-key"`
	RedirectURL   string `default:"/ordercompleted" usage:"Page the user lands on after a successful checkout" flag:"checkout-redirect-url"`
}

// AuthConfig is the hosted identity-provider tenant exposed to the UI.
type AuthConfig struct {
	Domain   string `default:"dev-izvhwekqmawhub10.us.auth0.com" usage:"Identity provider domain" flag:"auth-domain"`
	ClientID string `default:"1bxKUGVUpyngDcrwcKLjWk9eIH1n6udn" usage:"Identity provider client ID" flag:"auth-client-id"`
}

// Settings converts the config into the content form served to the UI.
func (c AuthConfig) Settings() content.AuthSettings {
	return content.AuthSettings{
		Domain:   c.Domain,
		ClientID: c.ClientID,
	}
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		Files:     []string{"config.yaml", "/etc/storefront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set STOREFRONT_DATABASE_URL or DATABASE_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's STOREFRONT_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}

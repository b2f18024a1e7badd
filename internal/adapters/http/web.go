package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/email"
	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/http/middleware"
	accountStore "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/storage/account"
	contentStore "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/storage/content"
	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore accountStore.Store
	ContentStore contentStore.Store
}

// loadCSRFKey reads the CSRF secret from KAHUA_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("KAHUA_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("KAHUA_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("KAHUA_ENV") == "production" {
		log.Fatal("KAHUA_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set KAHUA_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global library instance: the in-memory chapter list, loaded once at
// startup and read-only thereafter (set by NewMux)
var library *content.Library

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// baseURL is the external URL of this deployment, used in invitation links.
var baseURL = "http://localhost:8080"

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// SetBaseURL sets the external URL used when composing invitation links.
func SetBaseURL(u string) {
	baseURL = u
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, lib *content.Library) http.Handler {
	stores = s
	library = lib
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("KAHUA_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}

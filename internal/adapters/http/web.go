package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/http/middleware"
	"campusevents/internal/adapters/http/perf"
	eventStore "campusevents/internal/adapters/storage/event"
	registrationStore "campusevents/internal/adapters/storage/registration"
	studentStore "campusevents/internal/adapters/storage/student"
	"campusevents/internal/adapters/uploads"
	"campusevents/internal/domain/identity"
)

// Stores holds all storage dependencies.
type Stores struct {
	StudentStore      studentStore.Store
	EventStore        eventStore.Store
	RegistrationStore registrationStore.Store
}

// loadCSRFKey reads the CSRF secret from CAMPUS_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CAMPUS_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CAMPUS_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CAMPUS_ENV") == "production" {
		log.Fatal("CAMPUS_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set CAMPUS_CSRF_KEY for production.")
	return key
}

// trustedOrigins returns the origins CSRF accepts form posts from.
// CAMPUS_TRUSTED_ORIGINS is a comma-separated host list.
func trustedOrigins() []string {
	if v := os.Getenv("CAMPUS_TRUSTED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{"localhost:8080", "127.0.0.1:8080"}
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Admin credential built from env (set by NewMux)
var adminCredential identity.AdminCredential

// Poster upload store (set by NewMux)
var posterStore *uploads.LocalStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
// A nil sender disables registration decision notifications.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, admin identity.AdminCredential, posters *uploads.LocalStore, collector *perf.Collector) http.Handler {
	stores = s
	adminCredential = admin
	posterStore = posters
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CAMPUS_ENV") == "production"

	mux := http.NewServeMux()
	if posters != nil {
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(posters.Dir()))))
	}
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, trustedOrigins()),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

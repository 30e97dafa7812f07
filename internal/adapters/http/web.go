package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"khatamflow/internal/adapters/email"
	"khatamflow/internal/adapters/http/middleware"
	"khatamflow/internal/adapters/http/perf"
	"khatamflow/internal/adapters/notify"
	goalStore "khatamflow/internal/adapters/storage/goal"
	milestoneStore "khatamflow/internal/adapters/storage/milestone"
	progressStore "khatamflow/internal/adapters/storage/progress"
	settingsStore "khatamflow/internal/adapters/storage/settings"
)

// Stores holds all storage dependencies.
type Stores struct {
	GoalStore      goalStore.Store
	LogStore       progressStore.LogStore
	SummaryStore   progressStore.SummaryStore
	TargetStore    progressStore.TargetStore
	SettingsStore  settingsStore.Store
	MilestoneStore milestoneStore.Store
}

// loadCSRFKey reads the CSRF secret from KHATAM_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("KHATAM_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("KHATAM_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("KHATAM_ENV") == "production" {
		log.Fatal("KHATAM_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set KHATAM_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global milestone notifier (set by SetEmailSender; nil means silent)
var notifier notify.Notifier

// SetEmailSender wires milestone notifications through the given sender.
func SetEmailSender(sender email.Sender) {
	if stores == nil {
		log.Fatal("SetEmailSender must be called after NewMux")
	}
	notifier = notify.NewEmailNotifier(sender, stores.SettingsStore)
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("KHATAM_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

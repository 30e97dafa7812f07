package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "khatamflow/internal/adapters/email"
	web "khatamflow/internal/adapters/http"
	"khatamflow/internal/adapters/http/perf"
	"khatamflow/internal/adapters/storage"
	goalStore "khatamflow/internal/adapters/storage/goal"
	milestoneStore "khatamflow/internal/adapters/storage/milestone"
	progressStore "khatamflow/internal/adapters/storage/progress"
	settingsStore "khatamflow/internal/adapters/storage/settings"
	"khatamflow/internal/domain/access"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys, and busy timeout for a single-writer app
	dbPath := envOrDefault("KHATAM_DB", "khatamflow.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	settings := settingsStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		GoalStore:      goalStore.NewSQLiteStore(timedDB),
		LogStore:       progressStore.NewLogSQLiteStore(timedDB),
		SummaryStore:   progressStore.NewSummarySQLiteStore(timedDB),
		TargetStore:    progressStore.NewTargetSQLiteStore(timedDB),
		SettingsStore:  settings,
		MilestoneStore: milestoneStore.NewSQLiteStore(timedDB),
	}

	// Optional access passphrase: hashed into settings at startup.
	// Without one the app runs open, suitable for a trusted home network.
	if passphrase := os.Getenv("KHATAM_ACCESS_PASSPHRASE"); passphrase != "" {
		hash, err := access.HashPassphrase(passphrase)
		if err != nil {
			log.Fatalf("invalid KHATAM_ACCESS_PASSPHRASE: %v", err)
		}
		if err := settings.Put(context.Background(), access.HashKey, hash); err != nil {
			log.Fatalf("failed to store passphrase hash: %v", err)
		}
		log.Println("Access passphrase configured")
	} else {
		log.Println("No access passphrase set — app is open (set KHATAM_ACCESS_PASSPHRASE to require login)")
	}

	// Create HTTP handler with middleware (pass collector for timing + stats)
	mux := web.NewMux("static", stores, collector)

	// Configure email sender for milestone notifications
	resendKey := os.Getenv("KHATAM_RESEND_KEY")
	emailFrom := envOrDefault("KHATAM_RESEND_FROM", "KhatamFlow <noreply@khatamflow.app>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("KHATAM_ENV") == "production" {
			log.Println("WARNING: KHATAM_RESEND_KEY is not set — milestone emails are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set KHATAM_RESEND_KEY for real delivery)")
		}
	}

	addr := envOrDefault("KHATAM_ADDR", ":8080")
	log.Printf("KhatamFlow %s starting on %s (env=%s)", version, addr, envOrDefault("KHATAM_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

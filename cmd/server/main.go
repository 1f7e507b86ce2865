package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "campusevents/internal/adapters/email"
	web "campusevents/internal/adapters/http"
	"campusevents/internal/adapters/http/perf"
	"campusevents/internal/adapters/storage"
	eventStore "campusevents/internal/adapters/storage/event"
	registrationStore "campusevents/internal/adapters/storage/registration"
	studentStore "campusevents/internal/adapters/storage/student"
	"campusevents/internal/adapters/uploads"
	"campusevents/internal/domain/identity"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; env vars win over file values.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CAMPUS_DB_PATH", "campusevents.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	stores := &web.Stores{
		StudentStore:      studentStore.NewSQLiteStore(timedDB),
		EventStore:        eventStore.NewSQLiteStore(timedDB),
		RegistrationStore: registrationStore.NewSQLiteStore(timedDB),
	}

	// The admin credential lives in the environment, never in the database.
	adminEmail := envOrDefault("CAMPUS_ADMIN_EMAIL", "admin@campusevents.edu")
	adminPassword := os.Getenv("CAMPUS_ADMIN_PASSWORD")
	if adminPassword == "" {
		if os.Getenv("CAMPUS_ENV") == "production" {
			log.Fatal("CAMPUS_ADMIN_PASSWORD is required in production")
		}
		adminPassword = "change me soon"
		log.Println("WARNING: CAMPUS_ADMIN_PASSWORD not set, using a development default")
	}
	admin, err := identity.NewAdminCredential(adminEmail, adminPassword)
	if err != nil {
		log.Fatalf("failed to build admin credential: %v", err)
	}

	// Poster uploads on local disk
	posters, err := uploads.NewLocalStore(envOrDefault("CAMPUS_UPLOADS_DIR", "uploads"))
	if err != nil {
		log.Fatalf("failed to prepare uploads dir: %v", err)
	}

	// Email sender for registration decisions
	resendKey := os.Getenv("CAMPUS_RESEND_KEY")
	emailFrom := envOrDefault("CAMPUS_EMAIL_FROM", "Campus Events <noreply@campusevents.edu>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("CAMPUS_ENV") == "production" {
			log.Println("WARNING: CAMPUS_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CAMPUS_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(stores, admin, posters, collector)

	addr := envOrDefault("CAMPUS_ADDR", ":8080")
	log.Printf("Campus Events %s starting on %s (env=%s)", version, addr, envOrDefault("CAMPUS_ENV", "development"))

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

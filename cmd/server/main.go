package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/bundle"
	emailPkg "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/email"
	web "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/http"
	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/storage"
	accountStore "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/storage/account"
	contentStore "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/storage/content"
	"github.com/nakawebsvcs/kahuawaiwai/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("KAHUA_DB_PATH", "kahuawaiwai.db")
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

	log.Println("Database initialized successfully!")

	acctStore := accountStore.NewSQLiteStore(db)
	chapterStore := contentStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore: acctStore,
		ContentStore: chapterStore,
	}

	// Load the embedded chapter bundle and sync it into the database,
	// then build the in-memory library the handlers read from.
	chapters, err := bundle.Load()
	if err != nil {
		log.Fatalf("failed to load content bundle: %v", err)
	}
	seedDeps := orchestrators.SeedContentDeps{ContentStore: chapterStore}
	if err := orchestrators.ExecuteSeedContent(context.Background(), seedDeps, chapters); err != nil {
		log.Fatalf("failed to seed content: %v", err)
	}
	library, err := orchestrators.LoadLibrary(context.Background(), seedDeps)
	if err != nil {
		log.Fatalf("failed to load library: %v", err)
	}
	log.Printf("Content loaded: %d chapters", library.Len())

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("KAHUA_ADMIN_EMAIL", "admin@kahuawaiwai.example")
	adminPassword := os.Getenv("KAHUA_ADMIN_PASSWORD")
	if adminPassword != "" {
		adminDeps := orchestrators.CreateUserDeps{AccountStore: acctStore}
		if err := orchestrators.ExecuteSeedAdmin(context.Background(), adminDeps, adminEmail, adminPassword); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
	}

	// Configure email sender for invitations
	resendKey := os.Getenv("KAHUA_RESEND_KEY")
	emailFrom := envOrDefault("KAHUA_RESEND_FROM", "Kahua Waiwai <noreply@kahuawaiwai.example>")
	emailReply := envOrDefault("KAHUA_REPLY_TO", "info@kahuawaiwai.example")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("KAHUA_ENV") == "production" {
			log.Println("WARNING: KAHUA_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set KAHUA_RESEND_KEY for real delivery)")
		}
	}
	web.SetBaseURL(envOrDefault("KAHUA_BASE_URL", "http://localhost:8080"))

	mux := web.NewMux("internal/adapters/http/static", stores, library)

	addr := envOrDefault("KAHUA_ADDR", ":8080")
	log.Printf("Kahua Waiwai %s starting on %s (env=%s)", version, addr, envOrDefault("KAHUA_ENV", "development"))

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

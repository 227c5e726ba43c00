package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm/auth"
	"github.com/crmkit/go-crm/internal/config"
	"github.com/crmkit/go-crm/internal/db"
	"github.com/crmkit/go-crm/internal/models"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run migrations and seed the default admin, then exit")
)

// simple middleware chain
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Driver == "postgres" {
		return gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
}

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	dbConn, err := open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if cfg.App.Migrations || *migrateOnlyFlag || *seedOnlyFlag {
		if err := db.Migrate(dbConn); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if *migrateOnlyFlag {
		log.Println("migrations completed; exiting as requested")
		return
	}
	if err := db.Seed(dbConn); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	if *seedOnlyFlag {
		log.Println("seed completed; exiting as requested")
		return
	}

	// Sessions pointing at deleted users get dropped by the middleware.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		if err := dbConn.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(NewApp(dbConn, cfg)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s (driver=%s)", srv.Addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"catalog-api-server/internal/config"
	"catalog-api-server/internal/handler"
	"catalog-api-server/internal/repository"
	"catalog-api-server/internal/service"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	requestLog := openRequestLog(cfg.Logging.RequestLogFile)

	var (
		productRepo repository.ProductStore
		postRepo    repository.PostStore
		userRepo    repository.UserRepository
	)

	switch cfg.Storage.Backend {
	case config.StorageCouch:
		couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
		)

		client, err := kivik.New("couch", couchURL)
		if err != nil {
			log.Fatalf("Failed to connect to CouchDB: %v", err)
		}

		exists, err := client.DBExists(context.Background(), cfg.Database.Name)
		if err != nil {
			log.Fatalf("Failed to check database existence: %v", err)
		}

		if !exists {
			if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
				log.Fatalf("Failed to create database: %v", err)
			}
			log.Printf("Created database: %s", cfg.Database.Name)
		}

		productRepo = repository.NewCouchProductRepository(client, cfg.Database.Name)
		postRepo = repository.NewCouchPostRepository(client, cfg.Database.Name)
		userRepo = repository.NewCouchUserRepository(client, cfg.Database.Name)

		log.Printf("Using CouchDB storage at %s:%s", cfg.Database.Host, cfg.Database.Port)
	default:
		productRepo = repository.NewMemoryProductRepository()
		postRepo = repository.NewMemoryPostRepository()
		userRepo = repository.NewMemoryUserRepository()

		log.Printf("Using in-memory storage")
	}

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshTokenExpiration)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	postService := service.NewPostService(postRepo)

	if err := userService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Auth:       handler.NewAuthHandler(authService, userService),
		Products:   handler.NewProductResource(productService),
		Posts:      handler.NewPostResource(postService),
		Resolver:   authService,
		RequestLog: requestLog,
		CORS:       cfg.CORS,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting Catalog API Server on %s (env: %s)", addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

// openRequestLog opens the access log destination. Failures fall back to
// stderr so a bad log path never takes requests down with it.
func openRequestLog(path string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("Request log directory unavailable, logging requests to stderr: %v", err)
		return log.New(os.Stderr, "", log.LstdFlags)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Request log file unavailable, logging requests to stderr: %v", err)
		return log.New(os.Stderr, "", log.LstdFlags)
	}

	return log.New(f, "", log.LstdFlags)
}

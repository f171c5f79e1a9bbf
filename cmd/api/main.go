package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/arborhaus/arbor-backend/internal/modules/auth"
	"github.com/arborhaus/arbor-backend/internal/modules/cart"
	"github.com/arborhaus/arbor-backend/internal/modules/catalog"
	"github.com/arborhaus/arbor-backend/internal/modules/checkout"
	"github.com/arborhaus/arbor-backend/internal/modules/company"
	"github.com/arborhaus/arbor-backend/internal/modules/filestore"
	"github.com/arborhaus/arbor-backend/internal/modules/gallery"
	"github.com/arborhaus/arbor-backend/internal/modules/mail"
	"github.com/arborhaus/arbor-backend/internal/modules/order"
	"github.com/arborhaus/arbor-backend/internal/modules/payment"
	"github.com/arborhaus/arbor-backend/internal/modules/social"
	"github.com/arborhaus/arbor-backend/internal/modules/user"
	"github.com/arborhaus/arbor-backend/internal/platform/config"
	"github.com/arborhaus/arbor-backend/internal/platform/logger"
	"github.com/arborhaus/arbor-backend/internal/platform/metrics"
	"github.com/arborhaus/arbor-backend/internal/platform/migrations"
	"github.com/arborhaus/arbor-backend/internal/platform/ratelimit"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		zlog.Fatal("ping database", zap.Error(err))
	}
	if err := migrations.Apply(db); err != nil {
		zlog.Fatal("apply migrations", zap.Error(err))
	}
	zlog.Info("database ready")

	files, err := filestore.NewDiskStore(cfg.UploadDir)
	if err != nil {
		zlog.Fatal("init file store", zap.Error(err))
	}
	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From,
		cfg.SMTP.Username, cfg.SMTP.Password)
	gateway := payment.NewCardGateway(cfg.Payment.APIKey, cfg.Payment.Env)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(logger.RequestLogger(zlog))
	router.Use(metrics.Middleware)

	requireAuth := auth.Require(cfg.JWTSecret)
	loginLimit := ratelimit.New(1, 5).Middleware

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, mailer, zlog)
	user.NewHandler(userService).RegisterRoutes(router, requireAuth)

	authService := auth.NewService(userService, cfg.JWTSecret)
	auth.NewHandler(authService).RegisterRoutes(router, loginLimit)

	companyRepo := company.NewPostgresRepository(db)
	companyService := company.NewService(companyRepo)
	company.NewHandler(companyService).RegisterRoutes(router, requireAuth)

	// ── Catalog & Cart ──────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router, requireAuth)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo)
	cart.NewHandler(cartService).RegisterRoutes(router, requireAuth)

	// ── Orders & Checkout ───────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router, requireAuth)

	checkoutService := checkout.NewService(cartService, orderService, gateway, mailer, zlog)
	checkout.NewHandler(checkoutService).RegisterRoutes(router, requireAuth)

	// ── Community ───────────────────────────────────────────
	galleryRepo := gallery.NewPostgresRepository(db)
	galleryService := gallery.NewService(galleryRepo, files, zlog)
	gallery.NewHandler(galleryService).RegisterRoutes(router, requireAuth)

	socialRepo := social.NewPostgresRepository(db)
	socialService := social.NewService(socialRepo)
	social.NewHandler(socialService).RegisterRoutes(router, requireAuth)

	filestore.NewHandler(files).RegisterRoutes(router)

	// ── Operations ──────────────────────────────────────────
	router.Handle("/metrics", metrics.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	zlog.Info("listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

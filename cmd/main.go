package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"workspaces-backend/internal/config"
	"workspaces-backend/internal/features/audit_logs"
	system_healthcheck "workspaces-backend/internal/features/system/healthcheck"
	users_middleware "workspaces-backend/internal/features/users/middleware"
	users_models "workspaces-backend/internal/features/users/models"
	users_services "workspaces-backend/internal/features/users/services"
	workspaces_controllers "workspaces-backend/internal/features/workspaces/controllers"
	workspaces_repositories "workspaces-backend/internal/features/workspaces/repositories"
	workspaces_services "workspaces-backend/internal/features/workspaces/services"
	env_utils "workspaces-backend/internal/util/env"
	files_utils "workspaces-backend/internal/util/files"
	"workspaces-backend/internal/util/logger"
	tls_utils "workspaces-backend/internal/util/tls"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Workspaces Backend API
// @version 1.0
// @description API for workspaces with hosted images and members

// @host localhost:4010
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	handleIssueToken(log)

	cfg := config.GetEnv()

	err := files_utils.EnsureDirectories([]string{
		cfg.TempFolder,
		cfg.ImageFolder,
	})
	if err != nil {
		log.Error("Failed to ensure directories", "error", err)
		os.Exit(1)
	}

	seedDemoData(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	// images are already compressed
	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedExtensions(
			[]string{".png", ".jpeg", ".jpg", ".webp", ".gif", ".ico", ".svg"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	backgroundCtx, cancelBackground := context.WithCancel(context.Background())
	runBackgroundTasks(backgroundCtx, log)

	startServerWithGracefulShutdown(log, ginApp, cancelBackground)
}

// handleIssueToken prints a signed access token and exits when started with
// -issue-token. There is no sign-in flow, so this is how tokens are obtained.
func handleIssueToken(log *slog.Logger) {
	issueToken := flag.Bool("issue-token", false, "Print an access token and exit")
	userIDStr := flag.String("user-id", "", "User ID for the token, random when empty")
	name := flag.String("name", "", "Display name stored in the token")

	flag.Parse()

	if !*issueToken {
		return
	}

	userID := uuid.New()
	if *userIDStr != "" {
		parsedUserID, err := uuid.Parse(*userIDStr)
		if err != nil {
			log.Error("Invalid user ID", "userId", *userIDStr, "error", err)
			os.Exit(1)
		}
		userID = parsedUserID
	}

	response, err := users_services.GetTokenService().GenerateAccessToken(
		&users_models.User{ID: userID, Name: *name},
	)
	if err != nil {
		log.Error("Failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(response.Token)
	os.Exit(0)
}

func seedDemoData(log *slog.Logger) {
	if !config.GetEnv().SeedDemoData {
		return
	}

	demoWorkspaces := workspaces_repositories.GetDemoWorkspaces(time.Now().UTC())

	err := workspaces_services.GetWorkspaceRepository().SeedWorkspaces(demoWorkspaces...)
	if err != nil {
		log.Error("Failed to seed demo workspaces", "error", err)
		os.Exit(1)
	}

	log.Info(
		"Demo workspaces seeded",
		"count", len(demoWorkspaces),
		"demoUserId", workspaces_repositories.DemoUserID,
	)
}

func startServerWithGracefulShutdown(
	log *slog.Logger,
	app *gin.Engine,
	cancelBackground context.CancelFunc,
) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// localhost avoids firewall prompts on each dev run
		host = "127.0.0.1"
	}

	cfg := config.GetEnv()
	var srv *http.Server
	var httpRedirectSrv *http.Server

	if cfg.EnableHTTPS && cfg.EnvMode == env_utils.EnvModeProduction {
		certManager := tls_utils.NewCertificateManager(cfg.CertsDir)
		certPath, keyPath, err := certManager.EnsureCertificates()
		if err != nil {
			log.Error("Failed to setup TLS certificates", "error", err)
			os.Exit(1)
		}
		log.Info("TLS certificates ready", "certPath", certPath, "keyPath", keyPath)

		srv = &http.Server{
			Addr:              host + ":" + cfg.HTTPSPort,
			Handler:           app,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			log.Info("Starting HTTPS server", "addr", srv.Addr)
			if err := srv.ListenAndServeTLS(certPath, keyPath); err != nil &&
				err != http.ErrServerClosed {
				log.Error("HTTPS listen error", "error", err)
			}
		}()

		httpRedirectSrv = &http.Server{
			Addr:              host + ":" + cfg.HTTPPort,
			ReadHeaderTimeout: 10 * time.Second,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				target := "https://" + r.Host + r.URL.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusMovedPermanently)
			}),
		}

		go func() {
			log.Info("Starting HTTP redirect server", "addr", httpRedirectSrv.Addr)
			if err := httpRedirectSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("HTTP redirect listen error", "error", err)
			}
		}()

		log.Info("Workspaces backend is running with HTTPS", "port", cfg.HTTPSPort)
	} else {
		srv = &http.Server{
			Addr:              host + ":" + cfg.HTTPPort,
			Handler:           app,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			log.Info("Starting HTTP server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("HTTP listen error", "error", err)
			}
		}()

		log.Info("Workspaces backend is running", "http", "http://localhost:"+cfg.HTTPPort)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	cancelBackground()

	// in-flight requests get 10 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if httpRedirectSrv != nil {
		if err := httpRedirectSrv.Shutdown(ctx); err != nil {
			log.Error("HTTP redirect server forced to shutdown", "error", err)
		}
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	cfg := config.GetEnv()

	if cfg.ImageStorageType == config.ImageStorageLocal {
		r.Static("/images", cfg.ImageFolder)
	}

	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// only the healthcheck is public
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	authMiddleware := users_middleware.AuthMiddleware(users_services.GetTokenService())

	protected := v1.Group("")
	protected.Use(authMiddleware)

	workspaces_controllers.GetWorkspaceController().RegisterRoutes(protected)
	workspaces_controllers.GetMembershipController().RegisterRoutes(protected)
}

func runBackgroundTasks(ctx context.Context, log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	err := files_utils.CleanFolder(config.GetEnv().TempFolder)
	if err != nil {
		log.Error("Failed to clean temp folder", "error", err)
	}

	go runWithPanicLogging(log, "audit log background service", func() {
		audit_logs.GetAuditLogBackgroundService().Run(ctx)
	})
}

func runWithPanicLogging(log *slog.Logger, serviceName string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic in "+serviceName, "error", r)
		}
	}()
	fn()
}

// Docs are generated into Go files, so changes show up after the next
// restart only.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode != env_utils.EnvModeDevelopment {
		return
	}

	ginApp.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"Accept",
			"Accept-Language",
			"Accept-Encoding",
		},
		AllowCredentials: true,
	}))
}

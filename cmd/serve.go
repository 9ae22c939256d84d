package cmd

import (
	"database/sql"
	"io"
	"net"
	"os"

	"ledger/app/controller"
	"ledger/app/middleware"
	"ledger/app/password"
	"ledger/app/repository"
	"ledger/app/service"
	"ledger/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server exposing authentication, user and transfer endpoints.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}
	logrus.Info("Connected to database")

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	transferRepo := repository.NewTransferRepository(db)

	hasher := password.NewHasher(password.DefaultParams())
	authService := service.NewAuthService(userRepo, refreshRepo, hasher, cfg)
	ledgerService := service.NewLedgerService(db, transferRepo, userRepo)
	userService := service.NewUserService(userRepo)

	startHTTPServer(cfg, authService, ledgerService, userService)
}

func configureLogging(cfg *config.Config) error {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if cfg.LogFile == "" {
		logrus.SetOutput(os.Stdout)
		return nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, file))
	return nil
}

func startHTTPServer(cfg *config.Config, authService *service.AuthService, ledgerService *service.LedgerService, userService *service.UserService) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("10K"))

	authController := controller.NewAuthController(authService)
	transferController := controller.NewTransferController(ledgerService)
	userController := controller.NewUserController(userService, ledgerService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.RefreshToken)

	users := v1.Group("/users")
	users.Use(authMiddleware.RequireAuth)
	users.GET("/me", userController.Me)
	users.PUT("/update", userController.Update)
	users.POST("/deposit", userController.Deposit)

	tx := v1.Group("/tx")
	tx.Use(authMiddleware.RequireAuth)
	tx.POST("/transfer", transferController.CreateTransfer)
	tx.GET("/get_tx/:id", transferController.GetTransfer)
	tx.GET("/list_txs", transferController.ListTransfers)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

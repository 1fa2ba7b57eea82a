package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-orders/internal/orders/adapters"
	"go-orders/internal/orders/application"
	"go-orders/internal/orders/infrastructure"
	"go-orders/internal/orders/ports"
	"go-orders/pkg/config"
	"go-orders/pkg/db"
	"go-orders/pkg/events"
	"go-orders/pkg/logger"
	"go-orders/pkg/middleware"
	"go-orders/pkg/natsrpc"
	"go-orders/pkg/rabbitmq"
	tlspkg "go-orders/pkg/tls"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("starting orders service")

	// Connect to database
	dbConn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Timeout:  cfg.DBTimeout,
	})
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}
	log.Info("connected to database")

	// Initialize repository and run migrations
	repo := adapters.NewPostgresOrderRepository(dbConn)
	if err := repo.Migrate(); err != nil {
		log.Fatal("failed to migrate database: " + err.Error())
	}

	// Connect to NATS
	var tlsConfig *tls.Config
	if cfg.NATSTLSEnabled {
		tlsConfig, err = tlspkg.ClientConfig(cfg.TLSCertFile, cfg.TLSKeyFile, cfg.TLSCAFile)
		if err != nil {
			log.Fatal("failed to load TLS config: " + err.Error())
		}
	}

	natsConn, err := natsrpc.Connect(cfg.NATSServers, cfg.ServiceName, tlsConfig, log)
	if err != nil {
		log.Fatal("failed to connect to NATS: " + err.Error())
	}
	defer natsConn.Close()
	log.Info("connected to NATS")

	// Product directory client
	productClient := adapters.NewNATSProductClient(natsrpc.NewClient(natsConn, cfg.ProductTimeout))

	// Connect to RabbitMQ
	var publisher ports.EventPublisher
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
	} else {
		defer rabbitConn.Close()

		pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log)
		if err != nil {
			log.Warn("failed to create publisher: " + err.Error())
		} else {
			publisher = adapters.NewRabbitMQPublisher(pub, log)
		}
	}

	// Initialize use case
	useCase := application.NewOrderUseCase(repo, productClient, publisher, log)

	// Register RPC handlers
	server := natsrpc.NewServer(natsConn, cfg.NATSQueue, cfg.RPCTimeout, log)
	if err := infrastructure.NewRPCHandler(useCase).Register(server); err != nil {
		log.Fatal("failed to register RPC handlers: " + err.Error())
	}
	log.Info("rpc handlers registered")

	// Start ops HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		sqlDB, err := dbConn.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil || !natsConn.IsConnected() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("ops HTTP server listening on :" + cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Drain(); err != nil {
		log.Error("failed to drain subscriptions: " + err.Error())
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}

	log.Info("service stopped")
}

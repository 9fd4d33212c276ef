package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	api "github.com/rpupo63/bilingual-portfolio-backend/api"
	"github.com/rpupo63/bilingual-portfolio-backend/auth"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/config"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/metrics"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
	"github.com/rpupo63/bilingual-portfolio-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file, then Parameter Store overrides
	c := config.Load()
	if prefix := config.GetString(c, config.SSMParameterPathKey, ""); prefix != "" {
		ssmClient, err := config.NewSSMClient(context.Background(), config.GetString(c, "AWS_REGION", ""))
		if err != nil {
			fmt.Printf("Error creating SSM client: %v\n", err)
			os.Exit(1)
		}
		n, err := config.MergeSSM(context.Background(), ssmClient, prefix, c)
		if err != nil {
			fmt.Printf("Error loading SSM parameters: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d parameters from %s\n", n, prefix)
	}

	setupLogging(c)

	db, err := database.Connect(c)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	currentDB := database.New(db)
	if config.GetBool(c, "AUTO_MIGRATE", false) {
		fmt.Println("Migrating schema...")
		if err := currentDB.Migrate(); err != nil {
			fmt.Printf("Error migrating schema: %v\n", err)
			os.Exit(1)
		}
	}

	metrics.MustRegister()

	contentCache, stopCache, err := openCache(c)
	if err != nil {
		fmt.Printf("Error initializing cache: %v\n", err)
		os.Exit(1)
	}
	defer stopCache()

	opts := []services.Option{
		services.WithMaxUploadBytes(int64(config.GetInt(c, "MEDIA_MAX_UPLOAD_MB", 10)) * 1024 * 1024),
	}

	supabaseURL := strings.TrimRight(config.GetString(c, "SUPABASE_URL", ""), "/")
	if accessKey := config.GetString(c, "SUPABASE_S3_ACCESS_KEY_ID", ""); accessKey != "" {
		bucket, err := storage.NewBucket(context.Background(), storage.Config{
			Endpoint:        config.GetString(c, "SUPABASE_S3_ENDPOINT", supabaseURL+"/storage/v1/s3"),
			Region:          config.GetString(c, "SUPABASE_S3_REGION", ""),
			AccessKeyID:     accessKey,
			SecretAccessKey: config.GetString(c, "SUPABASE_S3_SECRET_ACCESS_KEY", ""),
			Bucket:          config.GetString(c, "MEDIA_BUCKET", storage.DefaultBucket),
			PublicBaseURL:   supabaseURL,
		})
		if err != nil {
			fmt.Printf("Error initializing media storage: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, services.WithObjectStore(bucket))
	} else {
		zlog.Warn().Msg("SUPABASE_S3_ACCESS_KEY_ID not set, media uploads are disabled")
	}

	if apiKey := config.GetString(c, "RESEND_API_KEY", ""); apiKey != "" {
		mailer := services.NewResendMailer(apiKey, config.GetString(c, "RESEND_FROM_EMAIL", "onboarding@resend.dev"), nil)
		opts = append(opts, services.WithMailer(mailer, config.GetString(c, "CONTACT_TO_EMAIL", "")))
	} else {
		zlog.Warn().Msg("RESEND_API_KEY not set, the contact form is disabled")
	}

	svc := services.New(currentDB, contentCache, opts...)

	provider := auth.NewSupabaseProvider(auth.SupabaseConfig{
		URL:       supabaseURL,
		AnonKey:   config.GetString(c, "SUPABASE_ANON_KEY", ""),
		JWTSecret: config.GetString(c, "SUPABASE_JWT_SECRET", ""),
	}, &http.Client{Timeout: 15 * time.Second})
	guard := auth.NewGuard(provider, currentDB.UserRoleRepo(), config.GetString(c, "ADMIN_ROLE", models.RoleAdmin))

	errChannel := make(chan error, 2)

	server, err := api.NewServer(api.Dependencies{
		Services: svc,
		Provider: provider,
		Guard:    guard,
		DB:       currentDB,
	}, c)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	contentCache.Wait()
}

// setupLogging points the global zerolog logger at the console and, when
// LOG_FILE is set, at a rotated log file
func setupLogging(c map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if file := config.GetString(c, "LOG_FILE", ""); file != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    config.GetInt(c, "LOG_MAX_SIZE_MB", 100),
			MaxBackups: config.GetInt(c, "LOG_MAX_BACKUPS", 5),
			MaxAge:     config.GetInt(c, "LOG_MAX_AGE_DAYS", 30),
			Compress:   true,
		})
	}

	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zlog.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// openCache builds the content cache on the configured backend. The returned
// func releases the backend.
func openCache(c map[string]string) (*cache.Cache, func(), error) {
	cacheOpts := []cache.Option{
		cache.WithStaleAfter(time.Duration(config.GetInt(c, "CACHE_STALE_SECONDS", 0)) * time.Second),
		cache.WithTTL(time.Duration(config.GetInt(c, "CACHE_TTL_SECONDS", 0)) * time.Second),
		cache.WithLogger(zlog.With().Str("component", "cache").Logger()),
	}

	switch backend := config.GetString(c, "CACHE_BACKEND", "memory"); backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.GetString(c, "REDIS_ADDR", "localhost:6379"),
			Password: config.GetString(c, "REDIS_PASSWORD", ""),
			DB:       config.GetInt(c, "REDIS_DB", 0),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		store := cache.NewRedisStore(client, config.GetString(c, "REDIS_KEY_PREFIX", "portfolio"))
		return cache.New(store, cacheOpts...), func() { _ = client.Close() }, nil
	case "memory":
		store := cache.NewMemoryStore()
		sweeper, err := cache.StartSweeper(store, config.GetString(c, "CACHE_SWEEP_SCHEDULE", cache.DefaultSweepSchedule), zlog.With().Str("component", "cacheSweeper").Logger())
		if err != nil {
			return nil, nil, fmt.Errorf("start cache sweeper: %w", err)
		}
		return cache.New(store, cacheOpts...), func() { <-sweeper.Stop().Done() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported CACHE_BACKEND %q", backend)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

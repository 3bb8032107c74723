package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"actlog/internal/auth"
	"actlog/internal/config"
	"actlog/internal/db"
	"actlog/internal/logger"
	"actlog/internal/model"
	"actlog/internal/repository"
	"actlog/internal/service"
)

// SeedLogData is one entry of the SEED_LOGS_URL payload.
type SeedLogData struct {
	Username  string `json:"username"`
	DeviceID  string `json:"deviceId"`
	Activity  string `json:"activity"`
	Timestamp string `json:"timestamp"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	logsURL := os.Getenv("SEED_LOGS_URL")
	if !cfg.HasAdminBootstrap() && logsURL == "" {
		log.Fatal().Msg("nothing to seed: set ADMIN_USERNAME/ADMIN_PASSWORD and/or SEED_LOGS_URL")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN, db.Options{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	log.Info().Msg("database migrations completed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if cfg.HasAdminBootstrap() {
		userRepo := repository.NewUserRepository(gormDB)
		// no cache: the seed runs once and exits
		userService := service.NewUserService(userRepo, nil)
		authService := service.NewAuthService(
			userRepo,
			userService,
			auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
			auth.NewTokenStore(nil),
		)
		created, err := authService.BootstrapAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin")
		}
		log.Info().Str("username", cfg.AdminUsername).Bool("created", created).Msg("admin account ready")
	}

	if logsURL == "" {
		return
	}

	log.Info().Str("url", logsURL).Msg("fetching logs")
	items, err := fetchLogs(ctx, logsURL)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch logs")
	}

	entries, skipped := toEntries(items)
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("skipped invalid log entries")
	}

	logService := service.NewLogService(repository.NewLogRepository(gormDB))
	if err := logService.Import(ctx, entries); err != nil {
		log.Fatal().Err(err).Msg("import logs")
	}
	log.Info().Int("imported", len(entries)).Msg("seed completed")
}

// fetchLogs downloads the seed payload.
func fetchLogs(ctx context.Context, url string) ([]SeedLogData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var items []SeedLogData
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return items, nil
}

// toEntries converts payload items, dropping ones without an owner, an
// activity or a readable timestamp. An empty timestamp is left for Import to fill.
func toEntries(items []SeedLogData) ([]model.LogEntry, int) {
	entries := make([]model.LogEntry, 0, len(items))
	skipped := 0
	for _, item := range items {
		if item.Username == "" || item.Activity == "" {
			skipped++
			continue
		}
		var ts time.Time
		if item.Timestamp != "" {
			parsed, err := time.Parse(time.RFC3339Nano, item.Timestamp)
			if err != nil {
				log.Debug().Str("timestamp", item.Timestamp).Msg("unparseable timestamp")
				skipped++
				continue
			}
			ts = parsed.UTC()
		}
		entries = append(entries, model.LogEntry{
			Username:  item.Username,
			DeviceID:  item.DeviceID,
			Activity:  item.Activity,
			Timestamp: ts,
		})
	}
	return entries, skipped
}

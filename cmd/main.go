package main

import (
	"errors"
	"log/slog"
	"os"

	httpapi "github.com/immxrtalbeast/planning-poker/internal/api/http"
	"github.com/immxrtalbeast/planning-poker/internal/auth"
	"github.com/immxrtalbeast/planning-poker/internal/config"
	"github.com/immxrtalbeast/planning-poker/internal/hub"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/immxrtalbeast/planning-poker/internal/repository/model"
	"github.com/immxrtalbeast/planning-poker/internal/service"
	"github.com/immxrtalbeast/planning-poker/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		log.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	roomRepo := repository.NewPostgresRoomRepository(db)
	participantRepo := repository.NewPostgresParticipantRepository(db)
	storyRepo := repository.NewPostgresStoryRepository(db)
	voteRepo := repository.NewPostgresVoteRepository(db)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	roomService := service.NewRoomService(roomRepo, participantRepo, log)
	storyService := service.NewStoryService(storyRepo, participantRepo, log)
	votingService := service.NewVotingService(roomRepo, storyRepo, participantRepo, voteRepo, log)
	userService := service.NewUserService(userRepo, roomRepo, tokens, log)

	broadcast := hub.NewHub(log)

	roomController := httpapi.NewRoomController(roomService, userService)
	userController := httpapi.NewUserController(userService)
	socketController := httpapi.NewSocketController(roomService, storyService, votingService, broadcast, log)

	router := httpapi.SetupRouter(roomController, userController, socketController, tokens)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Participant{},
		&model.Story{},
		&model.Vote{},
	); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

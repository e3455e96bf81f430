// Команда seed-admin создаёт или обновляет учётную запись администратора.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/itlearnpro/internal/config"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/password"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/migrations"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

func main() {
	email := flag.String("email", "admin@example.com", "admin e-mail")
	pass := flag.String("password", "admin123", "admin password")
	name := flag.String("name", "Admin", "admin display name")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	hash, err := password.GetHash(*pass)
	if err != nil {
		logger.Error("failed to hash password", sl.Err(err))
		os.Exit(1)
	}

	admin, err := db.UpsertAdmin(ctx, *name, strings.ToLower(strings.TrimSpace(*email)), hash)
	if err != nil {
		logger.Error("failed to upsert admin", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("admin account ready", slog.String("uid", admin.UUID), slog.String("email", admin.Email))
}

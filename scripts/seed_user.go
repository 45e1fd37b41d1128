package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/khoahotran/user-gateway/pkg/auth"
)

func main() {
	fmt.Println("adding initial user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")
	SEED_EMAIL := os.Getenv("SEED_EMAIL")
	SEED_PASSWORD := os.Getenv("SEED_PASSWORD")

	hash, err := auth.HashPassword(SEED_PASSWORD)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (email, password_digest)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_digest = $2
	`
	_, err = pool.Exec(context.Background(), query, SEED_EMAIL, hash)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated user '%s' successfully!\n", SEED_EMAIL)
}

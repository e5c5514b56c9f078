// Package main provides operator account utilities for the social backend.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/bootstrap"
	"github.com/clairelorenzo/app-backend-6104/internal/config"
	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/repository"
	"github.com/clairelorenzo/app-backend-6104/internal/session"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin list                      - List accounts")
		fmt.Println("  go run ./cmd/admin reset-password <username> - Issue a temporary password")
		fmt.Println("  go run ./cmd/admin delete <username>         - Delete an account and its content")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	sessions := session.NewStore(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)

	command := os.Args[1]
	switch command {
	case "list":
		listUsers(db)

	case "reset-password":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin reset-password <username>")
			os.Exit(1)
		}
		resetPassword(db, sessions, os.Args[2])

	case "delete":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin delete <username>")
			os.Exit(1)
		}
		deleteAccount(db, sessions, os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func findUser(db *gorm.DB, username string) models.User {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User %s not found\n", username)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}
	return user
}

func listUsers(db *gorm.DB) {
	var users []models.User
	if err := db.Order("id asc").Find(&users).Error; err != nil {
		log.Fatalf("Failed to fetch users: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("No accounts found")
		return
	}

	fmt.Println("\n📋 Accounts:")
	fmt.Println("─────────────────────────────────────")
	for _, user := range users {
		fmt.Printf("ID: %d | Username: %s | Joined: %s\n",
			user.ID, user.Username, user.CreatedAt.Format("2006-01-02"))
	}
	fmt.Println("─────────────────────────────────────")
}

func resetPassword(db *gorm.DB, sessions *session.Store, username string) {
	user := findUser(db, username)

	temp, err := generateTempPassword()
	if err != nil {
		log.Fatalf("Failed to generate password: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		log.Fatalf("Failed to reset password: %v", err)
	}

	ended := endSessions(sessions, user.ID)
	fmt.Printf("✅ Temporary password for %s (ID: %d): %s\n", user.Username, user.ID, temp)
	fmt.Printf("   Ended %d active session(s)\n", ended)
}

func deleteAccount(db *gorm.DB, sessions *session.Store, username string) {
	user := findUser(db, username)

	// The repository cascades to posts, comments, requests, and friendships
	// and invalidates the affected cache entries.
	repo := repository.NewUserRepository(db)
	if err := repo.Delete(context.Background(), user.ID); err != nil {
		log.Fatalf("Failed to delete account: %v", err)
	}

	ended := endSessions(sessions, user.ID)
	fmt.Printf("✅ Deleted %s (ID: %d) and their content\n", user.Username, user.ID)
	fmt.Printf("   Ended %d active session(s)\n", ended)
}

func endSessions(sessions *session.Store, userID uint) int {
	if !sessions.Available() {
		return 0
	}
	ended, err := sessions.EndAll(context.Background(), userID)
	if err != nil {
		log.Printf("Warning: could not end sessions: %v", err)
	}
	return ended
}

// generateTempPassword builds a one-time credential. The fixed prefix
// guarantees the character classes the password rules require.
func generateTempPassword() (string, error) {
	const alphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	chars := make([]byte, len(buf))
	for i, b := range buf {
		chars[i] = alphabet[int(b)%len(alphabet)]
	}
	return "Tmp4!" + string(chars), nil
}

// Command createadmin creates a superadmin account, or resets the password
// and role of an existing one. It is used to bootstrap the first login.
//
// Usage:
//
//	createadmin -username=admin -password=secret [-email=admin@example.com] [-fullname="System Admin"]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	userrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/doctrkr-backend/internal/app"
	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

func main() {
	username := flag.String("username", "", "login name of the superadmin")
	password := flag.String("password", "", "password to set")
	email := flag.String("email", "", "email address (defaults to <username>@localhost)")
	fullname := flag.String("fullname", "System Administrator", "display name")
	flag.Parse()

	name := strings.TrimSpace(*username)
	if name == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Usage: createadmin -username=admin -password=secret")
		os.Exit(1)
	}
	if *email == "" {
		*email = name + "@localhost"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, closeDB, err := app.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer closeDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	users := userrepo.New(pool)

	existing, err := users.GetByUsername(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		_, err = users.Create(ctx, &domain.User{
			Username:     name,
			Email:        strings.ToLower(strings.TrimSpace(*email)),
			Fullname:     strings.TrimSpace(*fullname),
			PasswordHash: string(hash),
			Role:         domain.RoleSuperAdmin,
		})
		if err != nil {
			log.Fatalf("create user: %v", err)
		}
		fmt.Printf("Superadmin %q created.\n", name)
	case err != nil:
		log.Fatalf("look up user: %v", err)
	default:
		if err := users.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			log.Fatalf("update password: %v", err)
		}
		existing.Role = domain.RoleSuperAdmin
		existing.RecipientID = nil
		if _, err := users.Update(ctx, existing); err != nil {
			log.Fatalf("update role: %v", err)
		}
		fmt.Printf("User %q reset to superadmin.\n", name)
	}
}

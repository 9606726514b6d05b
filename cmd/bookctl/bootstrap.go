package main

import (
	"context"
	"fmt"

	"booker/internal/domain/entity"
	"booker/internal/domain/repository"
	"booker/internal/infra/auth"
	"booker/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
)

// runBootstrapAdmin creates the initial admin account. It refuses to touch an
// existing user; promoting or re-keying accounts is out of scope for this
// tool.
func runBootstrapAdmin(ctx context.Context, email, password string) error {
	if password == "" {
		return errors.New("password is required (use -password)")
	}

	cfg, db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if email == "" {
		if cfg.Admin == nil || cfg.Admin.Email == "" {
			return errors.New("email is required (use -email or set admin.email in config)")
		}
		email = cfg.Admin.Email
	}
	email = entity.NormalizeEmail(email)

	userRepo := postgres.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		return errors.Errorf("user already exists: %s", email)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to look up user")
	}

	hash, err := auth.NewPBKDF2Hasher().Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	admin := &entity.User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to create admin user")
	}

	fmt.Println("Admin user created!")
	fmt.Println()
	fmt.Printf("   %s\n", email)
	fmt.Println()
	fmt.Println("Use 'bookctl invite' to mint invite codes for new users.")

	return nil
}

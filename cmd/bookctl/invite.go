package main

import (
	"context"
	"fmt"

	"booker/internal/domain/entity"
	"booker/internal/infra/invite"
	"booker/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
)

// runInvite mints a single-use invite code attributed to an existing admin.
func runInvite(ctx context.Context, adminEmail string) error {
	if adminEmail == "" {
		return errors.New("admin email is required (use -admin)")
	}

	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	userRepo := postgres.NewUserRepository(db)
	admin, err := userRepo.FindByEmail(ctx, entity.NormalizeEmail(adminEmail))
	if err != nil {
		return errors.Wrapf(err, "failed to look up admin %s", adminEmail)
	}
	if !admin.IsAdmin {
		return errors.Errorf("user is not an admin: %s", adminEmail)
	}

	code, err := invite.NewCodeGenerator().Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate invite code")
	}

	record := &entity.Invite{
		Code:      code,
		CreatedBy: admin.ID,
	}
	if err := postgres.NewInviteRepository(db).Create(ctx, record); err != nil {
		return errors.Wrap(err, "failed to create invite")
	}

	fmt.Println("Invite code created!")
	fmt.Println()
	fmt.Printf("   %s\n", code)
	fmt.Println()
	fmt.Println("Share this code with the user. They can sign up at /auth/signup.")

	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - bootstrap-admin: Create the first admin user
// - invite:          Mint an invite code for an existing admin

func main() {
	// Subcommand definitions
	bootstrapCmd := flag.NewFlagSet("bootstrap-admin", flag.ExitOnError)
	inviteCmd := flag.NewFlagSet("invite", flag.ExitOnError)

	// bootstrap-admin parameters
	bootstrapEmail := bootstrapCmd.String("email", "", "Admin email (defaults to admin.email from config)")
	bootstrapPassword := bootstrapCmd.String("password", "", "Admin password (required)")

	// invite parameters
	inviteEmail := inviteCmd.String("admin", "", "Email of the issuing admin (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := ctlFlags{
		Bootstrap: bootstrapFlags{
			cmd:      bootstrapCmd,
			email:    bootstrapEmail,
			password: bootstrapPassword,
		},
		Invite: inviteFlags{
			cmd:   inviteCmd,
			admin: inviteEmail,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type ctlFlags struct {
	Bootstrap bootstrapFlags
	Invite    inviteFlags
}

type bootstrapFlags struct {
	cmd      *flag.FlagSet
	email    *string
	password *string
}

type inviteFlags struct {
	cmd   *flag.FlagSet
	admin *string
}

func runSubcommand(ctx context.Context, flags *ctlFlags) error {
	switch os.Args[1] {
	case "bootstrap-admin":
		if err := flags.Bootstrap.cmd.Parse(os.Args[2:]); err != nil {
			return errors.WithStack(err)
		}

		return runBootstrapAdmin(ctx, *flags.Bootstrap.email, *flags.Bootstrap.password)
	case "invite":
		if err := flags.Invite.cmd.Parse(os.Args[2:]); err != nil {
			return errors.WithStack(err)
		}

		return runInvite(ctx, *flags.Invite.admin)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand: %s", os.Args[1])
	}
}

func printUsage() {
	fmt.Println("Usage: bookctl <subcommand> [flags]")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  bootstrap-admin  Create the first admin user")
	fmt.Println("  invite           Mint an invite code for an existing admin")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  bookctl bootstrap-admin -password mySecurePassword123")
	fmt.Println("  bookctl invite -admin admin@example.com")
}

package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users (admins, clerks, agents)",
	}

	cmd.AddCommand(userCreateCmd())
	cmd.AddCommand(userListCmd())
	cmd.AddCommand(userShowCmd())
	cmd.AddCommand(userShiftCmd())
	cmd.AddCommand(userLocateCmd())
	cmd.AddCommand(userDeactivateCmd())

	return cmd
}

func userCreateCmd() *cobra.Command {
	var req primary.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Long: `Create a new user.

Examples:
  fieldops user create --email jo@example.com --name "Jo Smith" --role clerk
  fieldops user create --email ops@example.com --name "Ops" --role admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := wire.UserService().CreateUser(actorContext(cmd), req)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("✓ Created %s %s (%s)\n", resp.User.Role, resp.UserID, resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.FullName, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&req.Role, "role", "", "Role: admin, clerk or agent (required)")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Postcode, "postcode", "", "Home postcode")
	cmd.Flags().StringVar(&req.City, "city", "", "City")

	return cmd
}

func userListCmd() *cobra.Command {
	var filters primary.UserFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := wire.UserService().ListUsers(actorContext(cmd), filters)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROLE\tACTIVE\tON SHIFT")
			fmt.Fprintln(w, "--\t----\t----\t------\t--------")

			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n",
					u.ID, u.FullName, u.Role, u.IsActive, u.IsOnShift)
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Role, "role", "", "Filter by role")
	cmd.Flags().BoolVar(&filters.ActiveOnly, "active", false, "Active users only")
	cmd.Flags().BoolVar(&filters.OnShiftOnly, "on-shift", false, "On-shift clerks only")

	return cmd
}

func userShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show user details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := wire.UserService().GetUser(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("user not found: %w", err)
			}

			fmt.Printf("User: %s\n", user.ID)
			fmt.Printf("Name: %s\n", user.FullName)
			fmt.Printf("Email: %s\n", user.Email)
			fmt.Printf("Role: %s\n", user.Role)
			fmt.Printf("Active: %t\n", user.IsActive)
			if user.Role == "clerk" {
				fmt.Printf("On shift: %t\n", user.IsOnShift)
			}
			if user.Postcode != "" {
				fmt.Printf("Postcode: %s\n", user.Postcode)
			}
			return nil
		},
	}
}

func userShiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shift [user-id] [on|off]",
		Short: "Flip a clerk's on-shift flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var onShift bool
			switch args[1] {
			case "on":
				onShift = true
			case "off":
				onShift = false
			default:
				return fmt.Errorf("shift must be 'on' or 'off', got %q", args[1])
			}

			if err := wire.UserService().SetShift(actorContext(cmd), args[0], onShift); err != nil {
				return fmt.Errorf("failed to set shift: %w", err)
			}

			fmt.Printf("✓ Clerk %s is now %s shift\n", args[0], args[1])
			return nil
		},
	}
}

func userLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate [user-id] [lat] [lng]",
		Short: "Record a clerk's live location",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[1])
			}
			lng, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[2])
			}

			if err := wire.UserService().UpdateLocation(actorContext(cmd), args[0], lat, lng); err != nil {
				return fmt.Errorf("failed to update location: %w", err)
			}

			fmt.Printf("✓ Location recorded for %s\n", args[0])
			return nil
		},
	}
}

func userDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [user-id]",
		Short: "Mark a user inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.UserService().DeactivateUser(actorContext(cmd), args[0]); err != nil {
				return fmt.Errorf("failed to deactivate user: %w", err)
			}

			fmt.Printf("✓ User %s deactivated\n", args[0])
			return nil
		},
	}
}

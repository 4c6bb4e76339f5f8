package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// PropertyCmd returns the property command
func PropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Manage properties",
	}

	cmd.AddCommand(propertyCreateCmd())
	cmd.AddCommand(propertyListCmd())
	cmd.AddCommand(propertyShowCmd())
	cmd.AddCommand(propertyUpdateCmd())

	return cmd
}

func propertyCreateCmd() *cobra.Command {
	var req primary.CreatePropertyRequest
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new property",
		Long: `Create a new property record.

Examples:
  fieldops property create --postcode "SW1A 1AA" --address "1 Main St" --city London
  fieldops property create --postcode "E14 9GE" --lat 51.5 --lng -0.02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				req.Latitude = &lat
				req.Longitude = &lng
			}

			resp, err := wire.PropertyService().CreateProperty(actorContext(cmd), req)
			if err != nil {
				return fmt.Errorf("failed to create property: %w", err)
			}

			fmt.Printf("✓ Created property %s (%s)\n", resp.PropertyID, resp.Property.Postcode)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Postcode, "postcode", "", "Postcode (required)")
	cmd.Flags().StringVar(&req.AddressLine1, "address", "", "Address line 1")
	cmd.Flags().StringVar(&req.AddressLine2, "address2", "", "Address line 2")
	cmd.Flags().StringVar(&req.City, "city", "", "City")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().StringVar(&req.ReferenceNumber, "ref", "", "Reference number")
	cmd.Flags().StringVar(&req.PropertyType, "type", "", "Property type")
	cmd.Flags().IntVar(&req.Bedrooms, "bedrooms", 0, "Bedrooms")
	cmd.Flags().StringVar(&req.ClientName, "client", "", "Client name")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")

	return cmd
}

func propertyListCmd() *cobra.Command {
	var filters primary.PropertyFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			properties, err := wire.PropertyService().ListProperties(actorContext(cmd), filters)
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}

			if len(properties) == 0 {
				fmt.Println("No properties found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tPOSTCODE\tADDRESS\tCITY\tCLIENT")
			fmt.Fprintln(w, "--\t--------\t-------\t----\t------")

			for _, p := range properties {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Postcode, orDash(p.AddressLine1), orDash(p.City), orDash(p.ClientName))
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Postcode, "postcode", "", "Filter by postcode")
	cmd.Flags().BoolVar(&filters.ActiveOnly, "active", false, "Active properties only")

	return cmd
}

func propertyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [property-id]",
		Short: "Show property details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wire.PropertyService().GetProperty(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("property not found: %w", err)
			}

			fmt.Printf("Property: %s\n", p.ID)
			if p.ReferenceNumber != "" {
				fmt.Printf("Reference: %s\n", p.ReferenceNumber)
			}
			fmt.Printf("Address: %s, %s %s\n", orDash(p.AddressLine1), orDash(p.City), p.Postcode)
			if p.Latitude != nil && p.Longitude != nil {
				fmt.Printf("Location: %.5f, %.5f\n", *p.Latitude, *p.Longitude)
			}
			if p.ClientName != "" {
				fmt.Printf("Client: %s\n", p.ClientName)
			}
			fmt.Printf("Active: %t\n", p.IsActive)
			return nil
		},
	}
}

func propertyUpdateCmd() *cobra.Command {
	var req primary.UpdatePropertyRequest
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "update [property-id]",
		Short: "Update a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.PropertyID = args[0]
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				req.Latitude = &lat
				req.Longitude = &lng
			}

			if err := wire.PropertyService().UpdateProperty(actorContext(cmd), req); err != nil {
				return fmt.Errorf("failed to update property: %w", err)
			}

			fmt.Printf("✓ Property %s updated\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&req.AddressLine1, "address", "", "Address line 1")
	cmd.Flags().StringVar(&req.City, "city", "", "City")
	cmd.Flags().StringVar(&req.Postcode, "postcode", "", "Postcode")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")

	return cmd
}

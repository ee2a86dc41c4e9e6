package cli

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/braian-rent/braian-api/internal/application/seed"
	"github.com/braian-rent/braian-api/internal/application/usecase"
	"github.com/braian-rent/braian-api/internal/domain"
)

// SeedCmd recrea los datos de demostración.
func SeedCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Vacía la base y carga los datos de demostración",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b *Backend) error {
				seeder := seed.NewSeeder(b.Tx, cliLogger(cmd).Zerolog(), b.Location, b.BcryptCost)
				res, err := seeder.Seed(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "✅ Dane demonstracyjne gotowe")
				fmt.Fprintf(out, "Właściciel: %s / %s\n", seed.DemoOwnerEmail, seed.DemoPassword)
				fmt.Fprintf(out, "Najemca:    %s / %s\n", seed.DemoTenantEmail, seed.DemoPassword)
				fmt.Fprintf(out, "Nieruchomość: %s\n", res.PropertyID)
				return nil
			})
		},
	}
}

// UsersCmd grupo de usuarios.
func UsersCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Consultas de usuarios",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Lista los usuarios registrados",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b *Backend) error {
				users, err := usecase.NewUserUseCase(b.Users).List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "👥 Użytkownicy w bazie danych:")
				for i, u := range users {
					fmt.Fprintf(out, "%d. %s (%s) - %s\n", i+1, u.Name, u.Email, u.Role)
				}
				return nil
			})
		},
	})
	return cmd
}

// PropertyCmd grupo de propiedades: alta manual con inquilino, contrato y pago.
func PropertyCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Gestión manual de propiedades",
	}
	cmd.AddCommand(propertyAddCmd(open))
	return cmd
}

func propertyAddCmd(open Opener) *cobra.Command {
	var (
		in   seed.PropertySample
		rent string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Añade una propiedad a un propietario existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(rent)
			if err != nil {
				return fmt.Errorf("--rent inválido: %w", err)
			}
			in.Rent = amount

			return withBackend(cmd, open, func(b *Backend) error {
				seeder := seed.NewSeeder(b.Tx, cliLogger(cmd).Zerolog(), b.Location, b.BcryptCost)
				res, err := seeder.AddProperty(cmd.Context(), in)
				if errors.Is(err, domain.ErrUserNotFound) {
					return fmt.Errorf("❌ Użytkownik %s nie został znaleziony", in.OwnerEmail)
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "🎉 Wszystko dodane pomyślnie!")
				fmt.Fprintf(out, "📍 Adres nieruchomości: %s (%s)\n", in.Address, res.PropertyID)
				fmt.Fprintf(out, "👤 Najemca: %s\n", in.TenantName)
				fmt.Fprintf(out, "💰 Kwota czynszu: %s zł\n", in.Rent.StringFixed(2))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.OwnerEmail, "owner", "", "email del propietario (obligatorio)")
	f.StringVar(&in.Address, "address", "", "dirección")
	f.StringVar(&in.City, "city", "", "ciudad")
	f.StringVar(&in.PostalCode, "postal-code", "", "código postal")
	f.StringVar(&in.TenantEmail, "tenant-email", "", "email del inquilino")
	f.StringVar(&in.TenantName, "tenant-name", "", "nombre del inquilino")
	f.StringVar(&in.TenantPhone, "tenant-phone", "", "teléfono del inquilino")
	f.StringVar(&rent, "rent", "", "alquiler mensual, p. ej. 3000.00")
	f.StringVar(&in.Description, "description", "", "descripción del pago")
	for _, name := range []string{"owner", "address", "city", "postal-code", "tenant-email", "tenant-name", "rent"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

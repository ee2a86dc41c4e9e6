package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd grupo de migraciones: up y status.
func MigrateCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Gestiona el esquema de la base de datos",
	}
	cmd.AddCommand(migrateUpCmd(open), migrateStatusCmd(open))
	return cmd
}

func migrateUpCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b *Backend) error {
				if b.Migrator == nil {
					return ErrNoMigrator
				}
				applied, err := b.Migrator.Up(cmd.Context())
				if err != nil {
					return fmt.Errorf("aplicar migraciones: %w", err)
				}
				out := cmd.OutOrStdout()
				if len(applied) == 0 {
					fmt.Fprintln(out, "Esquema al día, nada que aplicar")
					return nil
				}
				for _, v := range applied {
					fmt.Fprintf(out, "Aplicada %s\n", v)
				}
				return nil
			})
		},
	}
}

func migrateStatusCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de cada migración",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b *Backend) error {
				if b.Migrator == nil {
					return ErrNoMigrator
				}
				migrations, err := b.Migrator.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("estado de migraciones: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-32s  %-8s  %s\n", "Version", "Status", "Applied at")
				for _, m := range migrations {
					status, at := "Pending", "-"
					if m.AppliedAt != nil {
						status = "Applied"
						at = m.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "%-32s  %-8s  %s\n", m.Version, status, at)
				}
				return nil
			})
		},
	}
}

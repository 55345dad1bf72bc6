package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/teardown"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove backups left by setup and reset",
	Long: `Delete the timestamped backups made when setup replaced an existing file,
the backups of the shell startup file and the legacy .backup files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}

		removed, err := teardown.Cleanup(s.cfg, s.env.Home, s.logger)
		if err != nil {
			return fmt.Errorf("removing backups: %w", err)
		}
		if len(removed) == 0 {
			fmt.Fprintln(s.out, "No backups found.")
			return nil
		}
		fmt.Fprintf(s.out, "Removed %d backup(s).\n", len(removed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

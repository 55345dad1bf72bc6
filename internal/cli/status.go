package cli

import (
	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/doctor"
)

var statusCmd = &cobra.Command{
	Use:   "status [ids...]",
	Short: "Show the health of installed AI tool configuration",
	Long: `Report, for each tool, whether its links point at the repository, its
generated files are present, its alias is installed and whether backups are
waiting to be cleaned up. Nothing is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}

		tools, err := s.newLinker().Select(s.cfg, args)
		if err != nil {
			return err
		}
		reports, err := doctor.New(s.env, s.shellRC).CheckAll(tools)
		if err != nil {
			return err
		}
		doctor.Print(s.out, reports)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

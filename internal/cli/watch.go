package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanLiu6/setup/internal/linker"
	"github.com/RyanLiu6/setup/internal/ui"
	"github.com/RyanLiu6/setup/internal/watch"
)

var watchDebounce = watch.DefaultDebounce

var watchCmd = &cobra.Command{
	Use:   "watch [ids...]",
	Short: "Regenerate tool files when their sources change",
	Long: `Watch the skill and memory sources of tools with generate rules and
regenerate their outputs after each change. Linked files need no watching.
Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, true)
		if err != nil {
			return err
		}

		l := s.newLinker()
		tools, err := l.Select(s.cfg, args)
		if err != nil {
			return err
		}

		w, err := watch.New(l, watch.Targets(tools, s.env.AIRoot), watch.Config{
			Debounce: watchDebounce,
			Logger:   s.logger,
			OnRegenerate: func(res *linker.Result, err error) {
				if err != nil || res == nil {
					return
				}
				fmt.Fprintf(s.out, "%-20s %s\n", res.Name, ui.Summary(res.OK()))
			},
		})
		if err != nil {
			return err
		}

		for _, d := range w.Dirs() {
			s.logger.Info("watching", "dir", d)
		}
		return w.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Wait this long after the last change before regenerating")
	rootCmd.AddCommand(watchCmd)
}

package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/gitops"
	"github.com/walletguard/walletguard/internal/report"
)

func newLogCommand(g *globals) *cobra.Command {
	var tail int
	var commits bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the wallet activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := g.open(cmd)
			if err != nil {
				return err
			}
			if commits {
				return printCommits(cmd, w.root, tail)
			}
			entries, err := activitylog.Read(w.root)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activity yet.")
				return nil
			}
			report.RenderActivity(cmd.OutOrStdout(), activitylog.Tail(entries, tail))
			return nil
		},
	}
	cmd.Flags().IntVarP(&tail, "tail", "n", 20, "show the last N entries (0 for all)")
	cmd.Flags().BoolVar(&commits, "commits", false, "show the git history instead of the activity log")
	return cmd
}

func printCommits(cmd *cobra.Command, root string, n int) error {
	if !gitops.IsRepo(root) {
		return fmt.Errorf("wallet at %s has no git history (init with --git)", root)
	}
	if n <= 0 {
		n = math.MaxInt32
	}
	subjects, err := gitops.Log(root, n)
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flipr/internal/media"
	"flipr/internal/store"
)

var (
	rebaseBase   string
	rebaseDBPath string
)

var rebaseCmd = &cobra.Command{
	Use:   "rebase",
	Short: "Rewrite stored relative image URLs onto a new base URL",
	Long: `rebase scans projects and clients and rewrites every image URL that
is still site-relative onto the given base. URLs that are already
absolute are left untouched, so running it again with the same base
changes nothing.

Do not run two rebases concurrently against the same database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rebaseBase == "" {
			rebaseBase = os.Getenv("FLIPR_FILE_BASE_URL")
		}
		if rebaseBase == "" {
			return fmt.Errorf("a base URL is required (--base or FLIPR_FILE_BASE_URL)")
		}
		if rebaseDBPath == "" {
			rebaseDBPath = os.Getenv("FLIPR_DB_PATH")
		}
		if rebaseDBPath == "" {
			return fmt.Errorf("a database path is required (--db or FLIPR_DB_PATH)")
		}

		st, err := store.Open(rebaseDBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		logger.Info("rebasing image urls",
			zap.String("base", rebaseBase), zap.String("db", rebaseDBPath))

		report, err := media.Rebase(cmd.Context(), st, rebaseBase, logger)
		if err != nil {
			return err
		}

		for _, r := range report.Rewritten {
			fmt.Printf("updated %s %s: %s -> %s\n", r.Collection, r.ID, r.OldURL, r.NewURL)
		}
		fmt.Printf("done: %d rewritten, %d skipped, %d failed\n",
			len(report.Rewritten), report.Skipped, len(report.Failures))
		if report.Failed() {
			for _, f := range report.Failures {
				fmt.Fprintf(os.Stderr, "failed %s %s: %v\n", f.Collection, f.ID, f.Err)
			}
			return fmt.Errorf("%d record(s) failed", len(report.Failures))
		}
		return nil
	},
}

func init() {
	rebaseCmd.Flags().StringVar(&rebaseBase, "base", "", "new public base URL (e.g. https://cdn.example.com)")
	rebaseCmd.Flags().StringVar(&rebaseDBPath, "db", "", "path to the SQLite database")
	rootCmd.AddCommand(rebaseCmd)
}

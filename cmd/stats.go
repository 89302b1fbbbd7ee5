// cmd/stats.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/store"
)

var statsFlags = struct {
	limit int
}{}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent practice sessions",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsFlags.limit, "limit", "n", 10, "number of sessions to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}
	setupLogging(settings.Debug)

	path, err := settings.DatabasePath()
	if err != nil {
		return err
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sessions, err := st.ListSessions(ctx, statsFlags.limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tDURATION\tWPM\tCHARS\tWORDS\tPLAYS")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			(time.Duration(s.DurationMs) * time.Millisecond).Round(time.Second),
			s.WPM, s.Characters, s.Words, s.Plays)
	}
	return w.Flush()
}

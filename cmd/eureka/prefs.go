package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/spf13/cobra"
)

func prefsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or clear saved UI preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show saved preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPrefs(g, func(store prefs.Store) error {
					return listPrefs(store, os.Stdout)
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget saved preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPrefs(g, func(store prefs.Store) error {
					n, err := resetPrefs(store)
					if err != nil {
						return err
					}
					fmt.Printf("✓ Removed %d preference(s)\n", n)
					return nil
				})
			},
		},
	)

	return cmd
}

func withPrefs(g *globals, fn func(prefs.Store) error) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	store, err := openPrefs(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func listPrefs(store prefs.Store, out io.Writer) error {
	all, err := store.All()
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No preferences saved.")
		return nil
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, all[k])
	}
	return w.Flush()
}

// resetPrefs deletes every UI preference. The signed-in user is kept since
// it belongs to the session, not the UI.
func resetPrefs(store prefs.Store) (int, error) {
	all, err := store.All()
	if err != nil {
		return 0, fmt.Errorf("failed to read preferences: %w", err)
	}
	n := 0
	for k := range all {
		if k == prefs.KeyUser {
			continue
		}
		if err := store.Delete(k); err != nil {
			return n, fmt.Errorf("failed to delete %s: %w", k, err)
		}
		n++
	}
	return n, nil
}

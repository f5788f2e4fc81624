package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	gitsync "mynotion/internal/sync"
)

var (
	syncInit   bool
	syncStatus bool
	syncRemote string
	syncPull   bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the data directory with git",
	Long:  "Commits and pushes the JSON data files to a git repository inside the data directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		sc := syncConfig(e)
		g := gitsync.New(e.store.Dir(), sc)

		switch {
		case syncInit:
			if err := g.Init(); err != nil {
				return err
			}
			fmt.Println("initialized git repository in", e.store.Dir())
			return nil

		case syncRemote != "":
			if err := g.AddRemote("origin", syncRemote); err != nil {
				return err
			}
			fmt.Println("remote origin set to", syncRemote)
			return nil

		case syncStatus:
			st, err := g.Status()
			if err != nil {
				return err
			}
			if !st.IsRepo {
				fmt.Println("not a git repository - run 'mynotion sync --init'")
				return nil
			}
			fmt.Printf("branch:  %s\n", st.Branch)
			if st.HasRemote {
				fmt.Printf("remote:  %s (%s)\n", st.RemoteName, st.RemoteURL)
				fmt.Printf("ahead %d, behind %d\n", st.Ahead, st.Behind)
			} else {
				fmt.Println("remote:  none")
			}
			if st.HasChanges {
				fmt.Println("changes: uncommitted")
			} else {
				fmt.Println("changes: clean")
			}
			if st.LastCommitAt != nil {
				fmt.Printf("last commit: %s\n", st.LastCommitAt.Format("2006-01-02 15:04:05"))
			}
			return nil

		case syncPull:
			if err := g.Pull(); err != nil {
				return err
			}
			fmt.Println("pulled")
			return nil

		default:
			if err := g.CommitAll(); err != nil {
				return err
			}
			st, _ := g.Status()
			if st != nil && st.HasRemote {
				if err := g.Push(); err != nil {
					return err
				}
				fmt.Println("committed and pushed")
			} else {
				fmt.Println("committed")
			}
			return nil
		}
	},
}

// syncConfig converts the config file's sync section into the sync
// package's config.
func syncConfig(e *env) *gitsync.Config {
	sc := gitsync.DefaultConfig()
	sc.Enabled = e.cfg.Sync.Enabled
	sc.AutoCommit = e.cfg.Sync.AutoCommitEnabled()
	sc.AutoPush = e.cfg.Sync.AutoPush
	if e.cfg.Sync.CommitMessage != "" {
		sc.CommitMessage = e.cfg.Sync.CommitMessage
	}
	return &sc
}

func init() {
	syncCmd.Flags().BoolVar(&syncInit, "init", false, "initialize a git repo in the data directory")
	syncCmd.Flags().BoolVar(&syncStatus, "status", false, "show sync status")
	syncCmd.Flags().StringVar(&syncRemote, "remote", "", "set the origin remote URL")
	syncCmd.Flags().BoolVar(&syncPull, "pull", false, "pull changes from the remote")
	rootCmd.AddCommand(syncCmd)
}

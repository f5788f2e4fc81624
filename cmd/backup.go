package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mynotion/internal/backup"
	"mynotion/internal/repo"
)

var (
	backupList  bool
	backupPrune int

	restoreLatest bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create or list data backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		mgr := backup.NewManager(e.store.Dir(), Version)

		if backupList {
			infos, err := mgr.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("no backups")
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%s  %s", info.Name, info.CreatedAt.Format("2006-01-02 15:04:05"))
				for _, key := range repo.CollectionKeys {
					if n, ok := info.Counts[key]; ok && n > 0 {
						fmt.Printf("  %s=%d", key, n)
					}
				}
				fmt.Println()
			}
			return nil
		}

		if backupPrune > 0 {
			removed, err := mgr.Prune(backupPrune)
			if err != nil {
				return err
			}
			fmt.Printf("pruned %d backups, kept %d\n", removed, backupPrune)
			return nil
		}

		name, err := mgr.Create()
		if err != nil {
			return err
		}
		fmt.Printf("created backup %s\n", name)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [NAME]",
	Short: "Restore data from a backup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		mgr := backup.NewManager(e.store.Dir(), Version)

		if restoreLatest {
			if err := mgr.RestoreLatest(); err != nil {
				return err
			}
			fmt.Println("restored latest backup")
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("backup name required (or use --latest)")
		}
		if err := mgr.Restore(args[0]); err != nil {
			return err
		}
		fmt.Printf("restored %s\n", args[0])
		return nil
	},
}

func init() {
	backupCmd.Flags().BoolVarP(&backupList, "list", "l", false, "list backups")
	backupCmd.Flags().IntVar(&backupPrune, "prune", 0, "keep only the N newest backups")
	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "restore the most recent backup")
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mynotion/internal/repo"
	"mynotion/internal/store"
)

var (
	clearYes bool
	clearAll bool
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and manage the data directory",
}

var storageUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show storage usage per collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		u, err := e.store.Usage()
		if err != nil {
			return err
		}
		fmt.Printf("data dir: %s\n", e.store.Dir())
		fmt.Printf("used:     %d bytes of %d (%.1f%%)\n", u.UsedBytes, int64(store.MaxBytes), u.Percent)
		for _, k := range u.Keys {
			fmt.Printf("  %-16s %d bytes\n", k.Key, k.Bytes)
		}
		return nil
	},
}

var storageClearCmd = &cobra.Command{
	Use:   "clear [collection]",
	Short: "Delete one collection, or all of them with --all",
	Args: func(cmd *cobra.Command, args []string) error {
		if clearAll {
			if len(args) != 0 {
				return fmt.Errorf("--all takes no collection argument")
			}
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("expected one collection: %s", strings.Join(repo.CollectionKeys, ", "))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		keys := repo.CollectionKeys
		target := "all data"
		if !clearAll {
			key, err := resolveCollectionKey(args[0])
			if err != nil {
				return err
			}
			keys = []string{key}
			target = fmt.Sprintf("collection %q", key)
		}
		if !clearYes && e.cfg.ConfirmDeletions() {
			fmt.Printf("delete %s in %s? [y/N] ", target, e.store.Dir())
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.TrimSpace(strings.ToLower(answer)) != "y" {
				fmt.Println("aborted")
				return nil
			}
		}
		for _, key := range keys {
			if err := e.store.Remove(key); err != nil {
				return err
			}
		}
		fmt.Println("cleared")
		return nil
	},
}

// resolveCollectionKey matches a user-supplied name against the known
// collection keys, case-insensitively.
func resolveCollectionKey(name string) (string, error) {
	for _, key := range repo.CollectionKeys {
		if strings.EqualFold(name, key) {
			return key, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q (one of: %s)", name, strings.Join(repo.CollectionKeys, ", "))
}

func init() {
	storageClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation")
	storageClearCmd.Flags().BoolVar(&clearAll, "all", false, "delete every collection")
	storageCmd.AddCommand(storageUsageCmd, storageClearCmd)
}

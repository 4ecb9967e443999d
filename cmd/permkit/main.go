// Command permkit inspects and edits a permission request-history database,
// the durable state the coordinator's permanently-denied inference depends
// on. It is a development tool: point it at the sqlite file a device or test
// profile uses.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tmc/permkit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "permkit",
		Short:         "Inspect permission request history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("store", defaultStorePath(), "path to the history database")
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	viper.SetEnvPrefix("permkit")
	viper.AutomaticEnv()
	viper.BindPFlag("store", root.PersistentFlags().Lookup("store"))
	viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newListCmd(), newMarkCmd(), newClearCmd())
	return root
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "permkit-history.db"
	}
	return filepath.Join(dir, "permkit", "history.db")
}

func openStore() (*permkit.SQLiteStore, *zap.Logger, error) {
	log := zap.NewNop()
	if viper.GetBool("verbose") {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}
	store, err := permkit.NewSQLiteStore(viper.GetString("store"))
	if err != nil {
		return nil, nil, err
	}
	log.Debug("opened history store", zap.String("path", viper.GetString("store")))
	return store, log, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keys recorded as requested",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			keys, err := store.Keys()
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Println("no requested keys recorded")
				return nil
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		},
	}
}

func newMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <key>",
		Short: "Record a key as requested (useful for seeding test fixtures)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, log, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.MarkRequested(permkit.Key(args[0])); err != nil {
				return err
			}
			log.Debug("marked key", zap.String("key", args[0]))
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear [key]",
		Short: "Forget a key's request record, or all of them with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("specify exactly one of a key argument or --all")
			}
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if all {
				return store.ClearAll()
			}
			return store.Clear(permkit.Key(args[0]))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "clear every recorded key")
	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/abiiranathan/tmplvars/datasource"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagSource string
	flagQuery  string
	flagTest   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch data from a configured data source",
	Long: `Fetch loads data source configs from --config, registers them in a
manager and fetches one source: --source, or the config file's active
source. With --query, a JSONPath selector is applied to the fetched data.
With --test, the connection is probed and the structured probe result is
printed instead of failing on fetch errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configs, err := datasource.LoadConfigFile(flagConfig)
		if err != nil {
			return err
		}

		mgr := datasource.NewManager()
		mgr.ImportConfig(configs)

		id := flagSource
		if id == "" {
			id = mgr.ActiveID()
		}
		if id == "" {
			return errors.New("no source selected: pass --source or mark one active in the config")
		}

		ctx := context.Background()

		if flagTest {
			return emitJSON(mgr.TestConnection(ctx, id))
		}
		if flagQuery != "" {
			matches, err := mgr.Query(ctx, id, flagQuery)
			if err != nil {
				return err
			}
			return emitJSON(matches)
		}

		data, err := mgr.Fetch(ctx, id)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", id, err)
		}
		return emitJSON(data)
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "data source config file (YAML or JSON)")
	fetchCmd.Flags().StringVarP(&flagSource, "source", "s", "", "source id (defaults to the active source)")
	fetchCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JSONPath selector applied to the fetched data")
	fetchCmd.Flags().BoolVar(&flagTest, "test", false, "probe the connection instead of fetching")
	fetchCmd.MarkFlagRequired("config")
}

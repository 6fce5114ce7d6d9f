package cmd

import (
	"github.com/grafana/splitstore/mdata"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(putRawCmd)
}

var putCmd = &cobra.Command{
	Use:   "put <metric-id> <method> <granularity> <timestamp> [file]",
	Short: "Atomically write a split from a file or stdin",
	Long: `Atomically write a split from a file or stdin.
granularity accepts seconds or durations like 1min, 1h.
timestamp accepts decimal epoch seconds or absolute dates, e.g. '03/09/2015' or 'yesterday'`,
	Args: cobra.RangeArgs(4, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		policies, err := archivePolicies()
		if err != nil {
			return err
		}
		metric, agg, key, err := splitTarget(policies, args)
		if err != nil {
			return err
		}
		var name string
		if len(args) == 5 {
			name = args[4]
		}
		data, err := readInput(name)
		if err != nil {
			return err
		}
		err = store.WriteSplits(metric, agg, []mdata.SplitWriteRequest{mdata.NewSplitWriteRequest(key, data, 0)}, viper.GetInt("split-version"))
		if err != nil {
			return err
		}
		log.Infof("wrote %d bytes to split %s of %s %s", len(data), key, metric.ID, agg)
		return nil
	},
}

var putRawCmd = &cobra.Command{
	Use:   "put-raw <metric-id> [file]",
	Short: "Atomically replace the unaggregated data of a metric from a file or stdin",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		policies, err := archivePolicies()
		if err != nil {
			return err
		}
		var name string
		if len(args) == 2 {
			name = args[1]
		}
		data, err := readInput(name)
		if err != nil {
			return err
		}
		metric := policies.Metric(args[0])
		if err := store.WriteUnaggregated(metric, data); err != nil {
			return err
		}
		log.Infof("wrote %d bytes of unaggregated data of %s", len(data), metric.ID)
		return nil
	},
}

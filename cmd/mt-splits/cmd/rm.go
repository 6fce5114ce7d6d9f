package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm <metric-id> <method> <granularity> <timestamp>",
	Short: "Delete a single split",
	Args:  cobra.ExactArgs(4),
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
		err = store.DeleteSplit(metric, agg, key, viper.GetInt("split-version"))
		if err != nil {
			return err
		}
		log.Infof("deleted split %s of %s %s", key, metric.ID, agg)
		return nil
	},
}

package cmd

import (
	"github.com/grafana/splitstore/schema"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <metric-id>...",
	Short: "Delete metrics with all their data",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		for _, id := range args {
			// deletion doesn't look at the archive policy
			err := store.DeleteMetric(schema.Metric{ID: id})
			if err != nil {
				return err
			}
			log.Infof("deleted metric %s", id)
		}
		return nil
	},
}

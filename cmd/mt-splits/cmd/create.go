package cmd

import (
	"fmt"

	"github.com/grafana/splitstore/mdata/errors"
	"github.com/grafana/splitstore/schema"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	policyName  string
	ignoreExist bool
)

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&policyName, "policy", "", "name of the archive policy to use. by default it is matched against the metric id")
	createCmd.Flags().BoolVar(&ignoreExist, "ignore-existing", false, "don't fail on metrics that already exist")
}

var createCmd = &cobra.Command{
	Use:   "create <metric-id>...",
	Short: "Create metrics, with a directory per aggregation method of their archive policy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		policies, err := archivePolicies()
		if err != nil {
			return err
		}
		for _, id := range args {
			metric := policies.Metric(id)
			if policyName != "" {
				policy, ok := policies.Get(policyName)
				if !ok {
					return fmt.Errorf("unknown archive policy %q", policyName)
				}
				metric = schema.NewMetric(id, policy)
			}
			err := store.CreateMetric(metric)
			if ignoreExist && errors.IsMetricAlreadyExists(err) {
				log.Infof("metric %s already exists", id)
				continue
			}
			if err != nil {
				return err
			}
			log.Infof("created metric %s with archive policy %s", id, metric.ArchivePolicy.Name)
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/grafana/splitstore/logger"
	"github.com/grafana/splitstore/stats"
	"github.com/grafana/splitstore/tracing"
	homedir "github.com/mitchellh/go-homedir"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "mt-splits",
	Short: "Administers the splits of a file store",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := logger.Setup("mt-splits", viper.GetString("log-level"))
		if err != nil {
			return err
		}

		if addr := viper.GetString("listen"); addr != "" {
			prometheus.MustRegister(stats.NewPrometheusCollector("splitstore"))
			http.Handle("/metrics", promhttp.Handler())
			go func() {
				log.Infof("starting listener on %s", addr)
				err := http.ListenAndServe(addr, nil)
				if err != nil {
					log.Error(err.Error())
				}
			}()
		}

		tags, err := parseTags(viper.GetString("tracing-add-tags"))
		if err != nil {
			return err
		}
		tracer, tracerCloser, err = tracing.GetTracer("mt-splits", viper.GetBool("tracing-enabled"), viper.GetString("tracing-addr"), tags)
		if err != nil {
			return fmt.Errorf("could not initialize jaeger tracer: %s", err.Error())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tracerCloser != nil {
			tracerCloser.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	// config params used by >1 subcommands are listed here
	// config params specific to only 1 command, go in the file for that command
	cfgFile string

	// global vars
	tracer       opentracing.Tracer
	tracerCloser io.Closer
)

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mt-splits.yaml)")
	flags.String("listen", "", "http listener address for /metrics and pprof. empty to disable")
	flags.String("log-level", "info", "log level. panic|fatal|error|warning|info|debug")
	flags.Bool("tracing-enabled", false, "enable/disable distributed opentracing via jaeger")
	flags.String("tracing-addr", "localhost:6831", "address of the jaeger agent to send data to")
	flags.String("tracing-add-tags", "", "tracer-level tags to add to every span. format: key1=val1,key2=val2")
	flags.String("archive-policies", "/etc/splitstore/storage-archive-policies.conf", "archive policies file path. if it doesn't exist, every metric gets the default policy")

	flags.String("base-path", "/var/lib/splitstore", "directory holding one sub directory per metric, plus the tmp directory used for atomic writes")
	flags.String("dir-mode", "0750", "permissions (octal) of created metric directories")
	flags.String("corrupt-splits", "skip", "what to do with split files whose name can't be parsed while listing: skip (log and exclude) or fail")
	flags.Int("unaggregated-version", 3, "format version of unaggregated data files. 0 means unversioned")
	flags.Int("split-version", 3, "format version of the splits to operate on. 0 means unversioned")

	viper.BindPFlags(flags)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".mt-splits" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".mt-splits")
	}

	// e.g. MT_SPLITS_BASE_PATH
	viper.SetEnvPrefix("mt_splits")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/grafana/splitstore/conf"
	"github.com/grafana/splitstore/schema"
	"github.com/grafana/splitstore/store/file"
	"github.com/raintank/dur"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func storeConfig() (*file.StoreConfig, error) {
	mode, err := strconv.ParseUint(viper.GetString("dir-mode"), 8, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid dir-mode %q: %s", viper.GetString("dir-mode"), err.Error())
	}
	config := file.NewStoreConfig()
	config.BasePath = viper.GetString("base-path")
	config.DirMode = os.FileMode(mode)
	config.CorruptSplits = viper.GetString("corrupt-splits")
	config.UnaggregatedVersion = viper.GetInt("unaggregated-version")
	return config, nil
}

func newStore() (*file.FileStore, error) {
	config, err := storeConfig()
	if err != nil {
		return nil, err
	}
	store, err := file.NewFileStore(config)
	if err != nil {
		return nil, err
	}
	if tracer != nil {
		store.SetTracer(tracer)
	}
	log.Debugf("using %s", store)
	return store, nil
}

func archivePolicies() (conf.ArchivePolicies, error) {
	path := viper.GetString("archive-policies")
	if _, err := os.Stat(path); err != nil {
		log.Debugf("no archive policies at %s, using the default", path)
		return conf.NewArchivePolicies(), nil
	}
	return conf.ReadArchivePolicies(path)
}

// splitTarget parses the <metric-id> <method> <granularity> <timestamp> arguments
// that address a single split
func splitTarget(policies conf.ArchivePolicies, args []string) (schema.Metric, schema.Aggregation, schema.SplitKey, error) {
	metric := policies.Metric(args[0])
	method := schema.Method(args[1])
	if !method.Valid() {
		return metric, schema.Aggregation{}, schema.SplitKey{}, fmt.Errorf("unknown aggregation method %q", args[1])
	}
	secs, err := dur.ParseNDuration(args[2])
	if err != nil {
		return metric, schema.Aggregation{}, schema.SplitKey{}, fmt.Errorf("invalid granularity %q: %s", args[2], err.Error())
	}
	agg := schema.NewAggregation(method, time.Duration(secs)*time.Second)

	if ns, err := schema.ParseSeconds(args[3]); err == nil {
		return metric, agg, schema.SplitKey{Key: ns, Sampling: agg.Granularity}, nil
	}
	ts, err := dur.ParseDateTime(args[3], time.UTC, time.Now(), 0)
	if err != nil {
		return metric, agg, schema.SplitKey{}, fmt.Errorf("invalid timestamp %q: %s", args[3], err.Error())
	}
	return metric, agg, schema.NewSplitKey(time.Unix(int64(ts), 0), agg.Granularity), nil
}

// readInput reads the named file, or stdin if the name is empty or "-"
func readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(name)
}

// parseTags parses key1=val1,key2=val2
func parseTags(s string) (map[string]string, error) {
	tags := make(map[string]string)
	if s == "" {
		return tags, nil
	}
	for _, kv := range strings.Split(s, ",") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid tag %q, expected key=value", kv)
		}
		tags[parts[0]] = parts[1]
	}
	return tags, nil
}

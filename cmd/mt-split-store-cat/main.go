package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/grafana/globalconf"
	"github.com/grafana/splitstore/conf"
	"github.com/grafana/splitstore/logger"
	"github.com/grafana/splitstore/schema"
	statsConfig "github.com/grafana/splitstore/stats/config"
	"github.com/grafana/splitstore/store/file"
	"github.com/raintank/dur"
	log "github.com/sirupsen/logrus"
)

var (
	GitHash = "(none)"

	showVersion  = flag.Bool("version", false, "print version string")
	confFile     = flag.String("config", "/etc/splitstore/splitstore.ini", "configuration file path")
	policiesFile = flag.String("archive-policies", "/etc/splitstore/storage-archive-policies.conf", "archive policies file path. if it doesn't exist, every metric gets the default policy")
	logLevel     = flag.String("log-level", "info", "log level. panic|fatal|error|warning|info|debug")

	version        = flag.Int("split-version", 3, "format version of the splits to look at. 0 means unversioned")
	concurrency    = flag.Int("concurrency", 8, "how many metrics to list concurrently")
	matchCacheSize = flag.Int("match-cache-size", 10000, "how many metric ids to remember the archive policy of")
	printTs        = flag.Bool("print-ts", false, "print time stamps instead of formatted dates")
	verbose        = flag.Bool("verbose", false, "dump the full listing result structure")
)

func perror(err error) {
	if err != nil {
		log.Fatal(err.Error())
	}
}

func main() {
	file.ConfigSetup()
	statsConfig.ConfigSetup()

	flag.Usage = func() {
		fmt.Println("mt-split-store-cat")
		fmt.Println()
		fmt.Println("Inspects the splits stored by the file store. Never modifies anything")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("	mt-split-store-cat [flags] metrics\n")
		fmt.Printf("	mt-split-store-cat [flags] ls [metric-id...]\n")
		fmt.Printf("	mt-split-store-cat [flags] cat <metric-id> <method> <granularity> <timestamp>\n")
		fmt.Printf("	mt-split-store-cat [flags] raw <metric-id>\n")
		fmt.Println()
		fmt.Println("Flags:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Notes:")
		fmt.Println(" * file-store settings are read from the [file-store] section of the config file, or SPLITSTORE_FILE_STORE_* env vars")
		fmt.Println(" * set [stats] enabled = true to dump the instrumentation of the run")
		fmt.Println(" * granularity accepts seconds or durations like 1min, 1h")
		fmt.Println(" * timestamp accepts decimal epoch seconds (as found in split names) or absolute dates understood by dur, e.g. '03/09/2015' or 'yesterday'")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("	mt-split-store-cat ls")
		fmt.Println("	mt-split-store-cat -verbose ls 5a301dd0-b5b0-4f30-9d8c-8e2e5a2f6c1e")
		fmt.Println("	mt-split-store-cat cat 5a301dd0-b5b0-4f30-9d8c-8e2e5a2f6c1e mean 5min 1425906000.0")
	}

	flag.Parse()

	// if the user just wants the version, give it and exit
	if *showVersion {
		fmt.Printf("mt-split-store-cat (built with %s, git hash %s)\n", runtime.Version(), GitHash)
		return
	}

	// Only try and parse the conf file if it exists
	path := ""
	if _, err := os.Stat(*confFile); err == nil {
		path = *confFile
	}
	config, err := globalconf.NewWithOptions(&globalconf.Options{
		Filename:  path,
		EnvPrefix: "SPLITSTORE_",
	})
	if err != nil {
		log.Fatalf("error with configuration file: %s", err.Error())
	}
	config.ParseAll()

	perror(logger.Setup("mt-split-store-cat", *logLevel))

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(-1)
	}

	file.ConfigProcess()
	hostname, _ := os.Hostname()
	statsConfig.ConfigProcess(hostname)
	defer statsConfig.Dump()

	store, err := file.NewFileStore(file.CliConfig)
	perror(err)

	policies := conf.NewArchivePolicies()
	if _, err := os.Stat(*policiesFile); err == nil {
		policies, err = conf.ReadArchivePolicies(*policiesFile)
		perror(err)
	} else {
		log.Debugf("no archive policies at %s, using the default", *policiesFile)
	}

	matcher, err := conf.NewMatchCache(policies, *matchCacheSize)
	perror(err)

	args := flag.Args()[1:]
	switch flag.Arg(0) {
	case "metrics":
		ids, err := store.ListMetrics()
		perror(err)
		for _, id := range ids {
			fmt.Println(id)
		}
	case "ls":
		ids := args
		if len(ids) == 0 {
			ids, err = store.ListMetrics()
			perror(err)
		}
		perror(listAll(store, matcher, ids, *version, *concurrency))
	case "cat":
		if len(args) != 4 {
			flag.Usage()
			os.Exit(-1)
		}
		metric := matcher.Metric(args[0])
		granularity, err := parseGranularity(args[2])
		perror(err)
		key, err := parseTimestamp(args[3], granularity)
		perror(err)
		agg := schema.NewAggregation(schema.Method(args[1]), granularity)
		data, err := store.ReadSplit(metric, agg, key, *version)
		perror(err)
		showData(os.Stdout, fmt.Sprintf("%s %s %s", metric.ID, agg, formatKey(key)), data)
	case "raw":
		if len(args) != 1 {
			flag.Usage()
			os.Exit(-1)
		}
		metric := matcher.Metric(args[0])
		// ReadUnaggregated would provision a missing metric
		if _, err := os.Stat(file.NewLayout(file.CliConfig.BasePath).MetricDir(metric)); err != nil {
			perror(err)
		}
		data, found, err := store.ReadUnaggregated(metric)
		perror(err)
		if !found {
			log.Fatalf("metric %s has no unaggregated data", metric.ID)
		}
		showData(os.Stdout, metric.ID+" unaggregated", data)
	default:
		flag.Usage()
		os.Exit(-1)
	}
}

func parseGranularity(s string) (time.Duration, error) {
	secs, err := dur.ParseNDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid granularity %q: %s", s, err.Error())
	}
	return time.Duration(secs) * time.Second, nil
}

// parseTimestamp accepts the exact decimal seconds of a split name, or a date
func parseTimestamp(s string, sampling time.Duration) (schema.SplitKey, error) {
	if ns, err := schema.ParseSeconds(s); err == nil {
		return schema.SplitKey{Key: ns, Sampling: sampling}, nil
	}
	ts, err := dur.ParseDateTime(s, time.UTC, time.Now(), 0)
	if err != nil {
		return schema.SplitKey{}, fmt.Errorf("invalid timestamp %q: %s", s, err.Error())
	}
	return schema.NewSplitKey(time.Unix(int64(ts), 0), sampling), nil
}

func formatKey(key schema.SplitKey) string {
	if *printTs {
		return key.String()
	}
	return key.Time().Format(tsFormat)
}


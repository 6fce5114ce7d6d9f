// Package config configures dumping the instrumentation of short lived tools
package config

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/grafana/globalconf"
	"github.com/grafana/splitstore/stats"
	log "github.com/sirupsen/logrus"
)

var enabled bool
var prefix string
var path string

func ConfigSetup() *flag.FlagSet {
	inStats := flag.NewFlagSet("stats", flag.ExitOnError)
	inStats.BoolVar(&enabled, "enabled", false, "dump instrumentation in graphite plaintext format when done")
	inStats.StringVar(&prefix, "prefix", "splitstore.stats.$instance", "stats prefix (will add trailing dot automatically if needed)")
	inStats.StringVar(&path, "path", "-", "file to dump to. - means stderr")
	globalconf.Register("stats", inStats, flag.ExitOnError)
	return inStats
}

func ConfigProcess(instance string) {
	if !enabled {
		return
	}
	prefix = strings.Replace(prefix, "$instance", instance, -1)
}

// Dump writes all stats, if enabled
func Dump() {
	if !enabled {
		return
	}
	var w io.Writer = os.Stderr
	if path != "-" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Errorf("stats: failed to open %s: %s", path, err.Error())
			return
		}
		defer f.Close()
		w = f
	}
	if err := stats.WriteGraphite(w, prefix, time.Now()); err != nil {
		log.Errorf("stats: failed to dump: %s", err.Error())
	}
}

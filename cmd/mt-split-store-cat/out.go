package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/grafana/splitstore/conf"
	"github.com/grafana/splitstore/mdata/errors"
	"github.com/grafana/splitstore/schema"
	"github.com/grafana/splitstore/store/file"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const tsFormat = "2006-01-02 15:04:05"

type listing struct {
	id   string
	keys map[schema.Aggregation]schema.SplitKeySet
}

// listAll lists the splits of all given metrics concurrently, and prints them in the order of ids
func listAll(store *file.FileStore, matcher *conf.MatchCache, ids []string, version, concurrency int) error {
	results := make([]listing, len(ids))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			metric := matcher.Metric(id)
			keys, err := store.ListSplitKeys(metric, metric.ArchivePolicy.Aggregations(), version)
			if errors.IsMetricDoesNotExist(err) {
				log.Warnf("metric %s does not exist", id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("listing %s: %w", id, err)
			}
			results[i] = listing{id: id, keys: keys}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		if r.keys == nil {
			continue
		}
		if *verbose {
			spew.Fdump(os.Stdout, r.id, r.keys)
			continue
		}
		showListing(os.Stdout, r)
	}
	return nil
}

func showListing(w io.Writer, r listing) {
	aggs := make([]schema.Aggregation, 0, len(r.keys))
	for agg := range r.keys {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].Method != aggs[j].Method {
			return aggs[i].Method < aggs[j].Method
		}
		return aggs[i].Granularity < aggs[j].Granularity
	})
	fmt.Fprintf(w, "## %s\n", r.id)
	for _, agg := range aggs {
		keys := r.keys[agg].Sorted()
		fmt.Fprintf(w, "%s: %d splits\n", agg, len(keys))
		for _, key := range keys {
			fmt.Fprintf(w, "  %s\n", formatKey(key))
		}
	}
}

func showData(w io.Writer, title string, data []byte) {
	fmt.Fprintf(w, "## %s (%d bytes)\n", title, len(data))
	fmt.Fprint(w, hex.Dump(data))
}

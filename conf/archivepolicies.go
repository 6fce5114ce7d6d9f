package conf

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/grafana/configparser"
	"github.com/grafana/splitstore/schema"
	"github.com/raintank/dur"
)

// ArchivePolicy is an archive policy together with the pattern of metric ids it applies to
type ArchivePolicy struct {
	schema.ArchivePolicy
	Pattern *regexp.Regexp
}

// ArchivePolicies holds the archive policy definitions
type ArchivePolicies struct {
	Data          []ArchivePolicy
	DefaultPolicy ArchivePolicy
}

// NewArchivePolicies creates an instance of ArchivePolicies holding just the default:
// mean over 5 minute points for 30 days
func NewArchivePolicies() ArchivePolicies {
	return ArchivePolicies{
		Data: make([]ArchivePolicy, 0),
		DefaultPolicy: ArchivePolicy{
			ArchivePolicy: schema.ArchivePolicy{
				Name:               "default",
				AggregationMethods: []schema.Method{schema.Mean},
				Definitions: []schema.ArchivePolicyItem{
					{Granularity: 5 * time.Minute, Points: 8640},
				},
			},
			Pattern: regexp.MustCompile(".*"),
		},
	}
}

// ReadArchivePolicies returns the policies defined in a storage-archive-policies.conf file
// and adds the default
func ReadArchivePolicies(file string) (ArchivePolicies, error) {
	fd, err := os.Open(file)
	if err != nil {
		return ArchivePolicies{}, err
	}
	defer fd.Close()
	return ParseArchivePolicies(fd, file)
}

// ParseArchivePolicies parses policies in ini format. every section is a policy:
//
//	[name]
//	pattern = <regex matched against the metric id>
//	aggregationMethods = mean,max
//	definition = 5min:1d,1h:30d
func ParseArchivePolicies(r io.Reader, path string) (ArchivePolicies, error) {
	config, err := configparser.Read(r, path)
	if err != nil {
		return ArchivePolicies{}, err
	}
	_, sections, err := config.AllSections()
	if err != nil {
		return ArchivePolicies{}, err
	}

	result := NewArchivePolicies()

	for _, s := range sections {
		item := ArchivePolicy{}
		item.Name = strings.Trim(strings.SplitN(s.Name(), "\n", 2)[0], " []")
		if item.Name == "" || strings.HasPrefix(item.Name, "#") {
			continue
		}

		item.Pattern, err = regexp.Compile(s.ValueOf("pattern"))
		if err != nil {
			return ArchivePolicies{}, fmt.Errorf("[%s]: failed to parse pattern %q: %s", item.Name, s.ValueOf("pattern"), err.Error())
		}

		item.AggregationMethods, err = schema.ParseMethods(s.ValueOf("aggregationMethods"))
		if err != nil {
			return ArchivePolicies{}, fmt.Errorf("[%s]: %s", item.Name, err.Error())
		}

		item.Definitions, err = ParseDefinitions(s.ValueOf("definition"))
		if err != nil {
			return ArchivePolicies{}, fmt.Errorf("[%s]: %s", item.Name, err.Error())
		}

		if err := item.Validate(); err != nil {
			return ArchivePolicies{}, fmt.Errorf("[%s]: %s", item.Name, err.Error())
		}

		result.Data = append(result.Data, item)
	}

	return result, nil
}

// ParseDefinitions parses a comma separated list of archive policy items.
// each item is either <seconds per point>:<number of points> (both plain integers),
// or <granularity>:<timespan> using duration notation, e.g. 1min:1d
func ParseDefinitions(defs string) ([]schema.ArchivePolicyItem, error) {
	var items []schema.ArchivePolicyItem
	for _, def := range strings.Split(defs, ",") {
		def = strings.TrimSpace(def)
		if def == "" {
			continue
		}
		parts := strings.Split(def, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad definition %q", def)
		}

		// try plain format
		val1, err1 := strconv.ParseUint(parts[0], 10, 32)
		val2, err2 := strconv.ParseUint(parts[1], 10, 32)
		if err1 == nil && err2 == nil {
			if val1 == 0 || val2 == 0 {
				return nil, fmt.Errorf("bad definition %q: values must be non-zero", def)
			}
			items = append(items, schema.ArchivePolicyItem{
				Granularity: time.Duration(val1) * time.Second,
				Points:      uint32(val2),
			})
			continue
		}

		granularity, err := dur.ParseNDuration(parts[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse granularity in %q: %s", def, err)
		}
		timespan, err := dur.ParseNDuration(parts[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse timespan in %q: %s", def, err)
		}
		if timespan%granularity != 0 {
			return nil, fmt.Errorf("timespan in %q is not a multiple of the granularity", def)
		}
		items = append(items, schema.ArchivePolicyItem{
			Granularity: time.Duration(granularity) * time.Second,
			Points:      timespan / granularity,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no definitions in %q", defs)
	}
	return items, nil
}

// Match returns the archive policy for the given metric id.
// it can always find one, because there's a default catch all
func (a ArchivePolicies) Match(id string) schema.ArchivePolicy {
	for _, p := range a.Data {
		if p.Pattern.MatchString(id) {
			return p.ArchivePolicy
		}
	}
	return a.DefaultPolicy.ArchivePolicy
}

// Get returns the archive policy with the given name
func (a ArchivePolicies) Get(name string) (schema.ArchivePolicy, bool) {
	for _, p := range a.Data {
		if p.Name == name {
			return p.ArchivePolicy, true
		}
	}
	if name == a.DefaultPolicy.Name {
		return a.DefaultPolicy.ArchivePolicy, true
	}
	return schema.ArchivePolicy{}, false
}

// Metric returns the storage view of the metric with the given id
func (a ArchivePolicies) Metric(id string) schema.Metric {
	return schema.NewMetric(id, a.Match(id))
}

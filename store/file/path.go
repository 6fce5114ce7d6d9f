package file

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grafana/splitstore/schema"
)

// on-disk layout:
//
//	<base>/<metric-id>/none[_v<version>]
//	<base>/<metric-id>/agg_<method>/<timestamp>_<granularity>[_v<version>]
//	<base>/tmp/
//
// timestamp and granularity are decimal seconds, e.g. 1425906000.0_300.0_v3
const (
	tmpDirname       = "tmp"
	unaggregatedName = "none"
	aggDirPrefix     = "agg_"
	separator        = "_"
	versionPrefix    = "v"
)

var errSplitNameParts = errors.New("unexpected number of parts in split name")

// Layout builds paths within a base path. it does no I/O.
type Layout struct {
	BasePath string
}

func NewLayout(basePath string) Layout {
	return Layout{BasePath: basePath}
}

func (l Layout) TmpDir() string {
	return filepath.Join(l.BasePath, tmpDirname)
}

func (l Layout) MetricDir(metric schema.Metric) string {
	return filepath.Join(l.BasePath, metric.ID)
}

func (l Layout) UnaggregatedPath(metric schema.Metric, version int) string {
	return filepath.Join(l.MetricDir(metric), unaggregatedName+versionSuffix(version))
}

func (l Layout) AggregationDir(metric schema.Metric, method schema.Method) string {
	return filepath.Join(l.MetricDir(metric), aggDirPrefix+string(method))
}

func (l Layout) SplitPath(metric schema.Metric, method schema.Method, key schema.SplitKey, version int) string {
	return filepath.Join(l.AggregationDir(metric, method), SplitName(key, version))
}

// SplitName is the file name of a split: <timestamp>_<granularity>[_v<version>]
func SplitName(key schema.SplitKey, version int) string {
	return key.String() + separator + schema.FormatTimespan(key.Sampling) + versionSuffix(version)
}

func versionSuffix(version int) string {
	if version == 0 {
		return ""
	}
	return separator + versionPrefix + strconv.Itoa(version)
}

// ParseSplitName is the inverse of SplitName.
// ok is false if the name is not in the requested format version, in which case it is not
// looked at any further. err is set for names that are in the requested version but malformed.
func ParseSplitName(name string, version int) (key schema.SplitKey, ok bool, err error) {
	parts := strings.Split(name, separator)
	last := parts[len(parts)-1]
	if version == 0 {
		if len(parts) > 1 && isVersionTag(last) {
			return key, false, nil
		}
	} else {
		if last != versionPrefix+strconv.Itoa(version) {
			return key, false, nil
		}
		parts = parts[:len(parts)-1]
	}
	if len(parts) != 2 {
		return key, true, errSplitNameParts
	}
	ts, err := schema.ParseSeconds(parts[0])
	if err != nil {
		return key, true, err
	}
	sampling, err := schema.ParseTimespan(parts[1])
	if err != nil {
		return key, true, err
	}
	return schema.SplitKey{Key: ts, Sampling: sampling}, true, nil
}

func isVersionTag(s string) bool {
	if !strings.HasPrefix(s, versionPrefix) {
		return false
	}
	_, err := strconv.Atoi(s[len(versionPrefix):])
	return err == nil
}

// validName reports whether s can be used as a single path element below the base path
func validName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}

package file

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/grafana/globalconf"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

const (
	// CorruptSplitsSkip logs and excludes split files whose name can't be parsed
	CorruptSplitsSkip = "skip"
	// CorruptSplitsFail aborts the listing on the first split file whose name can't be parsed
	CorruptSplitsFail = "fail"
)

type StoreConfig struct {
	BasePath            string
	DirMode             os.FileMode
	CorruptSplits       string
	UnaggregatedVersion int
}

// return StoreConfig with default values set.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		BasePath:            "/var/lib/splitstore",
		DirMode:             0750,
		CorruptSplits:       CorruptSplitsSkip,
		UnaggregatedVersion: 3,
	}
}

// Validate checks the config and expands a leading ~ in the base path
func (c *StoreConfig) Validate() error {
	if c.BasePath == "" {
		return errors.New("file-store: base-path can't be empty")
	}
	path, err := homedir.Expand(c.BasePath)
	if err != nil {
		return fmt.Errorf("file-store: invalid base-path %q: %s", c.BasePath, err.Error())
	}
	c.BasePath = path
	if c.DirMode&0700 != 0700 {
		return fmt.Errorf("file-store: dir-mode %#o must give the owner full access", c.DirMode)
	}
	if c.CorruptSplits != CorruptSplitsSkip && c.CorruptSplits != CorruptSplitsFail {
		return fmt.Errorf("file-store: corrupt-splits must be %q or %q, got %q", CorruptSplitsSkip, CorruptSplitsFail, c.CorruptSplits)
	}
	if c.UnaggregatedVersion < 0 {
		return fmt.Errorf("file-store: unaggregated-version can't be negative, got %d", c.UnaggregatedVersion)
	}
	return nil
}

var CliConfig = NewStoreConfig()

var dirModeStr = "0750"

func ConfigSetup() *flag.FlagSet {
	fileStore := flag.NewFlagSet("file-store", flag.ExitOnError)
	fileStore.StringVar(&CliConfig.BasePath, "base-path", CliConfig.BasePath, "directory holding one sub directory per metric, plus the tmp directory used for atomic writes")
	fileStore.StringVar(&dirModeStr, "dir-mode", dirModeStr, "permissions (octal) of created metric directories")
	fileStore.StringVar(&CliConfig.CorruptSplits, "corrupt-splits", CliConfig.CorruptSplits, "what to do with split files whose name can't be parsed while listing: skip (log and exclude) or fail")
	fileStore.IntVar(&CliConfig.UnaggregatedVersion, "unaggregated-version", CliConfig.UnaggregatedVersion, "format version of unaggregated data files. 0 means unversioned")
	globalconf.Register("file-store", fileStore, flag.ExitOnError)
	return fileStore
}

func ConfigProcess() {
	mode, err := strconv.ParseUint(dirModeStr, 8, 32)
	if err != nil {
		log.Fatalf("file-store: invalid dir-mode %q: %s", dirModeStr, err.Error())
	}
	CliConfig.DirMode = os.FileMode(mode)
	if err := CliConfig.Validate(); err != nil {
		log.Fatal(err.Error())
	}
}

package file

import (
	"os"
	"testing"
)

func TestConfigSetup(t *testing.T) {
	orig, origMode := *CliConfig, dirModeStr
	defer func() {
		*CliConfig, dirModeStr = orig, origMode
	}()

	base := t.TempDir()
	fs := ConfigSetup()
	err := fs.Parse([]string{
		"-base-path", base,
		"-dir-mode", "0700",
		"-corrupt-splits", "fail",
		"-unaggregated-version", "0",
	})
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	ConfigProcess()

	exp := StoreConfig{
		BasePath:            base,
		DirMode:             os.FileMode(0700),
		CorruptSplits:       CorruptSplitsFail,
		UnaggregatedVersion: 0,
	}
	if *CliConfig != exp {
		t.Fatalf("expected %+v, got %+v", exp, *CliConfig)
	}
}

func TestStoreConfigValidate(t *testing.T) {
	type testCase struct {
		mutate func(c *StoreConfig)
		expErr bool
	}
	testCases := []testCase{
		{func(c *StoreConfig) {}, false},
		{func(c *StoreConfig) { c.BasePath = "" }, true},
		{func(c *StoreConfig) { c.DirMode = 0550 }, true},
		{func(c *StoreConfig) { c.CorruptSplits = "ignore" }, true},
		{func(c *StoreConfig) { c.UnaggregatedVersion = -1 }, true},
	}
	for i, c := range testCases {
		config := NewStoreConfig()
		c.mutate(config)
		err := config.Validate()
		if (err != nil) != c.expErr {
			t.Fatalf("case %d: expected error %t, got %v", i, c.expErr, err)
		}
	}
}

package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestTextFormatter(t *testing.T) {
	cases := []struct {
		formatter *TextFormatter
		level     logrus.Level
		msg       string
		data      logrus.Fields
		exp       string
	}{
		{
			&TextFormatter{},
			logrus.InfoLevel,
			"file-store: created metric",
			logrus.Fields{"metric": "42"},
			"2018-01-02 03:04:05.006 [INFO] file-store: created metric metric=42\n",
		},
		{
			&TextFormatter{DisableTimestamp: true, ModuleName: "mt-splits"},
			logrus.WarnLevel,
			"corrupt split",
			logrus.Fields{"file": "abc_60.0", "method": "mean", "error": errors.New("invalid seconds value")},
			"[WARNING] [mt-splits] corrupt split error=\"invalid seconds value\" file=abc_60.0 method=mean\n",
		},
		{
			&TextFormatter{DisableTimestamp: true, QuoteEmptyFields: true},
			logrus.DebugLevel,
			"x",
			logrus.Fields{"empty": "", "n": 3, "d": time.Second},
			"[DEBUG] x d=1s empty=\"\" n=3\n",
		},
	}
	for i, c := range cases {
		entry := &logrus.Entry{
			Time:    time.Date(2018, 1, 2, 3, 4, 5, 6000000, time.UTC),
			Level:   c.level,
			Message: c.msg,
			Data:    c.data,
		}
		got, err := c.formatter.Format(entry)
		if err != nil {
			t.Fatalf("case %d: expected no error, got %s", i, err)
		}
		if string(got) != c.exp {
			t.Fatalf("case %d: expected %q, got %q", i, c.exp, string(got))
		}
	}
}

func TestSetup(t *testing.T) {
	if err := Setup("test", "debug"); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logrus.GetLevel())
	}
	if err := Setup("test", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	logrus.SetLevel(logrus.InfoLevel)
}

package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range newRootCmd().Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "recompute-streaks"} {
		if !names[want] {
			t.Errorf("expected %s subcommand", want)
		}
	}
}

func TestMigrateAndRecompute(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "habit-hub.db"))
	t.Setenv("LOG_FILE", "")
	t.Setenv("TIMEZONE", "UTC")

	for _, test := range []struct {
		args []string
		want string
	}{
		{[]string{"migrate"}, "database is up to date"},
		{[]string{"recompute-streaks"}, "updated 0 routine(s)"},
	} {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(test.args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", test.args, err)
		}
		if !strings.Contains(out.String(), test.want) {
			t.Errorf("%v: expected %q, got %q", test.args, test.want, out.String())
		}
	}
}

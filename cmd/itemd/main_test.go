package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/getmockd/itemd/pkg/cli"
	"github.com/getmockd/itemd/pkg/engine"
)

// TestMain lets testscript invoke the CLI in-process as the "itemd" command.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"itemd": cli.Main,
	}))
}

func TestScripts(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	server := engine.NewServer(cfg)
	if err := server.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Scripts run as parallel subtests, which only start once this function returns.
	t.Cleanup(func() { _ = server.Stop() })

	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("ITEMD_URL", "http://"+server.Addr())
			return nil
		},
	})
}

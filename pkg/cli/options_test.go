package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/funvibe/monadic/internal/config"
)

func TestParseOptions(t *testing.T) {
	o, err := parseOptions([]string{
		"-m", "list", "--config=c.yaml", "--context", "ctx.yaml", "--trace-db", "t.db",
		"--addr", ":9000", "--state", "[1, 2]", "--take", "3", "--watch", "-v", "--no-color",
		"script.mds", "--", "-literal",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := &options{
		capability:  "list",
		configPath:  "c.yaml",
		contextFile: "ctx.yaml",
		traceDB:     "t.db",
		addr:        ":9000",
		state:       "[1, 2]",
		take:        3,
		watch:       true,
		verbose:     true,
		noColor:     true,
		args:        []string{"script.mds", "-literal"},
	}
	if !reflect.DeepEqual(o, want) {
		t.Errorf("parseOptions:\n got %+v\nwant %+v", o, want)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "monadic.yaml"), []byte("capability: seq\ntake: 4\ncontext:\n  a: 1\n  b: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := (&options{}).loadConfig(sub)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Capability != config.SeqCapability || cfg.Take != 4 {
		t.Errorf("config found upward not applied: %+v", cfg)
	}

	ctxFile := filepath.Join(dir, "ctx.yaml")
	if err := os.WriteFile(ctxFile, []byte("b: 20\nc: [x, y]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	o := &options{capability: "list", take: 9, verbose: true, contextFile: ctxFile}
	cfg, err = o.loadConfig(sub)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Capability != config.ListCapability || cfg.Take != 9 || !cfg.Verbose {
		t.Errorf("flags did not override: %+v", cfg)
	}

	vars, err := o.initialContext(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{"a": "1", "b": "20", "c": `["x", "y"]`} {
		v, ok := vars.Get(name)
		if !ok {
			t.Errorf("%s missing from context", name)
			continue
		}
		if v.Inspect() != want {
			t.Errorf("%s = %s, want %s", name, v.Inspect(), want)
		}
	}
}

func TestInitialState(t *testing.T) {
	v, err := (&options{state: "{n: 1}"}).initialState()
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || v.Type() != "RECORD" {
		t.Errorf("state = %v", v)
	}
	if v, err := (&options{}).initialState(); v != nil || err != nil {
		t.Errorf("absent state = %v, %v", v, err)
	}
	if _, err := (&options{state: "[unclosed"}).initialState(); err == nil {
		t.Error("expected a parse error")
	}
}

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/evaluator"
)

// options holds the flags shared by every command. Empty fields fall
// back to monadic.yaml, then to the built-in defaults.
type options struct {
	capability  string
	configPath  string
	contextFile string
	traceDB     string
	addr        string
	state       string // YAML literal
	eval        string // script text given with -e
	take        int
	watch       bool
	verbose     bool
	noColor     bool
	args        []string
}

func parseOptions(args []string) (*options, error) {
	o := &options{}
	for i := 0; i < len(args); i++ {
		arg := args[i]

		// --flag=value
		inline, hasInline := "", false
		if strings.HasPrefix(arg, "--") {
			if eq := strings.IndexByte(arg, '='); eq > 0 {
				arg, inline, hasInline = arg[:eq], arg[eq+1:], true
			}
		}
		value := func() (string, error) {
			if hasInline {
				return inline, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		var err error
		switch arg {
		case "-m", "--capability":
			o.capability, err = value()
		case "--config":
			o.configPath, err = value()
		case "--context":
			o.contextFile, err = value()
		case "--trace-db":
			o.traceDB, err = value()
		case "--addr":
			o.addr, err = value()
		case "--state":
			o.state, err = value()
		case "-e", "--eval":
			o.eval, err = value()
		case "--take":
			var s string
			if s, err = value(); err == nil {
				o.take, err = strconv.Atoi(s)
				if err == nil && o.take <= 0 {
					err = fmt.Errorf("--take must be positive")
				}
			}
		case "--watch":
			o.watch = true
		case "-v", "--verbose":
			o.verbose = true
		case "--no-color":
			o.noColor = true
		case "--":
			o.args = append(o.args, args[i+1:]...)
			return o, nil
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return nil, fmt.Errorf("unknown flag %s", arg)
			}
			o.args = append(o.args, arg)
		}
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

// loadConfig finds monadic.yaml (an explicit --config wins over the
// search from dir) and applies the flag overrides.
func (o *options) loadConfig(dir string) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		found, err := config.FindConfig(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if o.capability != "" {
		cfg.Capability = o.capability
	}
	if o.traceDB != "" {
		cfg.TraceDB = o.traceDB
	}
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if o.take > 0 {
		cfg.Take = o.take
	}
	if o.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// contextMap merges the config file's context with the --context file.
func (o *options) contextMap(cfg *config.Config) (map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(cfg.Context))
	for k, v := range cfg.Context {
		vars[k] = v
	}
	if o.contextFile == "" {
		return vars, nil
	}

	data, err := os.ReadFile(o.contextFile)
	if err != nil {
		return nil, fmt.Errorf("reading context %s: %w", o.contextFile, err)
	}
	var extra map[string]interface{}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing context %s: %w", o.contextFile, err)
	}
	for k, v := range extra {
		vars[k] = v
	}
	return vars, nil
}

func (o *options) initialContext(cfg *config.Config) (*evaluator.Context, error) {
	vars, err := o.contextMap(cfg)
	if err != nil {
		return nil, err
	}
	return evaluator.ContextFromMap(vars)
}

// stateValue decodes --state. ok is false when the flag is absent.
func (o *options) stateValue() (v interface{}, ok bool, err error) {
	if o.state == "" {
		return nil, false, nil
	}
	if err := yaml.Unmarshal([]byte(o.state), &v); err != nil {
		return nil, false, fmt.Errorf("parsing --state: %w", err)
	}
	return v, true, nil
}

func (o *options) initialState() (evaluator.Object, error) {
	v, ok, err := o.stateValue()
	if err != nil || !ok {
		return nil, err
	}
	return evaluator.FromGo(v)
}

package evaluator

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/monadic/internal/config"
)

// yamlDecode parses a YAML document into runtime values.
// Maps become Records, sequences become Lists, scalars become
// Integer/Float/Boolean/String/Nil as appropriate.
func yamlDecode(content string) (Object, error) {
	var data interface{}
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("YAML parse error: %v", err)
	}
	return FromGo(data)
}

// DecodeContext parses a YAML mapping into a script context, for
// initial variables given on the command line. Keys keep document order.
func DecodeContext(content []byte) (*Context, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %v", err)
	}
	ctx := NewContext()
	if len(doc.Content) == 0 {
		return ctx, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("context must be a YAML mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		var value interface{}
		if err := root.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("context %s: %v", root.Content[i].Value, err)
		}
		obj, err := FromGo(value)
		if err != nil {
			return nil, fmt.Errorf("context %s: %v", root.Content[i].Value, err)
		}
		ctx = ctx.With(root.Content[i].Value, obj)
	}
	return ctx, nil
}

// YamlBuiltins returns the YAML helpers visible to scripts.
func YamlBuiltins() []*Builtin {
	return []*Builtin{{Name: config.YamlDecodeFuncName, Fn: builtinYamlDecode}}
}

func builtinYamlDecode(args ...Object) (Object, error) {
	if err := checkArgs(config.YamlDecodeFuncName, args, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(*String)
	if !ok {
		return nil, fmt.Errorf("yaml_decode expects a STRING, got %s", getTypeName(args[0]))
	}
	return yamlDecode(s.Value)
}

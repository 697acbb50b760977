// internal/cli/config.go
package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"chromosearch/internal/common"
)

// configAliases maps configuration keys that are not spelled like their flag.
var configAliases = map[string]string{
	"substitution_scheme": "substitution",
	"worker_count":        "threads",
	"correction_method":   "correction",
}

// ApplyConfigFile reads a flat TOML document and sets every flag that was
// not given on the command line. Keys are flag names with '_' in place of
// '-'. Unknown keys, nested tables and values a flag rejects are
// *common.ConfigurationError.
func ApplyConfigFile(fs *pflag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.Configf("config", "%v", err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return common.Configf("config", "%s: %v", path, err)
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		name, ok := configAliases[key]
		if !ok {
			name = strings.ReplaceAll(key, "_", "-")
		}
		f := fs.Lookup(name)
		if f == nil || name == "config" {
			return common.Configf("config", "%s: unknown key %q", path, key)
		}
		if f.Changed {
			continue
		}
		var val string
		switch v := doc[key].(type) {
		case map[string]any, []any:
			return common.Configf("config", "%s: key %q must be a scalar", path, key)
		case string:
			val = v
		default:
			val = fmt.Sprint(v)
		}
		if err := f.Value.Set(val); err != nil {
			return common.Configf(name, "config value %q: %v", val, err)
		}
	}
	return nil
}

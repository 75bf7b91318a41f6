package compiler

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional `epl.yaml` project file (§10.3): default C
// compiler invocation and default output name. CLI flags always take
// precedence over values loaded here.
type Config struct {
	CC      string   `yaml:"cc"`
	CCFlags []string `yaml:"cc_flags"`
	Output  string   `yaml:"output"`
}

// DefaultConfig mirrors original_source/compiler.py's hardcoded
// `['gcc', src, '-o', dst, '-I.']` invocation.
func DefaultConfig() Config {
	return Config{CC: "gcc", CCFlags: []string{"-I."}}
}

// LoadConfig reads path if it exists, merging any set fields over
// DefaultConfig. A missing file is not an error (§10.3).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, err
	}
	if fileCfg.CC != "" {
		cfg.CC = fileCfg.CC
	}
	if len(fileCfg.CCFlags) > 0 {
		cfg.CCFlags = fileCfg.CCFlags
	}
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	return cfg, nil
}

package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
)

// configFile is the TOML layout of a kanon config file.
type configFile struct {
	Anonymize struct {
		Algorithm   string `toml:"algorithm"`
		K           int    `toml:"k"`
		MaxAttempts int    `toml:"max_attempts"`
		Unbounded   bool   `toml:"unbounded"`
		Noise       int    `toml:"noise"`
		Seed        uint64 `toml:"seed"`
		NodeBudget  int    `toml:"node_budget"`
	} `toml:"anonymize"`
	Input struct {
		Delimiter string `toml:"delimiter"`
		Comment   string `toml:"comment"`
		ParseTags bool   `toml:"parse_tags"`
	} `toml:"input"`
	Output struct {
		Format   string `toml:"format"`
		Detailed bool   `toml:"detailed"`
	} `toml:"output"`
}

// LoadConfig reads Options from a TOML file. Fields the file does not set
// stay zero so that defaults and flags can fill them later.
func LoadConfig(path string) (Options, error) {
	if err := kerrors.ValidateFilePath(path); err != nil {
		return Options{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Options{}, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Options{}, kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML config data. Unknown keys are rejected, and so is
// an explicit k below 1.
func ParseConfig(data []byte) (Options, error) {
	var cfg configFile
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Options{}, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, kerrors.New(kerrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	// A zero k in Options means unset, so an explicit one must fail here.
	if md.IsDefined("anonymize", "k") {
		if err := kerrors.ValidateK(cfg.Anonymize.K); err != nil {
			return Options{}, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "config anonymize.k")
		}
	}

	return Options{
		Algorithm:   cfg.Anonymize.Algorithm,
		K:           cfg.Anonymize.K,
		MaxAttempts: cfg.Anonymize.MaxAttempts,
		Unbounded:   cfg.Anonymize.Unbounded,
		Noise:       cfg.Anonymize.Noise,
		Seed:        cfg.Anonymize.Seed,
		NodeBudget:  cfg.Anonymize.NodeBudget,
		Delimiter:   cfg.Input.Delimiter,
		Comment:     cfg.Input.Comment,
		ParseTags:   cfg.Input.ParseTags,
		Format:      cfg.Output.Format,
		Detailed:    cfg.Output.Detailed,
	}, nil
}

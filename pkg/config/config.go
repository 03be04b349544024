package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/integrity"
	"github.com/arthur-debert/mflash/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "MFLASH_"

// FileNames are the configuration files looked up in the firmware directory
var FileNames = []string{".mflash.toml", "mflash.toml"}

// Config is the effective mflash configuration
type Config struct {
	Tool          string    `koanf:"tool" toml:"tool"`
	Document      string    `koanf:"document" toml:"document"`
	FlashDocument string    `koanf:"flash_document" toml:"flash_document"`
	Integrity     Integrity `koanf:"integrity" toml:"integrity"`
	Output        Output    `koanf:"output" toml:"output"`

	// Source is the configuration file that was loaded, if any
	Source string `koanf:"-" toml:"-"`
}

// Integrity configures digest verification
type Integrity struct {
	Enabled   bool   `koanf:"enabled" toml:"enabled"`
	Algorithm string `koanf:"algorithm" toml:"algorithm"`
}

// Output configures progress rendering
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Default returns the embedded defaults
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load layers defaults, the firmware directory's config file and the
// environment. firmwareDir may be empty to skip the file lookup.
func Load(firmwareDir string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	source := ""
	if firmwareDir != "" {
		for _, name := range FileNames {
			path := filepath.Join(firmwareDir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			source = path
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = source

	logger.Debug().
		Str("source", source).
		Str("tool", cfg.Tool).
		Bool("integrity", cfg.Integrity.Enabled).
		Msg("Configuration loaded")
	return cfg, nil
}

// Override applies explicit values, typically from flags, on top of cfg
func Override(cfg *Config, values map[string]interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(ToMap(cfg), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load configuration")
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to apply overrides")
	}
	out, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	out.Source = cfg.Source
	return out, nil
}

// ToMap flattens cfg into koanf keys
func ToMap(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"tool":                cfg.Tool,
		"document":            cfg.Document,
		"flash_document":      cfg.FlashDocument,
		"integrity.enabled":   cfg.Integrity.Enabled,
		"integrity.algorithm": cfg.Integrity.Algorithm,
		"output.format":       cfg.Output.Format,
	}
}

// ToTOML renders cfg as a TOML document
func ToTOML(cfg *Config) ([]byte, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}

// Validate checks the values the interpreter depends on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tool) == "" {
		return errors.New(errors.ErrConfigValid, "tool cannot be empty")
	}
	if strings.TrimSpace(c.Document) == "" {
		return errors.New(errors.ErrConfigValid, "document cannot be empty")
	}
	if strings.TrimSpace(c.FlashDocument) == "" {
		return errors.New(errors.ErrConfigValid, "flash_document cannot be empty")
	}
	if _, err := integrity.NewChecker(c.Integrity.Algorithm); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid integrity.algorithm")
	}
	return nil
}

// envKey maps MFLASH_INTEGRITY__ENABLED to integrity.enabled
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

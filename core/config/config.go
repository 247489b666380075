package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"locsync/core/logger"
	"locsync/core/storage"
)

// Config holds all configuration for one subproject. Every component takes
// the resolved value it needs as an argument; nothing reads ambient state.
type Config struct {
	// Paths holds the corpus directory layout.
	Paths PathsConfig `mapstructure:"paths"`
	// Run holds batch execution settings.
	Run RunConfig `mapstructure:"run"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Remote holds configuration for the optional bucket mirror.
	Remote storage.Config `mapstructure:"remote"`
}

// PathsConfig is the corpus directory layout of a subproject. Relative
// values are resolved against the project root.
type PathsConfig struct {
	// UpstreamDB is the reference (original-language) shard directory.
	UpstreamDB string `mapstructure:"upstream_db" default:"_upstream/en/text/db"`
	// TranslationDB is the main translation shard directory.
	TranslationDB string `mapstructure:"translation_db" default:"translation/text/db"`
	// PatchDB is the optional secondary-source shard directory.
	PatchDB string `mapstructure:"patch_db" default:""`
	// ObsoleteDir receives per-shard archive snapshots of removed keys.
	ObsoleteDir string `mapstructure:"obsolete_dir" default:"_obsolete"`
	// TempDir holds dedup worksheets and other scratch output.
	TempDir string `mapstructure:"temp_dir" default:"_temp"`
	// MasterFile is the flat localisation master table for split runs.
	MasterFile string `mapstructure:"master_file" default:""`
	// SplitDir is the output directory for split runs.
	SplitDir string `mapstructure:"split_dir" default:""`
	// LuaFile is the Lua source patched by the luapatch command.
	LuaFile string `mapstructure:"lua_file" default:"lua_scripts/frontend_strings.lua"`
	// Dst is the sync destination (usually per-user, no default).
	Dst string `mapstructure:"dst" default:""`
}

// RunConfig holds batch execution settings.
type RunConfig struct {
	// Workers bounds the per-shard worker pool of batch commands.
	Workers int `mapstructure:"workers" default:"4"`
}

// LoadConfig loads configuration for the subproject rooted at root: the
// project's .env file first (if present), then environment variables, with
// struct-tag defaults underneath. Relative paths come back resolved
// against root.
func LoadConfig(root string) (*Config, error) {
	envPath := filepath.Join(root, ".env")

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. PATHS_UPSTREAM_DB -> paths.upstream_db)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.resolvePaths(root)

	return &config, nil
}

// resolvePaths anchors every configured relative path at the project root.
// Optional paths left empty stay empty.
func (c *Config) resolvePaths(root string) {
	fields := []*string{
		&c.Paths.UpstreamDB,
		&c.Paths.TranslationDB,
		&c.Paths.PatchDB,
		&c.Paths.ObsoleteDir,
		&c.Paths.TempDir,
		&c.Paths.MasterFile,
		&c.Paths.SplitDir,
		&c.Paths.LuaFile,
		&c.Paths.Dst,
	}
	for _, f := range fields {
		if *f == "" || filepath.IsAbs(*f) {
			continue
		}
		*f = filepath.Join(root, *f)
	}
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}

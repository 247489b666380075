// Package config provides configuration management for a localization
// subproject.
//
// It utilizes Viper for loading configuration from environment variables
// and the subproject's .env file (loaded via godotenv), with defaults
// declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided
// into subsections:
//   - Paths: corpus directory layout (upstream, translation, patch,
//     obsolete, temp, master file, split output, sync destination)
//   - Run: batch execution settings (worker pool size)
//   - Log: logging level and format
//   - Remote: S3/MinIO credentials for the optional bucket mirror
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Paths.UpstreamDB)
//
// LoadConfig resolves relative paths against the given project root, so a
// component never has to consult the working directory or environment
// itself.
package config

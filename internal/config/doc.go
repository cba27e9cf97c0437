// Package config provides loading and environment overlay for revad
// engine configuration. It exposes a Default() baseline, file loading
// by extension, and a helper to construct tape.Options for the engine.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load("/etc/revad.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	t := tape.NewWithOptions(cfg.Options())
package config

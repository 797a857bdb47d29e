package config

import "github.com/fox-one/pkg/config"

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	config.AutomaticLoadEnv("LEVER")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaultApp(cfg)
	return nil
}

func defaultApp(cfg *Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.App.Port == 0 {
		cfg.App.Port = 9000
	}
}

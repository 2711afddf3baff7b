package clan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	clansDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewConfigCache(clansDir string) *ConfigCache {
	return &ConfigCache{
		clansDir: clansDir,
		cache:    make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.clansDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.clansDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive clan name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		clanName := fileName[:len(fileName)-4]

		config, err := cc.LoadConfig(clanName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "clan", clanName, "enabled", config.Settings.Enabled, "refresh_interval", config.Settings.RefreshInterval)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(clanName string) (*Config, error) {
	configFile := cc.getConfigFilePath(clanName)
	clanConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	// Set config name from parameter
	clanConfig.Name = clanName

	if err := cc.validateConfig(clanConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	// Store in cache
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[clanConfig.Name] = clanConfig

	return clanConfig, nil
}

func (cc *ConfigCache) GetConfig(clanName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	clanConfig, ok := cc.cache[clanName]
	if !ok {
		return nil, fmt.Errorf("clan config with name '%s' not found", clanName)
	}
	return clanConfig, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(cc.cache))
	for k, v := range cc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (cc *ConfigCache) GetEnabledConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabledConfigs := make(map[string]*Config)
	for k, v := range cc.cache {
		if v.Settings.Enabled {
			enabledConfigs[k] = v
		}
	}
	return enabledConfigs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var clanConfig Config
	if err := yaml.Unmarshal(data, &clanConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if clanConfig.Settings.RefreshInterval == 0 {
		clanConfig.Settings.RefreshInterval = 900
	}
	if clanConfig.Settings.Activities == 0 {
		clanConfig.Settings.Activities = 20
	}
	if clanConfig.Settings.RecencyDays == 0 {
		clanConfig.Settings.RecencyDays = 30
	}

	return &clanConfig, nil
}

func (cc *ConfigCache) validateConfig(clanConfig *Config) error {
	if clanConfig == nil {
		return fmt.Errorf("clanConfig is nil")
	}

	requiredFields := map[string]string{
		"config name": clanConfig.Name,
		"clan name":   clanConfig.Clan,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"refresh interval": clanConfig.Settings.RefreshInterval,
		"activities":       clanConfig.Settings.Activities,
		"recency days":     clanConfig.Settings.RecencyDays,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(clanName string) string {
	return filepath.Join(cc.clansDir, clanName+".yml")
}

// Package config loads plistdecode settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/0x6d61/plistdecode/internal/decode"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// IPSWPathEnv は ipsw_path を上書きする環境変数
const IPSWPathEnv = "IPSW_PATH"

// UIConfig は表示まわりの設定
type UIConfig struct {
	Plain bool `yaml:"plain"` // true: TUI を使わずプレーンテキストで出力
}

// WatchConfig は -watch モードの設定
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// AppConfig は config/config.yaml の統合設定構造
type AppConfig struct {
	IPSWPath    string      `yaml:"ipsw_path"`
	AtomicWrite bool        `yaml:"atomic_write"`
	LogFile     string      `yaml:"log_file"`
	UI          UIConfig    `yaml:"ui"`
	Watch       WatchConfig `yaml:"watch"`
}

// applyDefaults はゼロ値のフィールドにデフォルト値を適用する
func (c *AppConfig) applyDefaults() {
	if strings.TrimSpace(c.IPSWPath) == "" {
		c.IPSWPath = decode.DefaultTool
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = 300
	}
}

// Load は config/config.yaml を読み込む。
// ${VAR} 環境変数を展開し、IPSW_PATH が設定されていればファイルの値より優先する。
// ファイルが存在しない場合はデフォルトの AppConfig を返す。
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// デフォルトのみ
	default:
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	// 環境変数を展開（ipsw_path / log_file の ${VAR}）
	cfg.IPSWPath = expandEnvString(cfg.IPSWPath)
	cfg.LogFile = expandEnvString(cfg.LogFile)

	if v := strings.TrimSpace(os.Getenv(IPSWPathEnv)); v != "" {
		cfg.IPSWPath = v
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadDotEnv は .env ファイルを読み込み、未設定の環境変数だけを埋める。
// ファイルが存在しない場合は何もしない。
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

// expandEnvString は文字列内の ${VAR} をホスト環境変数で展開する
func expandEnvString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

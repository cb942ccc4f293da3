package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileName = "config.json"

// Config — настройки транслятора, хранящиеся в JSON файле.
type Config struct {
	// LogPath — путь к console.log игры.
	LogPath string `json:"log_path"`
	// GameCfgDir — каталог cfg игры, куда пишется translate_say.cfg.
	GameCfgDir string `json:"game_cfg_dir"`
	// BindKey — клавиша, на которую забинжен exec файла с ответом.
	BindKey string `json:"bind_key"`
	// TargetLang — язык консольной проекции и значение по умолчанию для _tl.
	TargetLang string `json:"target_lang"`
	// ForceRussian включает эвристику принудительного русского источника.
	ForceRussian bool `json:"force_russian"`
	// PostgresDSN включает архив переводов; пустая строка — архив выключен.
	PostgresDSN string `json:"postgres_dsn,omitempty"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
// Пути обязаны быть заполнены пользователем до запуска наблюдения.
func Default() Config {
	return Config{
		BindKey:      "=",
		TargetLang:   "en",
		ForceRussian: true,
	}
}

// Dir возвращает каталог конфигурации инструмента.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: user config dir: %w", err)
	}
	return filepath.Join(base, "cs-chat-translate"), nil
}

// Path возвращает путь к файлу конфигурации внутри каталога dir.
func Path(dir string) string {
	return filepath.Join(dir, fileName)
}

// Load читает и валидирует конфигурацию из каталога dir.
func Load(dir string) (Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return Config{}, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode json: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.LogPath) == "" {
		return fmt.Errorf("config: требуется log_path")
	}
	if strings.TrimSpace(c.GameCfgDir) == "" {
		return fmt.Errorf("config: требуется game_cfg_dir")
	}
	if strings.TrimSpace(c.BindKey) == "" {
		return fmt.Errorf("config: требуется bind_key")
	}
	if strings.TrimSpace(c.TargetLang) == "" {
		return fmt.Errorf("config: требуется target_lang")
	}
	return nil
}

// Save сохраняет конфигурацию в каталоге dir.
func Save(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode json: %w", err)
	}

	if err := os.WriteFile(Path(dir), append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("config: write file: %w", err)
	}
	return nil
}

// Init создаёт файл конфигурации по умолчанию; существующий не трогает.
func Init(dir string) error {
	if _, err := os.Stat(Path(dir)); err == nil {
		return fmt.Errorf("config: файл %s уже существует", Path(dir))
	}
	return Save(dir, Default())
}

// Update загружает конфигурацию (или значения по умолчанию, если файла
// ещё нет), применяет fn и сохраняет. Валидация не выполняется: пути
// можно задавать по одному.
func Update(dir string, fn func(*Config)) error {
	cfg := Default()
	if data, err := os.ReadFile(Path(dir)); err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("config: decode json: %w", err)
		}
	}

	fn(&cfg)
	return Save(dir, cfg)
}

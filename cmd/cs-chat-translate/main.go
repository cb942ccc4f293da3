package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"cs-chat-translate/config"
	"cs-chat-translate/dispatch"
	"cs-chat-translate/game"
	"cs-chat-translate/service"
	"cs-chat-translate/storage"
	"cs-chat-translate/translate"
)

var (
	initConfig bool
	setLogPath string
	setCfgDir  string
	setBindKey string
)

var rootCmd = &cobra.Command{
	Use:   "cs-chat-translate",
	Short: "Переводчик игрового чата: следит за console.log и отвечает в игру",
	Long: `cs-chat-translate читает дозаписываемый console.log, разбирает строки
чата, выполняет команды tm_<код>, _tl и code <запрос> и отправляет переводы
обратно в игру через cfg-файл и нажатие бинда.

Без флагов запускается режим наблюдения.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&initConfig, "init-config", false, "создать конфигурацию по умолчанию и выйти")
	rootCmd.Flags().StringVar(&setLogPath, "set-log-path", "", "сохранить путь к console.log и выйти")
	rootCmd.Flags().StringVar(&setCfgDir, "set-cfg-dir", "", "сохранить каталог cfg игры и выйти")
	rootCmd.Flags().StringVar(&setBindKey, "set-bind-key", "", "сохранить клавишу бинда и выйти")
}

func run(_ *cobra.Command, _ []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	if initConfig {
		if err := config.Init(dir); err != nil {
			return err
		}
		log.Printf("конфигурация создана: %s", config.Path(dir))
		return nil
	}

	if setLogPath != "" || setCfgDir != "" || setBindKey != "" {
		err := config.Update(dir, func(c *config.Config) {
			if setLogPath != "" {
				c.LogPath = setLogPath
			}
			if setCfgDir != "" {
				c.GameCfgDir = setCfgDir
			}
			if setBindKey != "" {
				c.BindKey = setBindKey
			}
		})
		if err != nil {
			return err
		}
		log.Printf("конфигурация обновлена: %s", config.Path(dir))
		return nil
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("загрузка конфигурации: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	resolver := translate.NewResolver(translate.NewGoogleClient(), cfg.TargetLang, cfg.ForceRussian, os.Stdout)
	sink := game.NewSink(cfg.GameCfgDir, cfg.BindKey, game.XdotoolPresser{})

	var archiver dispatch.Archiver
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("pgxpool.New: %w", err)
		}
		defer pool.Close()
		archiver = storage.NewBatcher(ctx, pool, storage.DefaultBatchConfig())
	}

	dispatcher := dispatch.NewDispatcher(resolver, sink, archiver)
	srv := service.New(cfg.LogPath, dispatcher)

	log.Printf("наблюдение за %s (цель перевода: %s)", cfg.LogPath, cfg.TargetLang)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Println("shutting down...")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

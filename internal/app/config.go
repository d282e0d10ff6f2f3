package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-todo-board/internal/config"
	"github.com/adanyl0v/go-todo-board/internal/locale"
)

var globalTranslator *locale.Translator

// MustReadEnv loads the configuration from path, or from the
// environment alone when path is empty.
func MustReadEnv(path string) {
	cfg, err := config.NewReader(path).Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to read config")
		panic(err)
	}
	globalLogger.Debug().
		Str("env", cfg.Env).
		Msg("read config")

	config.SetGlobal(cfg)
}

func MustInitTranslator() {
	lang := config.Global().Language
	t, err := locale.New(lang)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("language", lang).
			Msg("failed to load translations")
		panic(err)
	}
	globalLogger.Debug().
		Str("language", t.Language()).
		Msg("loaded translations")

	globalTranslator = t
}

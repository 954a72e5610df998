package config

import (
	stderrors "errors"
	"io/fs"
	"path"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kochabx/dashkit/core/tag"
	"github.com/kochabx/dashkit/core/validator"
	"github.com/kochabx/dashkit/errors"
	"github.com/kochabx/dashkit/log"
)

// FileLoader loads configuration from file
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	optional bool
}

// NewFileLoader searches paths for a file called name
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator) *FileLoader {
	for _, configPath := range paths {
		v.AddConfigPath(configPath)
	}

	v.SetConfigName(name)
	v.SetConfigType(strings.TrimPrefix(path.Ext(name), "."))

	return newFileLoader(v, validate)
}

// NewExplicitFileLoader reads the file at filePath
func NewExplicitFileLoader(filePath string, v *viper.Viper, validate validator.Validator) *FileLoader {
	v.SetConfigFile(filePath)
	return newFileLoader(v, validate)
}

func newFileLoader(v *viper.Viper, validate validator.Validator) *FileLoader {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{
		viper:    v,
		validate: validate,
	}
}

// Load implements Loader interface
func (l *FileLoader) Load(target any) error {
	// defaults first so keys missing from the file keep them
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.New(500, "failed to apply defaults: %v", err)
	}

	if err := l.viper.ReadInConfig(); err != nil {
		if !l.optional || !isNotFound(err) {
			return errors.New(404, "config file not found: %v", err)
		}
		log.Debug().Err(err).Msg("no config file, using defaults")
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return errors.New(500, "config parse error: %v", err)
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.New(400, "config validation failed: %v", err)
		}
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound) || stderrors.Is(err, fs.ErrNotExist)
}

// Watch implements Loader interface
func (l *FileLoader) Watch(callback func()) error {
	l.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("file", e.Name).Str("op", e.Op.String()).Msg("config file event")
		if callback != nil {
			callback()
		}
	})

	l.viper.WatchConfig()
	return nil
}

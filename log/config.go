package log

import (
	"github.com/kochabx/dashkit/log/writer"
)

// Output selects where log lines go
type Output string

const (
	OutputConsole Output = "console"
	OutputFile    Output = "file"
	OutputBoth    Output = "both"
)

// Config is the logging section of the settings file
type Config struct {
	Level       string `json:"level" mapstructure:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Output      Output `json:"output" mapstructure:"output" default:"console" validate:"oneof=console file both"`
	Desensitize bool   `json:"desensitize" mapstructure:"desensitize" default:"true"`
	// Caller adds file:line to every line
	Caller bool       `json:"caller" mapstructure:"caller"`
	File   FileConfig `json:"file" mapstructure:"file"`
}

// FileConfig describes the rotated log file
type FileConfig struct {
	Filepath   string            `json:"filepath" mapstructure:"filepath" default:"log"`
	Filename   string            `json:"filename" mapstructure:"filename" default:"dashkit"`
	FileExt    string            `json:"file_ext" mapstructure:"file_ext" default:"log"`
	RotateMode writer.RotateMode `json:"rotate_mode" mapstructure:"rotate_mode" default:"size" validate:"oneof=time size"`
	// time rotation, hours
	MaxAgeHours  int `json:"max_age_hours" mapstructure:"max_age_hours" default:"24"`
	RotationTime int `json:"rotation_time" mapstructure:"rotation_time" default:"1"`
	// size rotation
	MaxSizeMB  int  `json:"max_size_mb" mapstructure:"max_size_mb" default:"100"`
	MaxBackups int  `json:"max_backups" mapstructure:"max_backups" default:"5"`
	MaxAgeDays int  `json:"max_age_days" mapstructure:"max_age_days" default:"30"`
	Compress   bool `json:"compress" mapstructure:"compress"`
}

func (c *FileConfig) toWriterConfig() writer.RotateConfig {
	return writer.RotateConfig{
		Filepath: c.Filepath,
		Filename: c.Filename,
		FileExt:  c.FileExt,
		Mode:     c.RotateMode,
		TimeRotateConfig: writer.TimeRotateConfig{
			MaxAge:       c.MaxAgeHours,
			RotationTime: c.RotationTime,
		},
		SizeRotateConfig: writer.SizeRotateConfig{
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
			Compress:   c.Compress,
		},
	}
}

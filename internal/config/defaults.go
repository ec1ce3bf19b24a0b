package config

const (
	defaultConfigPath       = "~/.config/audiocat/config.toml"
	projectConfigName       = "audiocat.toml"
	defaultLogDir           = "~/.local/share/audiocat/logs"
	defaultOutput           = "audio_metadata.jsonl"
	defaultDatabase         = "~/.local/share/audiocat/archive.db"
	defaultYearMin          = 1900
	defaultYearMax          = 2099
	defaultFFprobeBinary    = "ffprobe"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogMaxSizeMB     = 20
	defaultLogMaxBackups    = 5
	defaultLogRetentionDays = 30
)

// DefaultExtensions lists the audio containers scanned when none are configured.
var DefaultExtensions = []string{".mp3", ".m4a", ".m4b", ".aac", ".mp4", ".flac", ".ogg"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			Output:   defaultOutput,
			Database: defaultDatabase,
		},
		Scan: Scan{
			Extensions: append([]string(nil), DefaultExtensions...),
			YearMin:    defaultYearMin,
			YearMax:    defaultYearMax,
		},
		Probe: Probe{
			Enabled:       true,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

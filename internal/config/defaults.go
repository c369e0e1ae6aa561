package config

const (
	defaultConfigPath    = "~/.config/sidmatch/config.toml"
	projectConfigName    = "sidmatch.toml"
	defaultDelimiter     = ","
	defaultPreviewRows   = 4
	defaultMaxAttempts   = 5
	defaultRejectLogPath = "error.log"
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
	logLevelEnv          = "SIDMATCH_LOG_LEVEL"
	maxPreviewRows       = 50
	reportOnlyFirst      = "only_first"
	reportOnlySecond     = "only_second"
	reportCommon         = "common"
	reportUnion          = "union"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Input: Input{
			Delimiter: defaultDelimiter,
		},
		Preview: Preview{
			Rows: defaultPreviewRows,
		},
		Prompt: Prompt{
			MaxAttempts: defaultMaxAttempts,
		},
		Output: Output{
			Reports:   []string{reportCommon, reportOnlyFirst, reportOnlySecond},
			Delimiter: defaultDelimiter,
		},
		RejectLog: RejectLog{
			Enabled: true,
			Path:    defaultRejectLogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

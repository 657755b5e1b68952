package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/planforge/planforge/types"
)

const (
	configName = ".planforge"
	envPrefix  = "PLANFORGE"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate caches struct metadata for config validation.
var validate = validator.New()

// InitConfig reads in the config file and matching environment variables.
func InitConfig() {
	// Load .env first if present; missing is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. PLANFORGE_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setConfigDefaults()

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: could not read config file: %v\n", err)
		}
	} else if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: unable to decode configuration: %v\n", err)
		os.Exit(1)
	}

	// API keys come from the environment unless set in the file; accept the
	// conventional OPENAI_API_KEY as well as the prefixed form.
	if GlobalAppConfig.LLM.APIKey == "" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			GlobalAppConfig.LLM.APIKey = key
		}
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
}

func setConfigDefaults() {
	viper.SetDefault("output.format", "json")
	viper.SetDefault("generation.provider", "heuristic")
	viper.SetDefault("generation.maxTasks", 20)
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

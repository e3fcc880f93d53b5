package cmd

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SQLT"

type GlobalOptions struct {
	ConfigFile string `mapstructure:"config"`
	Verbose    int    `mapstructure:"verbose"`
}

// ParseOptions fills options from, in order of precedence, command line flags,
// SQLT_* environment variables and the config file, then validates them.
// Without --config, a file named sqlt.{yaml,json,toml} is looked up in
// $HOME/.sqlt and the working directory; a missing file is not an error.
func ParseOptions(cmd *cobra.Command, options interface{}) error {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	v.SetConfigName("sqlt")
	v.AddConfigPath("$HOME/.sqlt")
	v.AddConfigPath(".")

	if flag := cmd.Flags().Lookup("config"); flag != nil && flag.Value.String() != "" {
		v.SetConfigFile(flag.Value.String())
	}

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var errConfigFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &errConfigFileNotFound) {
			return err
		}
	}

	if err := v.Unmarshal(options); err != nil {
		return err
	}

	return validator.New().Struct(options)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/nautilus/graphql"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "a config file providing values for any flag")
}

// loadConfig lets every flag of the command be set from the environment
// (POSSIBLETYPES_<FLAG>) or from the config file.
func loadConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix("POSSIBLETYPES")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	return viper.BindPFlags(cmd.Flags())
}

// headerMiddlewares turns a list of "Key: Value" strings into request middlewares
func headerMiddlewares(headers []string) ([]graphql.NetworkMiddleware, error) {
	middlewares := []graphql.NetworkMiddleware{}

	for _, header := range headers {
		key, value, ok := strings.Cut(header, ":")
		if !ok {
			return nil, fmt.Errorf("header %q must look like Key: Value", header)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		middlewares = append(middlewares, func(r *http.Request) error {
			r.Header.Set(key, value)
			return nil
		})
	}

	return middlewares, nil
}

func readFile(flag string) (string, error) {
	path := viper.GetString(flag)
	if path == "" {
		return "", fmt.Errorf("--%s is required", flag)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(contents), nil
}

func printJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nautilus/possibletypes"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Send a query to an API through a fragment matcher and print what it learned",
	RunE:  runLearn,
}

func init() {
	learnCmd.Flags().String("url", "", "the GraphQL endpoint to query")
	learnCmd.Flags().String("query", "", "a file containing the query to send")
	learnCmd.Flags().String("operation", "", "the name of the operation to execute")
	learnCmd.Flags().String("strategy", possibletypes.StrategyExtension, "how to learn possible types: extension or introspection")
	learnCmd.Flags().Int("rounds", 1, "how many times to send the query")
	learnCmd.Flags().StringSlice("header", []string{}, "headers to send with every request, as Key: Value")

	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	url := viper.GetString("url")
	if url == "" {
		return errors.New("--url is required")
	}

	query, err := readFile("query")
	if err != nil {
		return err
	}

	middlewares, err := headerMiddlewares(viper.GetStringSlice("header"))
	if err != nil {
		return err
	}

	matcher, err := possibletypes.New(possibletypes.WithStrategy(viper.GetString("strategy")))
	if err != nil {
		return err
	}

	link := possibletypes.Chain(possibletypes.NewNetworkLink(url, middlewares...), matcher.Link)

	if err := sendRounds(cmd, link, query, viper.GetInt("rounds")); err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), matcher.PossibleTypes())
}

// sendRounds executes the query the given number of times, reporting any graphql errors
func sendRounds(cmd *cobra.Command, link possibletypes.Link, query string, rounds int) error {
	for i := 0; i < rounds; i++ {
		operation, err := possibletypes.NewOperation(query, viper.GetString("operation"), nil)
		if err != nil {
			return err
		}

		response, err := link.Execute(cmd.Context(), operation)
		if err != nil {
			return err
		}

		if response != nil && len(response.Errors) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "round", i+1, "returned errors:", response.Errors.Error())
		}
	}

	return nil
}

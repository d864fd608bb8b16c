package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nautilus/possibletypes"
)

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Learn the possible types a query needs by introspecting a local schema",
	RunE:  runIntrospect,
}

func init() {
	introspectCmd.Flags().String("schema", "", "a file containing the schema definition")
	introspectCmd.Flags().String("query", "", "a file containing the query to send")
	introspectCmd.Flags().String("operation", "", "the name of the operation to execute")
	introspectCmd.Flags().Int("rounds", 1, "how many times to send the query")

	rootCmd.AddCommand(introspectCmd)
}

func runIntrospect(cmd *cobra.Command, args []string) error {
	typedefs, err := readFile("schema")
	if err != nil {
		return err
	}

	query, err := readFile("query")
	if err != nil {
		return err
	}

	schemaLink, err := possibletypes.NewSchemaLink(typedefs, nil)
	if err != nil {
		return err
	}

	matcher, err := possibletypes.New(possibletypes.WithStrategy(possibletypes.StrategyIntrospection))
	if err != nil {
		return err
	}

	if err := sendRounds(cmd, matcher.Link(schemaLink), query, viper.GetInt("rounds")); err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), matcher.PossibleTypes())
}

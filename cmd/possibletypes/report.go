package main

import (
	"encoding/json"

	"github.com/nautilus/graphql"
	"github.com/spf13/cobra"

	"github.com/nautilus/possibletypes/extension"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the possibleTypes extension a server would attach to a response",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("schema", "", "a file containing the schema definition")
	reportCmd.Flags().String("data", "", "a file containing a json response, or just its data")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	typedefs, err := readFile("schema")
	if err != nil {
		return err
	}

	schema, err := graphql.LoadSchema(typedefs)
	if err != nil {
		return err
	}

	contents, err := readFile("data")
	if err != nil {
		return err
	}

	response := map[string]interface{}{}
	if err := json.Unmarshal([]byte(contents), &response); err != nil {
		return err
	}

	// a bare data object gets wrapped like a real response
	if _, ok := response["data"]; !ok {
		response = map[string]interface{}{"data": response}
	}

	reporter := extension.NewReporter(schema)
	reporter.RequestDidStart(map[string]interface{}{extension.Key: true})
	reporter.WillSendResponse(response)

	return printJSON(cmd.OutOrStdout(), response["extensions"])
}

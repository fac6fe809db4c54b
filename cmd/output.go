package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kava-labs/liquidation-queue/types"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// printOutput writes v in the format selected by --output. Values are
// rendered through the amino JSON encoding first so both formats share
// field names and number formatting.
func printOutput(cmd *cobra.Command, v interface{}) error {
	format, err := cmd.Flags().GetString(flagOutput)
	if err != nil {
		return err
	}

	bz, err := types.ModuleCdc.MarshalJSONIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case outputJSON:
	case outputYAML:
		// json is valid yaml
		var node yaml.Node
		if err := yaml.Unmarshal(bz, &node); err != nil {
			return err
		}
		clearStyle(&node)
		if bz, err = yaml.Marshal(&node); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q, expected %s or %s", format, outputJSON, outputYAML)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(bz), "\n"))
	return err
}

// clearStyle drops the flow style inherited from json so yaml is printed in block style
func clearStyle(node *yaml.Node) {
	node.Style = node.Style &^ yaml.FlowStyle
	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		node.Style = 0
	}
	for _, child := range node.Content {
		clearStyle(child)
	}
}

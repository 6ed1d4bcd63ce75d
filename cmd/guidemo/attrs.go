package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var attrsCmd = &cobra.Command{
	Use:   "attrs [widget-type...]",
	Short: "List the attributes a scene may set on each widget type",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = widgetTypes()
		}
		for _, typ := range args {
			keys, err := attributeKeys(typ)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", typ, strings.Join(keys, ", "))
		}
		return nil
	},
}

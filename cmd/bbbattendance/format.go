package main

import (
	"github.com/spf13/cobra"

	"github.com/bbbattendance/bbbattendance-go/internal/output"
)

// completeFormats completes the --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return output.FormatNames(), cobra.ShellCompDirectiveNoFileComp
}

// completeConfigFile completes the --config flag with supported extensions.
func completeConfigFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}

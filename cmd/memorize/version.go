package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"
)

// printVersion prints version information for the memorize binary
func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	info.Name = "memorize"
	info.Description = "Terminal vocabulary trainer"

	fmt.Fprintln(c.App.Writer, info.String())
	return nil
}

package main

import (
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the available classes and categories",
		Action: func(c *cli.Context) error {
			_, logger, classes, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			tbl := table.New("Class", "Category", "Type", "Entries").
				WithWriter(c.App.Writer)
			for _, class := range classes {
				for _, cat := range class.Categories {
					tbl.AddRow(class.Name, cat.Name, cat.Type.String(), len(cat.Entries))
				}
			}
			tbl.Print()

			return nil
		},
	}
}

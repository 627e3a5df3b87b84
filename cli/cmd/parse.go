package cmd

import (
	"errors"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/blueql-db/blueql"
)

var parseCmd = &cobra.Command{
	Use:   "parse <query>",
	Short: "Compile a query and dump the resulting statement",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_ = cmd.Help()
			return errors.New("missing query")
		}
		stmt, err := blueql.Compile([]byte(strings.Join(args, " ")))
		if err != nil {
			return err
		}
		repr.Println(stmt)
		return nil
	},
}

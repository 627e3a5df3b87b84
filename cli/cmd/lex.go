package cmd

import (
	"errors"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/blueql-db/blueql/ql"
)

var (
	lexSafe bool

	lexCmd = &cobra.Command{
		Use:   "lex <query>",
		Short: "Tokenize a query and dump the token stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New("missing query")
			}
			src := []byte(strings.Join(args, " "))
			var (
				tok []ql.Token
				err error
			)
			if lexSafe {
				tok, err = ql.LexSafe(src)
			} else {
				tok, err = ql.LexInsecure(src)
			}
			if err != nil {
				return err
			}
			for _, t := range tok {
				repr.Println(t)
			}
			return nil
		},
	}
)

func init() {
	lexCmd.Flags().BoolVar(&lexSafe, "safe", false, "reject embedded literals (placeholder-only mode)")
}

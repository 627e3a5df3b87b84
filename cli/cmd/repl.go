package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blueql-db/blueql"
	"github.com/blueql-db/blueql/cli/tokenizer"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively tokenize and compile queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if interactive {
			cfg, err := bootstrapConfig()
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"node":    cfg.NodeID,
				"startup": cfg.StartupCounter,
			}).Debug("session started")
		}
		sc := bufio.NewScanner(os.Stdin)
		for {
			if interactive {
				fmt.Print("blueql> ")
			}
			if !sc.Scan() {
				return sc.Err()
			}
			line := strings.TrimSpace(sc.Text())
			if line == "" || line == "exit" {
				if line == "exit" {
					return nil
				}
				continue
			}
			// the client-side splitter first: it rejects the obviously
			// malformed lines before the server-grade pipeline runs
			if _, err := tokenizer.Tokenize([]byte(line)); err != nil {
				var qm *tokenizer.QuoteMismatchError
				var be *tokenizer.BadExpressionError
				if errors.As(err, &qm) || errors.As(err, &be) {
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				return err
			}
			stmt, err := blueql.Compile([]byte(line))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			repr.Println(stmt)
		}
	},
}

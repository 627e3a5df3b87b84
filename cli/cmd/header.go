package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blueql-db/blueql/storage/sdss"
)

var headerCmd = &cobra.Command{
	Use:   "header <file>",
	Short: "Decode and print the SDSS header of a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("expected exactly one file")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		var raw [sdss.HeaderSize]byte
		if _, err := io.ReadFull(f, raw[:]); err != nil {
			return err
		}
		h, ok := sdss.DecodeNoVerify(raw)
		if !ok {
			return sdss.ErrCorruptedHeader
		}
		fmt.Printf("scope:              %s\n", h.Static.Scope)
		fmt.Printf("specifier:          %s\n", h.Static.Specifier)
		fmt.Printf("specifier version:  %d\n", h.Static.SpecifierVersion)
		fmt.Printf("host settings:      v%d (%s)\n", h.Dynamic.HostSettingVersion, h.Dynamic.HostRunMode)
		fmt.Printf("startup counter:    %d\n", h.Dynamic.HostStartupCounter)
		fmt.Printf("modify counter:     %d\n", h.Dynamic.ModifyCounter)
		return nil
	},
}

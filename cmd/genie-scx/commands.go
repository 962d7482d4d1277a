package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provide-io/genie/go/genie/internal/workenv"
	"github.com/provide-io/genie/go/genie/pkg"
	"github.com/provide-io/genie/go/genie/pkg/lang"
)

func newConvertCmd() *cobra.Command {
	var tablesPath string
	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT [VERSION]",
		Short: "Convert a scenario between versions",
		Long: `Convert a scenario file between versions.

VERSION is one of aoc, up14, up15, hd or wk (default aoc). With wk,
HD Edition scenarios have their unit types and terrains remapped to the
WololoKingdoms equivalents.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			preset := "aoc"
			if len(args) == 3 {
				preset = args[2]
			}
			tables := tablesPath
			if tables == "" {
				tables = workenv.RemapTablesPath(cfg.RemapTables, cfg.ConfigDir)
			}
			if tables != "" {
				logger.Debug("Using remap table overrides", "path", tables)
			}

			err = pkg.ConvertFile(args[0], args[1], pkg.ConvertOptions{
				Preset:      preset,
				RemapTables: tables,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Conversion complete!")
			return nil
		},
	}
	cmd.Flags().StringVar(&tablesPath, "remap-tables", "", "YAML file of remap table overrides")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print a scenario's versions and contents summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			sum, err := pkg.InspectFile(args[0], logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			v := sum.Version
			fmt.Fprintf(out, "File:        %s\n", args[0])
			fmt.Fprintf(out, "Format:      %s\n", v.Format)
			fmt.Fprintf(out, "Header:      %d\n", v.Header)
			if v.HasDLCOptions() {
				fmt.Fprintf(out, "DLC options: %d\n", v.DLCOptions)
			}
			fmt.Fprintf(out, "Data:        %.2f\n", v.Data)
			fmt.Fprintf(out, "Picture:     %d\n", v.Picture)
			fmt.Fprintf(out, "Victory:     %.1f\n", v.Victory)
			fmt.Fprintf(out, "Trigger sys: %.1f\n", v.Triggers)
			switch {
			case v.IsHDEdition():
				fmt.Fprintln(out, "Game:        HD Edition")
			case v.IsAoC():
				fmt.Fprintln(out, "Game:        The Conquerors")
			case v.IsAoK():
				fmt.Fprintln(out, "Game:        The Age of Kings")
			}
			fmt.Fprintln(out)
			if sum.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", sum.Description)
			}
			fmt.Fprintf(out, "Players:     %d declared, %d active\n", sum.PlayerCount, sum.ActivePlayers)
			if len(sum.DLC) > 0 {
				names := make([]string, len(sum.DLC))
				for i, d := range sum.DLC {
					names[i] = d.String()
				}
				fmt.Fprintf(out, "DLC:         %s\n", strings.Join(names, ", "))
			}
			fmt.Fprintf(out, "Map:         %dx%d\n", sum.MapWidth, sum.MapHeight)
			fmt.Fprintf(out, "Units:       %d\n", sum.Units)
			fmt.Fprintf(out, "Triggers:    %d\n", sum.Triggers)
			if sum.HasBitmap {
				fmt.Fprintf(out, "Bitmap:      %dx%d\n", sum.BitmapWidth, sum.BitmapHeight)
			} else {
				fmt.Fprintln(out, "Bitmap:      none")
			}
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE",
		Short: "Check that a scenario decodes and re-encodes consistently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			report, err := pkg.VerifyScenario(args[0], logger)
			if report != nil {
				out := cmd.OutOrStdout()
				for _, w := range report.Warnings {
					fmt.Fprintf(out, "warning: %s\n", w)
				}
				for _, p := range report.Problems {
					fmt.Fprintf(out, "error: %s\n", p)
				}
				if report.OK() {
					fmt.Fprintln(out, "✓ Scenario verification passed")
				}
			}
			return err
		},
	}
}

func newLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [FILE] ID|NAME",
		Short: "Look up a string in a language file",
		Long: `Look up a string in a language file (.dll, .ini or HD Edition key-value).

FILE defaults to GENIE_LANG_FILE.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			path, key := cfg.LangFile, args[0]
			if len(args) == 2 {
				path, key = args[0], args[1]
			}
			if path == "" {
				return errors.New("no language file given and GENIE_LANG_FILE is not set")
			}

			f, err := lang.NewLoader(logger).Open(path)
			if err != nil {
				return err
			}

			var value string
			var ok bool
			if id, err := strconv.ParseUint(key, 10, 32); err == nil {
				value, ok = f.Get(uint32(id))
			} else {
				value, ok = f.GetNamed(key)
			}
			if !ok {
				return fmt.Errorf("string %s not found in %s", key, path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

// Package cli provides the Cobra command structure for goscrapehtml.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	goscrapehtml "github.com/HBTGmbH/goscrapehtml"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// NewRootCommand creates the root goscrapehtml command with all
// subcommands.
func NewRootCommand() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "goscrapehtml",
		Short: "Extract text and attributes from lenient HTML",
		Long: `goscrapehtml extracts text, attributes and markup from possibly
malformed HTML using a small CSS selector subset (*, tag, .class,
#id, [attr], [attr=value]).

Input is read from the given file, or from stdin when no file is
given. The stream subcommand feeds the input through the streaming
extractor in chunks instead of building a tree.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logger.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newTextCommand())
	rootCmd.AddCommand(newAttrCommand())
	rootCmd.AddCommand(newHTMLCommand())
	rootCmd.AddCommand(newStreamCommand())

	return rootCmd
}

func newTextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "text <selector> [file]",
		Short: "Print the text content of every matching element",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(args, 1)
			if err != nil {
				return err
			}
			root := goscrapehtml.Parse(doc)
			texts, err := root.QuerySelectorAllText(args[0])
			if err != nil {
				return fmt.Errorf("selector %q: %w", args[0], err)
			}
			logger.Debug("query finished", "selector", args[0], "matches", len(texts))
			for _, text := range texts {
				fmt.Fprintln(cmd.OutOrStdout(), string(text))
			}
			return nil
		},
	}
}

func newAttrCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attr <selector> <name> [file]",
		Short: "Print the named attribute of every matching element",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(args, 2)
			if err != nil {
				return err
			}
			root := goscrapehtml.Parse(doc)
			values, err := root.QuerySelectorAttribute(args[0], args[1])
			if err != nil {
				return fmt.Errorf("selector %q: %w", args[0], err)
			}
			logger.Debug("query finished", "selector", args[0], "attribute", args[1], "matches", len(values))
			for _, value := range values {
				fmt.Fprintln(cmd.OutOrStdout(), string(value))
			}
			return nil
		},
	}
}

func newHTMLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "html <selector> [file]",
		Short: "Print the serialized markup of every matching element",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(args, 1)
			if err != nil {
				return err
			}
			root := goscrapehtml.Parse(doc)
			nodes, err := root.QuerySelectorAll(args[0])
			if err != nil {
				return fmt.Errorf("selector %q: %w", args[0], err)
			}
			for _, n := range nodes {
				fmt.Fprintln(cmd.OutOrStdout(), string(n.OuterHTML()))
			}
			return nil
		},
	}
}

// readInput returns the contents of the file at args[idx], or all of
// stdin when the argument is absent.
func readInput(args []string, idx int) ([]byte, error) {
	if len(args) > idx {
		return os.ReadFile(args[idx])
	}
	return io.ReadAll(os.Stdin)
}

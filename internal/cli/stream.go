package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	goscrapehtml "github.com/HBTGmbH/goscrapehtml"
)

// streamConfig is the YAML shape of a selector configuration file:
//
//	selectors:
//	  - "#title"
//	  - ".price"
type streamConfig struct {
	Selectors []string `yaml:"selectors"`
}

func loadStreamConfig(path string) (*streamConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg streamConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Selectors) == 0 {
		return nil, fmt.Errorf("%s: no selectors configured", path)
	}
	return &cfg, nil
}

func newStreamCommand() *cobra.Command {
	var configPath string
	var selectors []string
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "stream [file]",
		Short: "Extract selector matches from chunked input without building a tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg, err := loadStreamConfig(configPath)
				if err != nil {
					return err
				}
				selectors = append(selectors, cfg.Selectors...)
			}
			if len(selectors) == 0 {
				return errors.New("no selectors given, use --selector or --config")
			}

			ex := goscrapehtml.NewStreamingExtractor()
			for _, s := range selectors {
				if err := ex.AddSelector(s); err != nil {
					return fmt.Errorf("selector %q: %w", s, err)
				}
			}

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			buf := make([]byte, chunkSize)
			for {
				n, err := in.Read(buf)
				if n > 0 {
					ex.Feed(buf[:n])
				}
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}
			}
			ex.Finish()

			for _, s := range selectors {
				matches := ex.Matches(s)
				logger.Debug("selector finished", "selector", s, "matches", len(matches))
				for i, m := range matches {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", s, i, m.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with a selectors list")
	cmd.Flags().StringArrayVarP(&selectors, "selector", "s", nil, "selector to extract (repeatable)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "read chunk size in bytes")

	return cmd
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) > 0 {
		return os.Open(args[0])
	}
	return io.NopCloser(os.Stdin), nil
}

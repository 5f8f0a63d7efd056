package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sw33tLie/diskdiff/pkg/config"
)

// configView is the YAML shape of a configuration, with the skew spelled as
// a duration string so it can be pasted back into the config file.
type configView struct {
	LogDir       string            `yaml:"log_dir"`
	Roots        []string          `yaml:"roots"`
	IgnoredFiles []string          `yaml:"ignored_files"`
	Dirs         config.Categories `yaml:"dirs"`
	Skew         string            `yaml:"skew"`
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(os.Stderr, "# loaded from %s\n", used)
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

func writeConfig(w io.Writer, cfg *config.Configuration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(configView{
		LogDir:       cfg.LogDir,
		Roots:        cfg.Roots,
		IgnoredFiles: cfg.IgnoredFiles,
		Dirs:         cfg.Dirs,
		Skew:         cfg.Skew.String(),
	}); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	rootCmd.AddCommand(configCmd)
}

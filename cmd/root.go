package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/diskdiff/internal/utils"
	"github.com/sw33tLie/diskdiff/pkg/config"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	     _ _     _          _ _  __  __
	  __| (_)___| | __   __| (_)/ _|/ _|
	 / _' | / __| |/ /  / _' | | |_| |_
	| (_| | \__ \   <  | (_| | |  _|  _|
	 \__,_|_|___/_|\_\  \__,_|_|_| |_|
`
)

// rootCmd scans the disk around a command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diskdiff [flags] <command...|manual>",
	Short: "Show disk changes caused by an operation.",
	Long: LOGO + `
diskdiff runs a command (or waits for a keypress when the command is "manual"),
then lists every file that was born, modified, changed or accessed meanwhile,
grouped into ignored, unimportant, notable, key, log and uncategorized files.

Example: diskdiff -d /etc -d /usr/local make install`,
	Args: cobra.MinimumNArgs(1),
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runScan,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.diskdiff.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")

	// Flags after the command belong to the command.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().BoolP("born", "b", false, "Toggle reporting files born during the operation (default on)")
	rootCmd.Flags().BoolP("modified", "m", false, "Toggle reporting files modified during the operation (default on)")
	rootCmd.Flags().BoolP("changed", "c", false, "Toggle reporting files changed during the operation (default off)")
	rootCmd.Flags().BoolP("accessed", "a", false, "Toggle reporting files accessed during the operation (default off)")
	rootCmd.Flags().StringArrayP("dir", "d", nil, "Directory to check, repeatable. Overrides the roots in the config file")
	rootCmd.Flags().StringArray("dodge", nil, "Skip any path containing this keyword, repeatable")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".diskdiff")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("diskdiff")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	// A missing config file is fine: defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	if err := utils.SetLogLevel(levelString); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfiguration() (*config.Configuration, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

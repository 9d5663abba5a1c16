package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mobile-next/floatdim/commands"
	"github.com/mobile-next/floatdim/config"
	"github.com/mobile-next/floatdim/server"
	"github.com/mobile-next/floatdim/utils"
	"github.com/spf13/cobra"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "floatdim",
	Short: "A floating overlay icon that dims the screen",
	Long:  `Runs draggable overlay icons that dim the screen on tap and reveal a close control on hold.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func initConfig() {
	utils.SetVerbose(verbose)
}

// loadConfig reads the ini file and hands it to the command layer
func loadConfig() error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	activeConfig = cfg
	commands.SetConfig(cfg)
	if registry := commands.GetRegistry(); registry != nil {
		if _, err := registry.Resize(cfg.Server.MaxOverlays); err != nil {
			return err
		}
	}
	utils.Verbose("loaded configuration from %s", path)
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the ini configuration file")
	server.Version = version
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, string(jsonData))
}

// printResponse prints a command response and turns an error status into an error
func printResponse(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}

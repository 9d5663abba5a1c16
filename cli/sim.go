package cli

import (
	"io"

	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/termhost"
	"github.com/mobile-next/floatdim/utils"
	"github.com/spf13/cobra"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run an overlay inside the terminal",
	Long: `Draws the overlay in the terminal and drives it with the mouse.
Drag the icon to move it, click it to toggle dimming, hold it to reveal the close control. Esc quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, err := termhost.NewTcellScreenDriver()
		if err != nil {
			return err
		}

		// log lines would tear the screen
		utils.SetOutput(io.Discard)
		defer utils.SetOutput(cmd.ErrOrStderr())

		sim := termhost.NewSim(driver, termhost.DefaultCell, overlay.OptionsFromConfig(activeConfig))
		return sim.Run()
	},
}

func init() {
	rootCmd.AddCommand(simCmd)
}

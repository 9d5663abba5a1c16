package cli

import (
	"fmt"
	"os"

	"github.com/mobile-next/floatdim/commands"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [script.json]",
	Short: "Replay recorded input against a fresh overlay",
	Long: `Reads a JSON array of steps such as {"event":"down","x":0,"y":0,"time":0} and feeds them to a new overlay.
Events are down, move, up, cancel, dim_tap and close_activate. Prints the gesture and window commands of every step and the final state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			response := commands.NewErrorResponse(fmt.Errorf("failed to read replay script: %v", err))
			return printResponse(response)
		}

		steps, err := commands.ParseReplaySteps(data)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		req := commands.ReplayRequest{
			Steps:        steps,
			ScreenWidth:  replayScreenWidth,
			ScreenHeight: replayScreenHeight,
		}

		return printResponse(commands.ReplayCommand(req))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().IntVar(&replayScreenWidth, "screen-width", 0, "screen width in pixels, defaults to [layout] screen_width")
	replayCmd.Flags().IntVar(&replayScreenHeight, "screen-height", 0, "screen height in pixels, defaults to [layout] screen_height")
}

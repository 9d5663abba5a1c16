package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/floatdim/commands"
	"github.com/spf13/cobra"
)

var placeCmd = &cobra.Command{
	Use:   "place [x,y]",
	Short: "Show where the close control appears for an icon position",
	Long:  `Computes the close control position for an icon centered at x,y. Coordinates are relative to the screen center and should be provided as a single string "x,y".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := parseCoords(args[0])
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		req := commands.PlaceRequest{
			IconX:       x,
			IconY:       y,
			ScreenWidth: placeScreenWidth,
			IconWidth:   placeIconWidth,
			CloseWidth:  placeCloseWidth,
			Padding:     placePadding,
		}

		return printResponse(commands.PlaceCommand(req))
	},
}

func parseCoords(coordsStr string) (int, int, error) {
	parts := strings.Split(coordsStr, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinate format. Expected 'x,y', got '%s'", coordsStr)
	}

	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid coordinate values. x and y must be integers. Got x='%s', y='%s'", parts[0], parts[1])
	}

	return x, y, nil
}

func init() {
	rootCmd.AddCommand(placeCmd)

	placeCmd.Flags().IntVar(&placeScreenWidth, "screen-width", 0, "screen width in pixels, defaults to [layout] screen_width")
	placeCmd.Flags().IntVar(&placeIconWidth, "icon-width", 0, "icon width in pixels, defaults to [layout] icon_width")
	placeCmd.Flags().IntVar(&placeCloseWidth, "close-width", 0, "close control width in pixels, defaults to [layout] close_width")
	placeCmd.Flags().IntVar(&placePadding, "padding", 0, "gap between icon and close control, defaults to [layout] padding")
}

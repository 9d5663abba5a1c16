package cli

import "github.com/mobile-next/floatdim/config"

var (
	verbose    bool
	configPath string

	// configuration loaded before every command runs
	activeConfig = config.Default()

	// for place command
	placeScreenWidth int
	placeIconWidth   int
	placeCloseWidth  int
	placePadding     int

	// for replay command
	replayScreenWidth  int
	replayScreenHeight int

	// for config init
	configForce bool
)

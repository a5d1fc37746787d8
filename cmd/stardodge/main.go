// stardodge is an arcade dodge game: steer a ship along the bottom of the
// screen and avoid the asteroids falling from the top.
//
// Usage:
//
//	stardodge                   - Start menu to pick a ship interactively
//	stardodge play [skin]       - Play in the terminal
//	stardodge window [skin]     - Play in a desktop window
//	stardodge skins             - List available ships
//	stardodge serve             - Start SSH server for remote play
//	stardodge scores [skin]     - Show high scores
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.stardodge/scores.db)
//	--config <path>        - Load a custom balance YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import skins to register them
	_ "github.com/vovakirdan/star-dodge/internal/skins/rocket"
	_ "github.com/vovakirdan/star-dodge/internal/skins/starship"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagVariant    string
	flagDifficulty string
	flagPlayer     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stardodge",
	Short: "Star Dodge - dodge falling asteroids in your terminal",
	Long: `Star Dodge is an arcade game: steer your ship left and right along the
bottom of the screen and dodge the asteroids raining from above. Every
asteroid you dodge scores 10 points; every hit costs a life.

Without a subcommand the interactive ship picker starts.

Available commands:
  play     - Play a ship directly in the terminal
  window   - Play in a desktop window
  skins    - Show all available ships
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  stardodge
  stardodge play rocket --difficulty hard
  stardodge window starship
  stardodge serve --ssh :2222 --ws :8080
  stardodge scores rocket`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.stardodge/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom balance config YAML")
	pf.StringVar(&flagVariant, "variant", "", "Balance variant: starship or rocket (default: the ship's own)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagPlayer, "player", "", "Name saved with your scores (default: $USER)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

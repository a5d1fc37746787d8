package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

var (
	flagClear bool
	flagLimit int
	flagLast  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [skin]",
	Short: "Show high scores",
	Long: `Display the top scores for a ship, or for every ship when none is
given, followed by per-ship statistics.

Examples:
  stardodge scores
  stardodge scores rocket --limit 20
  stardodge scores --last --player alice
  stardodge scores starship --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the saved scores (of the given ship only, if any)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagLast, "last", false, "Show the most recent run of --player")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runScores(_ *cobra.Command, args []string) {
	skinID := ""
	if len(args) > 0 {
		skinID = args[0]
		if !registry.Exists(skinID) {
			fmt.Fprintf(os.Stderr, "Error: unknown skin %q\n", skinID)
			fmt.Fprintln(os.Stderr, "Run 'stardodge skins' to see available ships.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		n, err := store.ClearScores(skinID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d scores.\n", n)
		return

	case flagLast:
		printLast(store, playerName())
		return
	}

	scores, err := store.TopScores(skinID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "High Scores - all ships"
	if skinID != "" {
		if skin, err := registry.Create(skinID); err == nil {
			title = "High Scores - " + skin.Title()
		}
	}
	fmt.Println(titleStyle.Render(title))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println(mutedStyle.Render("Play 'stardodge play' to set the first high score!"))
		return
	}

	fmt.Println(scoresTable(scores))

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Println(statsTable(stats, skinID))
}

func scoresTable(scores []storage.ScoreEntry) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Rank", "Ship", "Player", "Score", "Date").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		t.Row(
			strconv.Itoa(i+1),
			e.Skin,
			player,
			strconv.Itoa(e.Score),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return t
}

func statsTable(stats map[string]*storage.SkinStats, skinID string) *table.Table {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		if skinID == "" || id == skinID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Ship", "Runs", "Best", "Average", "Last played").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, id := range ids {
		st := stats[id]
		t.Row(
			id,
			strconv.Itoa(st.Runs),
			strconv.Itoa(st.HighScore),
			fmt.Sprintf("%.1f", st.AvgScore),
			st.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
	return t
}

func printLast(store *storage.Store, player string) {
	e, err := store.LastScore(player)
	if errors.Is(err, storage.ErrNoScores) {
		fmt.Printf("No runs recorded for %q yet.\n", player)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving last run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Last run of %s: %d on %s (%s)\n",
		player, e.Score, e.Skin, e.CreatedAt.Format("2006-01-02 15:04"))
}

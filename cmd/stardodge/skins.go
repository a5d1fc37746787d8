package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-dodge/internal/registry"
)

var skinsCmd = &cobra.Command{
	Use:     "skins",
	Aliases: []string{"list"},
	Short:   "List all available ships",
	Long:    `Shows every ship registered in the game with its balance variant.`,
	Run:     runSkins,
}

func runSkins(_ *cobra.Command, _ []string) {
	skins := registry.List()

	if len(skins) == 0 {
		fmt.Println("No ships available.")
		return
	}

	fmt.Println("Available ships:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, s := range skins {
		maxIDLen = max(maxIDLen, len(s.ID))
		maxTitleLen = max(maxTitleLen, len(s.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Variant")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")

	for _, s := range skins {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, s.ID, maxTitleLen, s.Title, s.Variant)
	}

	fmt.Println()
	fmt.Println("Run 'stardodge play <id>' to play.")
}

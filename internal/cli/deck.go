package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tarotdaily/tarotdaily/internal/deck"
	"github.com/tarotdaily/tarotdaily/internal/models"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect the embedded deck data",
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the embedded deck files",
	Long: `Validate loads every supported language and checks deck structure:
78 unique cards, 22 Major Arcana, and 14 cards in each suit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := deck.NewLoader()
		failed := false
		for _, lang := range []models.Lang{models.LangEN, models.LangUK} {
			cards, err := loader.Load(lang)
			if err != nil {
				fmt.Printf("  %s %s: %v\n", color.RedString("✗"), lang, err)
				failed = true
				continue
			}
			fmt.Printf("  %s %s: %d cards\n", color.GreenString("✓"), lang, len(cards))
		}
		if failed {
			return fmt.Errorf("deck validation failed")
		}
		return nil
	},
}

var deckShowCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display a single card",
	Long: `Show prints one card's meanings in both orientations.

Examples:
  tarotctl deck show major_00_the_fool
  tarotctl deck show --lang uk wands_01_ace_of_wands`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		langFlag, _ := cmd.Flags().GetString("lang")

		cards, err := deck.NewLoader().Load(models.ParseLang(langFlag))
		if err != nil {
			return fmt.Errorf("loading deck: %v", err)
		}

		card, ok := deck.Find(cards, args[0])
		if !ok {
			return fmt.Errorf("unknown card %q", args[0])
		}

		fmt.Println()
		fmt.Printf("  %s %s\n", color.CyanString("Card:"), color.HiWhiteString(card.Name))
		fmt.Printf("  %s %s\n", color.CyanString("ID:  "), card.ID)
		arcana := "Minor Arcana"
		if card.IsMajor() {
			arcana = "Major Arcana"
		} else if suit := card.Suit(); suit != "" {
			arcana = "Minor Arcana · " + suit
		}
		fmt.Printf("  %s %s\n\n", color.CyanString("Type:"), arcana)
		fmt.Printf("  %s %s\n", color.GreenString("Upright: "), card.Upright)
		fmt.Printf("  %s %s\n\n", color.RedString("Reversed:"), card.Reversed)
		if card.Description != nil {
			fmt.Printf("  %s\n    %s\n\n", color.CyanString("Description (upright):"), card.Description.Upright)
			fmt.Printf("  %s\n    %s\n\n", color.CyanString("Description (reversed):"), card.Description.Reversed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckValidateCmd)
	deckCmd.AddCommand(deckShowCmd)

	deckShowCmd.Flags().StringP("lang", "l", "en", "Deck language (en or uk)")
}

package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tarotdaily/tarotdaily/internal/deck"
	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/services"
	"github.com/tarotdaily/tarotdaily/internal/share"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a reading and print it",
	Long: `Draw shuffles the deck and prints a one or three card reading.
Three-card readings always include at least one Major Arcana card.

Examples:
  tarotctl draw
  tarotctl draw --count 3 --type "Love Reading"
  tarotctl draw --lang uk --share`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		langFlag, _ := cmd.Flags().GetString("lang")
		readingType, _ := cmd.Flags().GetString("type")
		withShare, _ := cmd.Flags().GetBool("share")

		if count != 1 && count != 3 {
			return fmt.Errorf("count must be 1 or 3, got %d", count)
		}

		lang := models.ParseLang(langFlag)
		cards, err := deck.NewLoader().Load(lang)
		if err != nil {
			return fmt.Errorf("loading deck: %v", err)
		}

		draws := services.NewDrawService(services.NewRNG())
		drawn := draws.Draw(cards, count)
		date := models.FormatDate(nowFn(), lang)

		fmt.Println()
		fmt.Printf("  %s %s\n\n", color.HiWhiteString(readingType), color.HiBlackString("· "+date))
		for _, c := range drawn {
			printDrawnCard(c)
		}

		if withShare {
			token := share.Encode(models.Reading{
				Cards:       models.Refs(drawn),
				ReadingType: readingType,
				Date:        date,
			})
			fmt.Printf("  %s %s\n\n", color.CyanString("Share token:"), token)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(drawCmd)

	drawCmd.Flags().IntP("count", "c", 3, "Number of cards to draw (1 or 3)")
	drawCmd.Flags().StringP("lang", "l", "en", "Deck language (en or uk)")
	drawCmd.Flags().StringP("type", "t", "Daily Reading", "Reading type label")
	drawCmd.Flags().Bool("share", false, "Print a share token for the reading")
}

func printDrawnCard(c models.DrawnCard) {
	orientation := color.GreenString("Upright")
	if c.IsReversed() {
		orientation = color.RedString("Reversed")
	}
	fmt.Printf("  %s %s\n", color.HiWhiteString(c.Name), orientation)
	fmt.Printf("    %s\n\n", c.MeaningText())
}

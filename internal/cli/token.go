package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tarotdaily/tarotdaily/internal/deck"
	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/share"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Encode and decode share tokens",
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode [token]",
	Short: "Decode a share token and print the reading",
	Long: `Decode parses a share token, joins it against the embedded deck, and
prints the full reading. Legacy token formats are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reading, err := share.Decode(args[0])
		if err != nil {
			return fmt.Errorf("decoding token: %v", err)
		}

		enriched, err := share.Enrich(deck.NewLoader(), reading, share.DetectLang(reading))
		if err != nil {
			return fmt.Errorf("resolving cards: %v", err)
		}

		fmt.Println()
		fmt.Printf("  %s %s\n\n", color.HiWhiteString(enriched.ReadingType), color.HiBlackString("· "+enriched.Date))
		for _, c := range enriched.Cards {
			printDrawnCard(c)
		}
		return nil
	},
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode [card_id:orientation ...]",
	Short: "Build a share token from card references",
	Long: `Encode builds a share token from card references given as
id:orientation pairs, where orientation is "upright" or "reversed".

Examples:
  tarotctl token encode major_00_the_fool:upright
  tarotctl token encode --type "Love Reading" major_00_the_fool:upright major_19_the_sun:reversed`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		readingType, _ := cmd.Flags().GetString("type")
		date, _ := cmd.Flags().GetString("date")
		langFlag, _ := cmd.Flags().GetString("lang")

		lang := models.ParseLang(langFlag)
		if date == "" {
			date = models.FormatDate(nowFn(), lang)
		}

		refs := make([]models.CardRef, 0, len(args))
		for _, arg := range args {
			ref, err := parseCardRef(arg)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		}

		token := share.Encode(models.Reading{
			Cards:       refs,
			ReadingType: readingType,
			Date:        date,
		})
		fmt.Println(token)
		return nil
	},
}

func parseCardRef(arg string) (models.CardRef, error) {
	id, orientation, found := strings.Cut(arg, ":")
	if !found || id == "" {
		return models.CardRef{}, fmt.Errorf("invalid card reference %q, expected id:orientation", arg)
	}
	switch orientation {
	case "upright":
		return models.CardRef{ID: id, Position: models.PositionUpright}, nil
	case "reversed":
		return models.CardRef{ID: id, Position: models.PositionReversed}, nil
	default:
		return models.CardRef{}, fmt.Errorf("invalid orientation %q, expected upright or reversed", orientation)
	}
}

func init() {
	RootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenDecodeCmd)
	tokenCmd.AddCommand(tokenEncodeCmd)

	tokenEncodeCmd.Flags().StringP("type", "t", "Daily Reading", "Reading type label")
	tokenEncodeCmd.Flags().StringP("date", "d", "", "Reading date text (defaults to today)")
	tokenEncodeCmd.Flags().StringP("lang", "l", "en", "Language for the default date format")
}

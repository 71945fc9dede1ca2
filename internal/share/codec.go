// Package share implements the reading share token: a compact,
// URL-safe, reversible encoding of drawn cards, reading type, and
// date. The decoder additionally accepts two superseded token formats
// produced by older encoders.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tarotdaily/tarotdaily/internal/models"
)

var (
	// ErrInvalidToken marks a token with characters outside the
	// URL-safe base64 alphabet.
	ErrInvalidToken = errors.New("share token contains invalid characters")
	// ErrMalformedToken marks a token that decodes but does not parse
	// as any known reading format.
	ErrMalformedToken = errors.New("malformed share token")
)

// cardAlias maps canonical card ids to their shortest unique alias:
// one uppercase letter per Major Arcana card, {rank}{suit} for the
// numbered minors (rank A,2-9,T; suit W,C,S,P). Court cards have no
// alias and pass through unmodified.
var cardAlias = map[string]string{
	"major_00_the_fool":           "F",
	"major_01_the_magician":       "M",
	"major_02_the_high_priestess": "H",
	"major_03_the_empress":        "E",
	"major_04_the_emperor":        "P",
	"major_05_the_hierophant":     "Y",
	"major_06_the_lovers":         "L",
	"major_07_the_chariot":        "C",
	"major_08_strength":           "S",
	"major_09_the_hermit":         "R",
	"major_10_wheel_of_fortune":   "W",
	"major_11_justice":            "J",
	"major_12_the_hanged_man":     "N",
	"major_13_death":              "D",
	"major_14_temperance":         "T",
	"major_15_the_devil":          "V",
	"major_16_the_tower":          "O",
	"major_17_the_star":           "A",
	"major_18_the_moon":           "B",
	"major_19_the_sun":            "U",
	"major_20_judgement":          "G",
	"major_21_the_world":          "X",

	"wands_01_ace_of_wands":   "AW",
	"wands_02_two_of_wands":   "2W",
	"wands_03_three_of_wands": "3W",
	"wands_04_four_of_wands":  "4W",
	"wands_05_five_of_wands":  "5W",
	"wands_06_six_of_wands":   "6W",
	"wands_07_seven_of_wands": "7W",
	"wands_08_eight_of_wands": "8W",
	"wands_09_nine_of_wands":  "9W",
	"wands_10_ten_of_wands":   "TW",

	"cups_01_ace_of_cups":   "AC",
	"cups_02_two_of_cups":   "2C",
	"cups_03_three_of_cups": "3C",
	"cups_04_four_of_cups":  "4C",
	"cups_05_five_of_cups":  "5C",
	"cups_06_six_of_cups":   "6C",
	"cups_07_seven_of_cups": "7C",
	"cups_08_eight_of_cups": "8C",
	"cups_09_nine_of_cups":  "9C",
	"cups_10_ten_of_cups":   "TC",

	"swords_01_ace_of_swords":   "AS",
	"swords_02_two_of_swords":   "2S",
	"swords_03_three_of_swords": "3S",
	"swords_04_four_of_swords":  "4S",
	"swords_05_five_of_swords":  "5S",
	"swords_06_six_of_swords":   "6S",
	"swords_07_seven_of_swords": "7S",
	"swords_08_eight_of_swords": "8S",
	"swords_09_nine_of_swords":  "9S",
	"swords_10_ten_of_swords":   "TS",

	"pentacles_01_ace_of_pentacles":   "AP",
	"pentacles_02_two_of_pentacles":   "2P",
	"pentacles_03_three_of_pentacles": "3P",
	"pentacles_04_four_of_pentacles":  "4P",
	"pentacles_05_five_of_pentacles":  "5P",
	"pentacles_06_six_of_pentacles":   "6P",
	"pentacles_07_seven_of_pentacles": "7P",
	"pentacles_08_eight_of_pentacles": "8P",
	"pentacles_09_nine_of_pentacles":  "9P",
	"pentacles_10_ten_of_pentacles":   "TP",
}

var aliasCard = func() map[string]string {
	m := make(map[string]string, len(cardAlias))
	for id, alias := range cardAlias {
		m[alias] = id
	}
	return m
}()

var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Encode serializes a reading into a URL-safe share token. Card ids
// with an alias shrink to 1-2 characters plus an orientation marker;
// ids outside the dictionary pass through as-is. ReadingType and date
// must not contain a pipe; this is not validated and a pipe corrupts
// the eventual decode.
func Encode(reading models.Reading) string {
	var cards strings.Builder
	for _, ref := range reading.Cards {
		alias, ok := cardAlias[ref.ID]
		if !ok {
			alias = ref.ID
		}
		cards.WriteString(alias)
		if ref.Position == models.PositionUpright {
			cards.WriteByte('U')
		} else {
			cards.WriteByte('R')
		}
	}

	compact := reading.ReadingType + "|" + reading.Date + "|" + cards.String()
	return base64.RawURLEncoding.EncodeToString([]byte(compact))
}

// Decode parses a share token back into a reading. Three formats are
// accepted: the compact pipe-delimited format, the legacy
// percent-encoded variant of it, and the oldest raw-JSON format.
func Decode(token string) (models.Reading, error) {
	if !tokenPattern.MatchString(token) {
		return models.Reading{}, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return models.Reading{}, fmt.Errorf("%w: invalid encoding", ErrMalformedToken)
	}
	decoded := string(raw)

	// Tokens from the pre-compact encoder hold a percent-encoded
	// payload; unescape before branching on format.
	if strings.Contains(decoded, "%") {
		unescaped, err := url.PathUnescape(decoded)
		if err != nil {
			return models.Reading{}, fmt.Errorf("%w: invalid percent encoding", ErrMalformedToken)
		}
		decoded = unescaped
	}

	if strings.Contains(decoded, "|") {
		parts := strings.Split(decoded, "|")
		if len(parts) != 3 {
			return models.Reading{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedToken, len(parts))
		}
		return models.Reading{
			Cards:       parseCardData(parts[2]),
			ReadingType: parts[0],
			Date:        parts[1],
		}, nil
	}

	// Oldest format: the reading serialized as raw JSON.
	var legacy models.Reading
	if err := json.Unmarshal([]byte(decoded), &legacy); err != nil {
		return models.Reading{}, fmt.Errorf("%w: not valid json", ErrMalformedToken)
	}
	if legacy.Cards == nil || legacy.ReadingType == "" || legacy.Date == "" {
		return models.Reading{}, fmt.Errorf("%w: missing reading fields", ErrMalformedToken)
	}
	return legacy, nil
}

// parseCardData scans the concatenated {alias}{orientation} pairs.
// An alias is 2 characters when the following character is an
// uppercase letter or digit that is not an orientation marker,
// otherwise 1 character. A missing trailing orientation character
// reads as reversed.
func parseCardData(data string) []models.CardRef {
	cards := []models.CardRef{}
	i := 0
	for i < len(data) {
		var alias string
		if i+1 < len(data) && isAliasTail(data[i+1]) {
			alias = data[i : i+2]
			i += 2
		} else {
			alias = data[i : i+1]
			i++
		}

		position := models.PositionReversed
		if i < len(data) && data[i] == 'U' {
			position = models.PositionUpright
		}
		i++

		id, ok := aliasCard[alias]
		if !ok {
			id = alias
		}
		cards = append(cards, models.CardRef{ID: id, Position: position})
	}
	return cards
}

func isAliasTail(b byte) bool {
	if b == 'U' || b == 'R' {
		return false
	}
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

var cyrillic = regexp.MustCompile(`[\x{0400}-\x{04FF}]`)

// DetectLang infers the reading language from its free-text fields.
func DetectLang(reading models.Reading) models.Lang {
	if cyrillic.MatchString(reading.ReadingType + reading.Date) {
		return models.LangUK
	}
	return models.LangEN
}

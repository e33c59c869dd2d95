package services

import (
	"regexp"
	"strings"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// ReceiptParser turns raw OCR text from a grocery receipt into ingredient
// candidates. It is the fallback path when the vision model is disabled.
type ReceiptParser struct {
	itemPatterns    []*regexp.Regexp
	excludePatterns []*regexp.Regexp
}

// NewReceiptParser creates a new receipt parser
func NewReceiptParser() *ReceiptParser {
	return &ReceiptParser{
		itemPatterns: []*regexp.Regexp{
			// Pattern: Commissary format - ITEM NAME UPC $X.XX F (UPC is 11-14 digits)
			regexp.MustCompile(`^(.+?)\s+\d{11,14}\s+\$?\d{1,3}\.\d{2}\s*[FNT]?\s*$`),
			// Pattern: QTY x ITEM @ PRICE or QTY ITEM @ PRICE
			regexp.MustCompile(`^(\d+)\s*[xX@]\s*(.+?)\s+\$?\d{1,3}\.\d{2}`),
			// Pattern: ITEM NAME @ X.XX EA
			regexp.MustCompile(`^(.+?)\s+@\s*\$?\d{1,3}\.\d{2}\s*(?:EA|EACH)?`),
			// Pattern: ITEM NAME    $X.XX or ITEM NAME    X.XX (price at end)
			regexp.MustCompile(`^(.+?)\s+\$?\d{1,3}\.\d{2}\s*[FNT]?\s*$`),
		},
		excludePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(TAX|SUBTOTAL|SUB\s*TOTAL|TOTAL|GRAND\s*TOTAL|BALANCE|CHANGE|CASH|CREDIT|DEBIT|CARD|VISA|MASTERCARD|AMEX|DISCOVER|SAVINGS|DISCOUNT|COUPON|MEMBER|LOYALTY|POINTS|REWARD|THANK\s*YOU|HAVE\s*A|STORE\s*#|CASHIER|TRANS|REG|DATE|TIME|TEL|PHONE|ADDRESS|RECEIPT|RETURN|REFUND|VOID|SURCHARGE|SOLD\s*ITEMS?|PAID|PURCHASE|CREDIT\s*CARD)\b`),
			regexp.MustCompile(`^\s*[-=*]+\s*$`),
			regexp.MustCompile(`^\s*\d{2}[/-]\d{2}[/-]\d{2,4}\s*$`),
			regexp.MustCompile(`^\s*\d{1,2}:\d{2}\s*(AM|PM)?\s*$`),
			// Quantity/weight detail lines: "2 @ $2.79 EACH" or "2.96 lb @ $0.99 / lb"
			regexp.MustCompile(`^\s*\d+\.?\d*\s*(lb|oz|kg|g)?\s*@\s*\$?\d+\.\d{2}\s*(\/\s*(lb|oz|kg|g)|EACH|EA)?\s*$`),
		},
	}
}

// Parse extracts ingredient candidates from OCR text. Quantity and unit
// come from the item text itself when present, otherwise 1 pieces.
func (p *ReceiptParser) Parse(ocrText string) []models.IngredientCandidate {
	candidates := []models.IngredientCandidate{}

	for _, line := range strings.Split(ocrText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || p.shouldExclude(line) {
			continue
		}

		if c := p.parseLine(line); c != nil {
			candidates = append(candidates, *c)
		}
	}

	return candidates
}

func (p *ReceiptParser) parseLine(line string) *models.IngredientCandidate {
	line = p.cleanLine(line)

	for _, pattern := range p.itemPatterns {
		matches := pattern.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}

		var name, quantity string
		if len(matches) == 3 {
			// Pattern with leading count: QTY, NAME
			quantity = matches[1]
			name = matches[2]
		} else {
			name = matches[1]
			quantity = FormatQuantity(ParseAmount(name))
		}

		name = p.cleanItemName(name)
		if name == "" || !hasLetters(name) {
			continue
		}

		return &models.IngredientCandidate{
			Name:     name,
			Quantity: quantity,
			Unit:     ExtractUnit(name),
			Category: models.CategoryOther,
		}
	}

	return nil
}

func (p *ReceiptParser) shouldExclude(line string) bool {
	for _, pattern := range p.excludePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

var spacePattern = regexp.MustCompile(`\s+`)

// cleanLine removes common OCR artifacts before matching
func (p *ReceiptParser) cleanLine(line string) string {
	line = strings.ReplaceAll(line, "|", "")
	line = strings.ReplaceAll(line, "\\", "")
	line = spacePattern.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

func (p *ReceiptParser) cleanItemName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimRight(name, ".,;:-_")
	for _, prefix := range []string{"@", "#", "*"} {
		name = strings.TrimPrefix(name, prefix)
	}
	return strings.TrimSpace(name)
}

func hasLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

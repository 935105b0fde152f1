package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/computesales/internal/types"
	"github.com/mattn/go-runewidth"
)

// WriteCatalogue prints a catalogue as a two-column table in listing order.
// Product names are padded by display width so wide characters line up;
// prices are right-aligned with two decimal places.
func WriteCatalogue(w io.Writer, c types.PriceCatalogue) error {
	names := c.Names()

	prices := make([]string, len(names))
	nameWidth := runewidth.StringWidth("Product")
	priceWidth := len("Price")
	for i, name := range names {
		price, _ := c.Lookup(name)
		prices[i] = price.StringFixed(2)

		if width := runewidth.StringWidth(name); width > nameWidth {
			nameWidth = width
		}
		if len(prices[i]) > priceWidth {
			priceWidth = len(prices[i])
		}
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s  %*s\n", runewidth.FillRight("Product", nameWidth), priceWidth, "Price")
	fmt.Fprintf(bw, "%s  %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", priceWidth))
	for i, name := range names {
		fmt.Fprintf(bw, "%s  %*s\n", runewidth.FillRight(name, nameWidth), priceWidth, prices[i])
	}
	fmt.Fprintf(bw, "\n%d product(s)\n", len(names))

	return bw.Flush()
}

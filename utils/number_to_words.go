package utils

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian grouping: hundreds, then thousand, lakh, crore.
var scales = []struct {
	value int
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells num in Indian grouping (thousand, lakh, crore).
func NumberToWords(num int) string {
	switch {
	case num == 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	}

	for _, s := range scales {
		if num < s.value {
			continue
		}
		head := NumberToWords(num/s.value) + " " + s.name
		if rest := NumberToWords(num % s.value); rest != "" {
			return head + " " + rest
		}
		return head
	}
	return ""
}

// NumberToCurrencyWords spells an amount as Rupees and Paise for the
// charges line on the slip.
func NumberToCurrencyWords(amount float64) string {
	rupees := int(math.Floor(amount))
	paise := int(math.Round((amount - float64(rupees)) * 100))

	var parts []string

	if rupees > 0 {
		parts = append(parts, NumberToWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}

	if len(parts) == 0 {
		return "Zero Rupees Only"
	}

	return strings.Join(parts, " and ") + " Only"
}

// WeightToWords spells a weight for the net-weight line on the slip.
// Indicators resolve whole kilograms, so the value is rounded. A negative
// net is spelled with a leading Minus; it stays as measured on the record.
func WeightToWords(kg float64) string {
	n := int(math.Round(kg))

	prefix := ""
	if n < 0 {
		prefix = "Minus "
		n = -n
	}
	if n == 0 {
		return "Zero Kilograms Only"
	}
	return fmt.Sprintf("%s%s Kilograms Only", prefix, NumberToWords(n))
}

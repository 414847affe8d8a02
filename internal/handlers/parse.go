package handlers

import (
	"strings"

	"absensi-bot/internal/models"
)

// SplitStoreInfo splits the check-in text on the first comma into store name
// and area. No comma means the whole text is the store name and the area
// stays empty; that is a lenient default, not an error.
func SplitStoreInfo(text string) (namaToko, daerah string) {
	namaToko, daerah, found := strings.Cut(text, ",")
	namaToko = strings.TrimSpace(namaToko)
	if !found {
		return namaToko, ""
	}
	return namaToko, strings.TrimSpace(daerah)
}

// ParseCheckoutForm reads "key: value" lines with case-insensitive keys
// bertemu, order, tagihan and kendala. Every field is optional and defaults
// to "-". Unknown keys and lines without a colon are ignored. A text with no
// recognized key at all is not a form; ok is false and nothing should be
// written to the store.
func ParseCheckoutForm(text string) (report models.CheckoutReport, ok bool) {
	report = models.CheckoutReport{
		Bertemu: "-", Order: "-", Tagihan: "-", Kendala: "-",
	}

	for _, line := range strings.Split(text, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			value = "-"
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "bertemu":
			report.Bertemu = value
			ok = true
		case "order":
			report.Order = value
			ok = true
		case "tagihan":
			report.Tagihan = value
			ok = true
		case "kendala":
			report.Kendala = value
			ok = true
		}
	}

	return report, ok
}

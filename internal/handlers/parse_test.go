package handlers

import (
	"testing"

	"absensi-bot/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSplitStoreInfo(t *testing.T) {
	tests := []struct {
		in       string
		namaToko string
		daerah   string
	}{
		{"Toko Abadi, Kandangan", "Toko Abadi", "Kandangan"},
		{"Toko Abadi", "Toko Abadi", ""},
		{"Toko A, B, C", "Toko A", "B, C"},
		{"  Toko Abadi ,  Kandangan  ", "Toko Abadi", "Kandangan"},
		{"Toko Abadi,", "Toko Abadi", ""},
	}

	for _, tt := range tests {
		namaToko, daerah := SplitStoreInfo(tt.in)
		require.Equal(t, tt.namaToko, namaToko, "input %q", tt.in)
		require.Equal(t, tt.daerah, daerah, "input %q", tt.in)
	}
}

func TestParseCheckoutForm(t *testing.T) {
	report, ok := ParseCheckoutForm("Bertemu: Pak Budi\nOrder: 150000\nTagihan: 100000\nKendala: Tidak ada")

	require.True(t, ok)
	require.Equal(t, models.CheckoutReport{
		Bertemu: "Pak Budi",
		Order:   "150000",
		Tagihan: "100000",
		Kendala: "Tidak ada",
	}, report)
}

func TestParseCheckoutForm_Defaults(t *testing.T) {
	report, ok := ParseCheckoutForm("Order: 150000")

	require.True(t, ok)
	require.Equal(t, models.CheckoutReport{
		Bertemu: "-",
		Order:   "150000",
		Tagihan: "-",
		Kendala: "-",
	}, report)
}

func TestParseCheckoutForm_CaseInsensitiveKeys(t *testing.T) {
	report, ok := ParseCheckoutForm("BERTEMU: Bu Siti\norder: 5000\nTAGIHAN: 0\nkendala: hujan")

	require.True(t, ok)
	require.Equal(t, "Bu Siti", report.Bertemu)
	require.Equal(t, "5000", report.Order)
	require.Equal(t, "0", report.Tagihan)
	require.Equal(t, "hujan", report.Kendala)
}

func TestParseCheckoutForm_Garbage(t *testing.T) {
	_, ok := ParseCheckoutForm("ini bukan format laporan")
	require.False(t, ok)

	_, ok = ParseCheckoutForm("halo: dunia")
	require.False(t, ok)
}

package models

// Minor-unit exponents that differ from the common 2 (ISO 4217).
var currencyExponents = map[string]int32{
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0,
	"KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0,
	"XOF": 0, "XPF": 0,
}

// CurrencyExponent returns the minor-unit exponent for a 3-letter
// currency code: 2 for most currencies, 0 or 3 for the exceptions.
func CurrencyExponent(code string) int32 {
	if exp, ok := currencyExponents[code]; ok {
		return exp
	}
	return 2
}

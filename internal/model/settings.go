package model

// Settings is process-wide display configuration, mutated only through the
// store's settings operation.
type Settings struct {
	CurrencySymbol string `json:"currency_symbol"`
	ThemeColor     string `json:"theme_color"`
	FontFamily     string `json:"font_family"`
	PharmacyName   string `json:"pharmacy_name"`
}

// SettingsUpdate merges only non-nil fields into Settings.
type SettingsUpdate struct {
	CurrencySymbol *string
	ThemeColor     *string
	FontFamily     *string
	PharmacyName   *string
}

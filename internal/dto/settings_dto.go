package dto

// UpdateSettingsRequest merges only the provided keys.
type UpdateSettingsRequest struct {
	CurrencySymbol *string `json:"currency_symbol" validate:"omitempty,min=1"`
	ThemeColor     *string `json:"theme_color"     validate:"omitempty,min=1"`
	FontFamily     *string `json:"font_family"     validate:"omitempty,min=1"`
	PharmacyName   *string `json:"pharmacy_name"   validate:"omitempty,min=1"`
}

// AddAuditLogRequest records an ad hoc audit entry.
type AddAuditLogRequest struct {
	Action  string `json:"action"  validate:"required"`
	Details string `json:"details" validate:"required"`
}

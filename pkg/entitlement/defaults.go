package entitlement

// DefaultPlanID is the lowest tier every unresolved plan falls back to.
const DefaultPlanID = "free"

// DefaultPlans is the compiled-in catalog used when no catalog file is
// configured. Ceilings mirror the public pricing page.
func DefaultPlans() map[string]Plan {
	return map[string]Plan{
		"free": {
			ID:          "free",
			Name:        "Free",
			Description: "Try professional AI photoshoots",
			Limits: map[Action]int64{
				ActionGeneration: 2,
				ActionMerge:      1,
			},
			Shapes:   []Shape{ShapeSquare},
			Quality:  QualityStandard,
			Support:  SupportCommunity,
			Interval: BillingIntervalNone,
			Public:   true,
		},
		"pro": {
			ID:          "pro",
			Name:        "Pro",
			Description: "For creators who publish weekly",
			Limits: map[Action]int64{
				ActionGeneration: 100,
				ActionMerge:      25,
			},
			Shapes: []Shape{
				ShapeSquare, ShapePortrait, ShapeClassic,
				ShapePhoto, ShapeWide, ShapeVertical,
			},
			Quality:           QualityHD,
			Support:           SupportPriority,
			CommercialLicense: true,
			Price:             Money{Amount: 1900, Currency: "USD"},
			Interval:          BillingIntervalMonthly,
			PriceID:           "price_pro_monthly",
			Public:            true,
		},
		"max": {
			ID:          "max",
			Name:        "Max",
			Description: "Unlimited shoots for teams and agencies",
			Limits: map[Action]int64{
				ActionGeneration: Unlimited,
				ActionMerge:      Unlimited,
			},
			Shapes: []Shape{
				ShapeSquare, ShapePortrait, ShapeClassic,
				ShapePhoto, ShapeWide, ShapeVertical,
			},
			Quality:           QualityUltra,
			Support:           SupportDedicated,
			CommercialLicense: true,
			APIAccess:         true,
			CustomBranding:    true,
			Price:             Money{Amount: 4900, Currency: "USD"},
			Interval:          BillingIntervalMonthly,
			PriceID:           "price_max_monthly",
			Public:            true,
		},
	}
}

package entitlement

// Action is a quota-metered user action.
type Action string

const (
	ActionGeneration Action = "generation"
	ActionMerge      Action = "merge"
)

// Actions lists every metered action. The order is stable and used by
// status displays.
var Actions = []Action{ActionGeneration, ActionMerge}

// Valid reports whether the action is one of the metered kinds.
func (a Action) Valid() bool {
	return a == ActionGeneration || a == ActionMerge
}

// Shape is an output aspect-ratio identifier restricted per plan.
type Shape string

const (
	ShapeSquare    Shape = "1:1"
	ShapePortrait  Shape = "4:5"
	ShapeClassic   Shape = "3:4"
	ShapePhoto     Shape = "2:3"
	ShapeWide      Shape = "16:9"
	ShapeVertical  Shape = "9:16"
)

// Quality is an ordered output quality tier.
type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHD       Quality = "hd"
	QualityUltra    Quality = "ultra"
)

// Support is a descriptive support tier surfaced to pricing pages.
// It is never enforced by the evaluator.
type Support string

const (
	SupportCommunity Support = "community"
	SupportPriority  Support = "priority"
	SupportDedicated Support = "dedicated"
)

const (
	// Unlimited indicates no ceiling for an action (-1 chosen for SQL compatibility).
	Unlimited int64 = -1
)

// Money represents a monetary amount in the smallest currency unit.
// $19.00 USD is Amount: 1900, Currency: "USD".
type Money struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

// BillingInterval represents the billing frequency for a plan.
type BillingInterval string

const (
	BillingIntervalNone    BillingInterval = "none" // free plans with no billing
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalAnnual  BillingInterval = "annual"
)

package types

// PlanID identifies a subscription plan
type PlanID string

const (
	PlanStarter      PlanID = "starter"
	PlanProfessional PlanID = "professional"
	PlanEnterprise   PlanID = "enterprise"
)

// Plan is a subscription tier shown on the pricing page and sold through checkout
type Plan struct {
	ID           PlanID   `json:"id"`
	Name         string   `json:"name"`
	MonthlyPrice int      `json:"monthlyPrice"` // whole US dollars
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Highlighted  bool     `json:"highlighted,omitempty"`
}

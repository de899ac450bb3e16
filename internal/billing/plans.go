package billing

import "github.com/jonathan/copydesk/internal/types"

var plans = []types.Plan{
	{
		ID:           types.PlanStarter,
		Name:         "Starter",
		MonthlyPrice: 499,
		Description:  "For founders who need a steady drumbeat of content.",
		Features: []string{
			"4 blog posts per month",
			"Brand voice profile",
			"1 revision round per piece",
			"Email support",
		},
	},
	{
		ID:           types.PlanProfessional,
		Name:         "Professional",
		MonthlyPrice: 1299,
		Description:  "For marketing teams running several channels at once.",
		Features: []string{
			"12 pieces per month across any format",
			"Brand voice profile with quarterly refresh",
			"Unlimited revisions",
			"SEO keyword research",
			"Dedicated editor",
		},
		Highlighted: true,
	},
	{
		ID:           types.PlanEnterprise,
		Name:         "Enterprise",
		MonthlyPrice: 3499,
		Description:  "For organisations with multiple brands and approval chains.",
		Features: []string{
			"Custom volume",
			"Multiple brand voice profiles",
			"Approval workflows",
			"Slack channel with your writing team",
			"Quarterly content strategy review",
		},
	},
}

// Plans returns the plan catalog in display order.
func Plans() []types.Plan {
	out := make([]types.Plan, len(plans))
	copy(out, plans)
	return out
}

// LookupPlan returns the plan with id.
func LookupPlan(id types.PlanID) (types.Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return types.Plan{}, false
}

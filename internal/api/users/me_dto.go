package users

import (
	"imaginify-backend/internal/domain/plans"
	"imaginify-backend/internal/domain/users"
)

type MeResponse struct {
	User    users.User `json:"user"`
	Billing BillingDTO `json:"billing"`
}

type BillingDTO struct {
	PlanName      string `json:"planName"`
	CreditBalance int    `json:"creditBalance"`
}

func BuildMeResponse(u *users.User) MeResponse {
	planName := ""
	if plan, ok := plans.ByID(u.PlanID); ok {
		planName = plan.Name
	}
	return MeResponse{
		User: *u,
		Billing: BillingDTO{
			PlanName:      planName,
			CreditBalance: u.CreditBalance,
		},
	}
}

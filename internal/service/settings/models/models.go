package models

import (
	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// SettingsResponse настройки ресторана в формате API
type SettingsResponse struct {
	EnableDeposit           bool   `json:"enableDeposit"`
	DepositPerPerson        string `json:"depositPerPerson"`
	FlexibleCapacity        bool   `json:"flexibleCapacity"`
	RequireManualApproval   bool   `json:"requireManualApproval"`
	ManualValidationMessage string `json:"manualValidationMessage"`
	MinNoticeMinutes        int    `json:"minNoticeMinutes"`
	ClosedWeekdays          []int  `json:"closedWeekdays"` // 0 = воскресенье
}

// FromDomainSettings конвертирует доменные настройки в response
func FromDomainSettings(s domain.Settings) *SettingsResponse {
	days := make([]int, 0, len(s.ClosedWeekdays))
	for _, d := range s.ClosedWeekdays {
		days = append(days, int(d))
	}

	return &SettingsResponse{
		EnableDeposit:           s.DepositEnabled,
		DepositPerPerson:        s.DepositPerPerson.StringFixed(2),
		FlexibleCapacity:        s.FlexibleCapacity,
		RequireManualApproval:   s.RequireManualApproval,
		ManualValidationMessage: s.ManualValidationMessage,
		MinNoticeMinutes:        s.MinNoticeMinutes,
		ClosedWeekdays:          days,
	}
}

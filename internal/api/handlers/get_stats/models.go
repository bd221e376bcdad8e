package get_stats

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/money"
)

// StatsResponse HTTP response model. Available false, если статистику еще не удалось загрузить.
type StatsResponse struct {
	Available  bool              `json:"available"`
	AsCustomer RoleStatsResponse `json:"asCustomer"`
	AsStylist  RoleStatsResponse `json:"asStylist"`
}

// RoleStatsResponse статистика по одной роли
type RoleStatsResponse struct {
	Total      int          `json:"total"`
	Pending    int          `json:"pending"`
	Confirmed  int          `json:"confirmed"`
	InProgress int          `json:"inProgress"`
	Completed  int          `json:"completed"`
	Cancelled  int          `json:"cancelled"`
	Amount     money.Amount `json:"amount"`
}

// FromDomainStats конвертирует статистику в HTTP response
func FromDomainStats(stats *domain.BookingStats) *StatsResponse {
	if stats == nil {
		return &StatsResponse{}
	}
	return &StatsResponse{
		Available:  true,
		AsCustomer: fromRoleStats(stats.AsCustomer),
		AsStylist:  fromRoleStats(stats.AsStylist),
	}
}

func fromRoleStats(s domain.RoleStats) RoleStatsResponse {
	return RoleStatsResponse{
		Total:      s.Total,
		Pending:    s.Pending,
		Confirmed:  s.Confirmed,
		InProgress: s.InProgress,
		Completed:  s.Completed,
		Cancelled:  s.Cancelled,
		Amount:     money.Amount(s.AmountMinor),
	}
}

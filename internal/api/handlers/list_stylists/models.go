package list_stylists

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/integrations/simulated"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/money"
)

// StylistsResponse HTTP response model
type StylistsResponse struct {
	Stylists []CatalogStylistResponse `json:"stylists"`
}

// CatalogStylistResponse мастер демо-каталога вместе с услугами
type CatalogStylistResponse struct {
	handlers.StylistResponse
	Address   string                     `json:"address"`
	Available bool                       `json:"isAvailable"`
	Services  []handlers.ServiceResponse `json:"services"`
}

// FromCatalog конвертирует каталог в HTTP response
func FromCatalog(stylists []simulated.Stylist) *StylistsResponse {
	resp := &StylistsResponse{Stylists: make([]CatalogStylistResponse, 0, len(stylists))}
	for _, s := range stylists {
		item := CatalogStylistResponse{
			StylistResponse: handlers.StylistResponse{
				ID:          s.Summary.ID,
				DisplayName: s.Summary.DisplayName,
				AvatarURL:   s.Summary.AvatarURL,
				Verified:    s.Summary.Verified,
			},
			Address:   s.Address,
			Available: s.Available,
			Services:  make([]handlers.ServiceResponse, 0, len(s.Services)),
		}
		for _, svc := range s.Services {
			item.Services = append(item.Services, handlers.ServiceResponse{
				ID:              svc.ID,
				Name:            svc.Name,
				Price:           money.Amount(svc.PriceMinor),
				DurationMinutes: svc.EstimatedDuration,
			})
		}
		resp.Stylists = append(resp.Stylists, item)
	}
	return resp
}

package watcher

import "chargeview/backend/services/monitor/internal/model"

// fallbackChargers is the fixed dataset served when the dashboard API is
// unreachable and the fallback mode is "fixtures". It mirrors the
// dashboard's own development fixtures.
func fallbackChargers() []model.Charger {
	return []model.Charger{
		{ID: "CHG001", Name: "Seoul Station", Location: "Seoul Jung-gu", Status: model.StatusNormal, LastConnection: "2024-01-01T00:00:00Z"},
		{ID: "CHG002", Name: "Gangnam Station", Location: "Seoul Gangnam-gu", Status: model.StatusNormal, LastConnection: "2024-01-01T00:00:00Z"},
		{ID: "CHG003", Name: "Busan Station", Location: "Busan Haeundae-gu", Status: model.StatusDisconnected, LastConnection: "2024-01-01T00:00:00Z"},
		{ID: "CHG004", Name: "Incheon Airport", Location: "Incheon Jung-gu", Status: model.StatusNormal, LastConnection: "2024-01-01T00:00:00Z"},
		{ID: "CHG005", Name: "Daejeon Station", Location: "Daejeon Dong-gu", Status: model.StatusDisconnected, LastConnection: "2024-01-01T00:00:00Z"},
	}
}

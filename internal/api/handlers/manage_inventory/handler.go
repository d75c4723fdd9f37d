package manage_inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/inventory"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidZoneID       = "некорректный ID зоны"
	msgInvalidTableID      = "некорректный ID стола"
	msgInvalidData         = "некорректные данные"
	msgZoneNotFound        = "зона не найдена"
	msgTableNotFound       = "стол не найден"
)

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleListZones GET /api/v1/restaurants/{restaurantId}/admin/zones
func (h *Handler) HandleListZones(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("GET /admin/zones - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	zones, err := h.service.ListZones(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /admin/zones - Failed to list zones: tenant=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/zones - tenant=%s, count=%d", tenantID, len(zones))
	handlers.RespondJSON(w, http.StatusOK, FromDomainZones(zones))
}

// HandleCreateZone POST /api/v1/restaurants/{restaurantId}/admin/zones
func (h *Handler) HandleCreateZone(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("POST /admin/zones - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	var req CreateZoneRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/zones - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	zone, err := h.service.CreateZone(r.Context(), req.ToDomain(tenantID))
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidInput) {
			h.logger.Warn("POST /admin/zones - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /admin/zones - Failed to create zone: tenant=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/zones - Zone created: tenant=%s, id=%d", tenantID, zone.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainZone(zone))
}

// HandleDeleteZone DELETE /api/v1/restaurants/{restaurantId}/admin/zones/{zoneId}
func (h *Handler) HandleDeleteZone(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("DELETE /admin/zones - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	zoneID, err := handlers.PathInt64(r, "zoneId")
	if err != nil {
		h.logger.Warn("DELETE /admin/zones - Invalid zone ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidZoneID)
		return
	}

	if err := h.service.DeleteZone(r.Context(), tenantID, zoneID); err != nil {
		if errors.Is(err, inventory.ErrZoneNotFound) {
			h.logger.Warn("DELETE /admin/zones - Zone not found: tenant=%s, id=%d", tenantID, zoneID)
			handlers.RespondNotFound(w, msgZoneNotFound)
			return
		}
		h.logger.Error("DELETE /admin/zones - Failed to delete zone: tenant=%s, id=%d, error=%v", tenantID, zoneID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/zones - Zone deleted: tenant=%s, id=%d", tenantID, zoneID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleListTables GET /api/v1/restaurants/{restaurantId}/admin/tables?zoneId=
func (h *Handler) HandleListTables(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("GET /admin/tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	var zoneID *int64
	if raw := r.URL.Query().Get("zoneId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /admin/tables - Invalid zone ID: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidZoneID)
			return
		}
		zoneID = &id
	}

	tables, err := h.service.ListTables(r.Context(), tenantID, zoneID)
	if err != nil {
		h.logger.Error("GET /admin/tables - Failed to list tables: tenant=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/tables - tenant=%s, count=%d", tenantID, len(tables))
	handlers.RespondJSON(w, http.StatusOK, FromDomainTables(tables))
}

// HandleCreateTable POST /api/v1/restaurants/{restaurantId}/admin/tables
func (h *Handler) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("POST /admin/tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	var req CreateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	table, err := h.service.CreateTable(r.Context(), req.ToDomain(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrInvalidInput):
			h.logger.Warn("POST /admin/tables - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
		case errors.Is(err, inventory.ErrZoneNotFound):
			h.logger.Warn("POST /admin/tables - Zone not found: tenant=%s, zone=%d", tenantID, req.ZoneID)
			handlers.RespondNotFound(w, msgZoneNotFound)
		default:
			h.logger.Error("POST /admin/tables - Failed to create table: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/tables - Table created: tenant=%s, id=%d", tenantID, table.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainTable(table))
}

// HandleDeleteTable DELETE /api/v1/restaurants/{restaurantId}/admin/tables/{tableId}
func (h *Handler) HandleDeleteTable(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.RestaurantID(r)
	if err != nil {
		h.logger.Warn("DELETE /admin/tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	tableID, err := handlers.PathInt64(r, "tableId")
	if err != nil {
		h.logger.Warn("DELETE /admin/tables - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	if err := h.service.DeleteTable(r.Context(), tenantID, tableID); err != nil {
		if errors.Is(err, inventory.ErrTableNotFound) {
			h.logger.Warn("DELETE /admin/tables - Table not found: tenant=%s, id=%d", tenantID, tableID)
			handlers.RespondNotFound(w, msgTableNotFound)
			return
		}
		h.logger.Error("DELETE /admin/tables - Failed to delete table: tenant=%s, id=%d, error=%v", tenantID, tableID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/tables - Table deleted: tenant=%s, id=%d", tenantID, tableID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/search"
	"github.com/staynest/staynest-backend/internal/service"
)

type PropertyHandler struct {
	svc service.PropertyService
}

func NewPropertyHandler(svc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

type PropertyResponse struct {
	ID            uint64   `json:"id"`
	HostUID       string   `json:"hostUid"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	PropertyType  string   `json:"propertyType,omitempty"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	PostalCode    string   `json:"postalCode,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	PricePerNight float64  `json:"pricePerNight"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	MaxGuests     int      `json:"maxGuests"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsActive      bool     `json:"isActive"`
	AverageRating float64  `json:"averageRating"`
	TotalReviews  int      `json:"totalReviews"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      int                `json:"total"`
}

type PropertyRequest struct {
	Title         string   `json:"title" validate:"required,max=120"`
	Description   string   `json:"description"`
	PropertyType  string   `json:"propertyType"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	State         string   `json:"state" validate:"required"`
	Country       string   `json:"country"`
	PostalCode    string   `json:"postalCode"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	PricePerNight *float64 `json:"pricePerNight" validate:"omitempty,gte=0"`
	Bedrooms      int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int      `json:"bathrooms" validate:"gte=0"`
	MaxGuests     int      `json:"maxGuests" validate:"gte=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"isActive"`
}

type UpdatePropertyRequest struct {
	Title         string   `json:"title" validate:"omitempty,max=120"`
	Description   string   `json:"description"`
	PropertyType  string   `json:"propertyType"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	PostalCode    string   `json:"postalCode"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	PricePerNight *float64 `json:"pricePerNight" validate:"omitempty,gte=0"`
	Bedrooms      int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int      `json:"bathrooms" validate:"gte=0"`
	MaxGuests     int      `json:"maxGuests" validate:"gte=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"isActive"`
}

func toPropertyResponse(p *model.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		HostUID:       p.HostUID,
		Title:         p.Title,
		Description:   p.Description,
		PropertyType:  p.PropertyType,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		Country:       p.Country,
		PostalCode:    p.PostalCode,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		PricePerNight: p.PricePerNight,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		MaxGuests:     p.MaxGuests,
		Amenities:     p.Amenities,
		Images:        p.Images,
		IsActive:      p.IsActive,
		AverageRating: p.AverageRating,
		TotalReviews:  p.TotalReviews,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPropertyList(props []model.Property) PropertyListResponse {
	resp := PropertyListResponse{
		Properties: make([]PropertyResponse, 0, len(props)),
		Total:      len(props),
	}
	for i := range props {
		resp.Properties = append(resp.Properties, toPropertyResponse(&props[i]))
	}
	return resp
}

// List serves the active collection, filtered in memory by the optional query
// parameters.
func (h *PropertyHandler) List(c echo.Context) error {
	filters, err := filtersFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	props, err := h.svc.Search(c.Request().Context(), filters)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch properties"))
	}
	return c.JSON(http.StatusOK, toPropertyList(props))
}

func filtersFromQuery(c echo.Context) (search.Filters, error) {
	var f search.Filters
	f.Location = c.QueryParam("location")
	if v := c.QueryParam("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, err
		}
		f.MinPrice = &p
	}
	if v := c.QueryParam("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, err
		}
		f.MaxPrice = &p
	}
	f.Guests, _ = strconv.Atoi(c.QueryParam("guests"))
	f.Bedrooms, _ = strconv.Atoi(c.QueryParam("bedrooms"))
	f.Bathrooms, _ = strconv.Atoi(c.QueryParam("bathrooms"))
	if v := c.QueryParams()["amenity"]; len(v) > 0 {
		f.Amenities = v
	}
	if latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng"); latStr != "" && lngStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return f, err
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return f, err
		}
		f.Latitude, f.Longitude = &lat, &lng
		f.RadiusKm, _ = strconv.ParseFloat(c.QueryParam("radius_km"), 64)
		if f.RadiusKm <= 0 {
			f.RadiusKm = 25
		}
	}
	return f, nil
}

func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "property not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch property"))
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h *PropertyHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	props, err := h.svc.ListByHost(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch properties"))
	}
	return c.JSON(http.StatusOK, toPropertyList(props))
}

func (h *PropertyHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	p, err := h.svc.Create(c.Request().Context(), uid, propertyInput(req))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toPropertyResponse(p))
}

func (h *PropertyHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req UpdatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	p, err := h.svc.Update(c.Request().Context(), id, uid, service.PropertyInput{
		Title:         req.Title,
		Description:   req.Description,
		PropertyType:  req.PropertyType,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
		Images:        req.Images,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id, uid); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func propertyInput(req PropertyRequest) service.PropertyInput {
	return service.PropertyInput{
		Title:         req.Title,
		Description:   req.Description,
		PropertyType:  req.PropertyType,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
		Images:        req.Images,
		IsActive:      req.IsActive,
	}
}

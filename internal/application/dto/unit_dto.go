package dto

import "time"

// CreateUnitRequest body para POST /api/units. Para kind=pack son
// obligatorios base_unit_id y units_per_pack > 0; para kind=base se ignoran.
type CreateUnitRequest struct {
	Name         string `json:"name" validate:"required"`
	Kind         string `json:"kind" validate:"required,oneof=base pack"`
	BaseUnitID   string `json:"base_unit_id"`
	UnitsPerPack int64  `json:"units_per_pack"`
}

// UpdateUnitRequest body para PUT /api/units/:id.
type UpdateUnitRequest struct {
	Name         string `json:"name" validate:"required"`
	Kind         string `json:"kind" validate:"required,oneof=base pack"`
	BaseUnitID   string `json:"base_unit_id"`
	UnitsPerPack int64  `json:"units_per_pack"`
}

// UnitResponse una unidad de medida en respuestas.
type UnitResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	BaseUnitID   string    `json:"base_unit_id,omitempty"`
	UnitsPerPack int64     `json:"units_per_pack,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

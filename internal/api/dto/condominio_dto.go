package dto

import "github.com/spec-kit/condo-service/internal/domain"

// CondominioRequest payload for create.
type CondominioRequest struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
}

func (r *CondominioRequest) Validate() error {
	return Struct(r)
}

// CondominioUpdateRequest payload for update.
type CondominioUpdateRequest struct {
	Name *string `json:"name" validate:"omitnil,notblank,max=200"`
}

func (r *CondominioUpdateRequest) Validate() error {
	return Struct(r)
}

// CondominioResponse is the public view of a condominio.
type CondominioResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewCondominioResponse(c *domain.Condominio) CondominioResponse {
	return CondominioResponse{ID: c.ID, Name: c.Name}
}

func NewCondominioList(condos []domain.Condominio) []CondominioResponse {
	out := make([]CondominioResponse, 0, len(condos))
	for i := range condos {
		out = append(out, NewCondominioResponse(&condos[i]))
	}
	return out
}

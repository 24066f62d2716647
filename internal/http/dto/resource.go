package dto

import "github.com/kish38/paas-api/internal/domain/repository"

// ResourceResponse representa un recurso en respuestas.
type ResourceResponse struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	Value string `json:"resource_value"`
}

// CreateResourceRequest para crear un recurso. Owner es opcional: un
// admin puede crear a nombre de otra cuenta; para el resto se ignora
// cualquier valor distinto del propio.
type CreateResourceRequest struct {
	Owner string `json:"owner,omitempty"`
	Value string `json:"resource_value"`
}

// UpdateResourceRequest para modificar un recurso. La presencia del
// campo owner, con cualquier valor, se rechaza: el dueño es inmutable.
type UpdateResourceRequest struct {
	Owner *string `json:"owner,omitempty"`
	Value *string `json:"resource_value,omitempty"`
}

// FromResource mapea el recurso de dominio a su representación pública.
func FromResource(res *repository.Resource) ResourceResponse {
	return ResourceResponse{
		ID:    res.ID.String(),
		Owner: res.OwnerID.String(),
		Value: res.Value,
	}
}

func FromResources(ress []repository.Resource) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(ress))
	for i := range ress {
		out = append(out, FromResource(&ress[i]))
	}
	return out
}

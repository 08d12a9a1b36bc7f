package domain

// Domain contains the catalog records exchanged with the remote service.

// Vehicle mirrors one car entry of the remote catalog. ID stays empty until
// the record has been persisted remotely.
type Vehicle struct {
	ID      string  `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name    string  `json:"name" yaml:"name"`
	Brand   string  `json:"brand" yaml:"brand"`
	GasType int     `json:"gasType" yaml:"gasType"`
	Price   float64 `json:"price" yaml:"price"`
}

// HasID reports whether the vehicle has been persisted remotely.
func (v Vehicle) HasID() bool { return v.ID != "" }

// Brand is a read-only FIPE brand reference.
type Brand struct {
	ID       int    `json:"id" yaml:"id"`
	Key      string `json:"key" yaml:"key"`
	Name     string `json:"name" yaml:"name"`
	FipeName string `json:"fipe_name" yaml:"fipe_name"`
}

// DisplayName prefers the FIPE label and falls back to the short name.
func (b Brand) DisplayName() string {
	if b.FipeName != "" {
		return b.FipeName
	}
	return b.Name
}

const (
	GasTypeFlex     = 0
	GasTypeAlcohol  = 1
	GasTypeGasoline = 2
)

// GasTypeLabel returns the human label for a fuel code.
func GasTypeLabel(code int) string {
	switch code {
	case GasTypeFlex:
		return "Flex"
	case GasTypeAlcohol:
		return "Álcool"
	case GasTypeGasoline:
		return "Gasolina"
	default:
		return "Desconhecido"
	}
}

package model

// ServiceType describes the laundry service variant chosen by the customer.
type ServiceType string

const (
	ServiceNormal  ServiceType = "NORMAL"
	ServiceExpress ServiceType = "EXPRESS"
)

// Label returns the customer-facing service name.
func (s ServiceType) Label() string {
	switch s {
	case ServiceExpress:
		return "Servicio exprés"
	case ServiceNormal:
		return "Lavado y secado"
	default:
		return "Sin definir"
	}
}

// ZonePrice binds a delivery zone to its base price in minor currency units.
type ZonePrice struct {
	Zone      string `yaml:"zone"`
	BasePrice int64  `yaml:"price"`
}

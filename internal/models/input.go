package models

// BrokerInput is the payload for adding a broker.
type BrokerInput struct {
	Name   string `json:"name" validate:"notblank,min=2,max=50"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required,phone10"`
	Firm   string `json:"firmName,omitempty" validate:"max=100"`
	Region string `json:"region,omitempty"`
}

// RegionInput is the payload for creating a region.
type RegionInput struct {
	Name        string `json:"name" validate:"notblank,min=2,max=50"`
	City        string `json:"city,omitempty"`
	State       string `json:"state" validate:"notblank"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// NotificationInput is the payload for broadcasting a notification.
type NotificationInput struct {
	Title    string `json:"title" validate:"required,max=100"`
	Message  string `json:"message" validate:"required,max=1000"`
	Type     string `json:"type,omitempty"`
	Audience string `json:"audience,omitempty" validate:"omitempty,oneof=all brokers customers"`
}

// ImportKind is one of the CSV import targets.
type ImportKind string

const (
	ImportBrokers    ImportKind = "brokers"
	ImportLeads      ImportKind = "leads"
	ImportProperties ImportKind = "properties"
)

// ImportKinds lists every import target in tab order.
var ImportKinds = []ImportKind{ImportBrokers, ImportLeads, ImportProperties}

// Valid reports whether k names an import target.
func (k ImportKind) Valid() bool {
	switch k {
	case ImportBrokers, ImportLeads, ImportProperties:
		return true
	}
	return false
}

// ImportResult is the normalized outcome of a bulk import.
type ImportResult struct {
	Total        int      `json:"total"`
	Imported     int      `json:"imported"`
	Failed       int      `json:"failed"`
	ImportedRows []string `json:"imported_rows,omitempty"`
	Errors       []string `json:"errors,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// LoginInput carries admin credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

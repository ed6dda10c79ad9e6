package models

// Broker status values as reported in approvedByAdmin.
const (
	BrokerBlocked   = "blocked"
	BrokerUnblocked = "unblocked"
)

// Broker is the display-ready broker row.
type Broker struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Firm            string `json:"firm"`
	Region          string `json:"region"`
	Membership      string `json:"membership"`
	ApprovedByAdmin string `json:"approved_by_admin"`
	Verified        bool   `json:"verified"`
	StatusLabel     string `json:"status_label"`
	LeadsCount      int    `json:"leads_count"`
	PropertiesCount int    `json:"properties_count"`
	ProfileImage    string `json:"profile_image"`
	KYCDocument     string `json:"kyc_document,omitempty"`
	JoinedAgo       string `json:"joined_ago"`
}

// Blocked reports whether the broker is currently blocked.
func (b Broker) Blocked() bool {
	return b.ApprovedByAdmin == BrokerBlocked
}

// BrokerSummary holds the header counters on the brokers page.
type BrokerSummary struct {
	Total     int `json:"total"`
	Blocked   int `json:"blocked"`
	Unblocked int `json:"unblocked"`
	Verified  int `json:"verified"`
}

// Lead is an enquiry card.
type Lead struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Requirement  string `json:"requirement"`
	PropertyType string `json:"property_type"`
	Region       string `json:"region"`
	Budget       string `json:"budget"`
	Status       string `json:"status"`
	BrokerName   string `json:"broker_name"`
	CreatedAgo   string `json:"created_ago"`
}

// Property approval states as reported in approvedByAdmin.
const (
	PropertyPending  = "pending"
	PropertyApproved = "approved"
	PropertyRejected = "rejected"
)

// PropertyCard is a property tile in the listing grid and the detail page.
type PropertyCard struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	PropertyType    string   `json:"property_type"`
	Location        string   `json:"location"`
	Price           string   `json:"price"`
	PriceFull       string   `json:"price_full"`
	Bedrooms        int      `json:"bedrooms"`
	AreaSqft        int      `json:"area_sqft"`
	Status          string   `json:"status"`
	ApprovedByAdmin string   `json:"approved_by_admin"`
	BrokerName      string   `json:"broker_name"`
	Image           string   `json:"image"`
	Images          []string `json:"images,omitempty"`
	PostedAgo       string   `json:"posted_ago"`
}

// Region is a serviceable city/area.
type Region struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Description  string `json:"description"`
	BrokersCount int    `json:"brokers_count"`
}

// Notification is an entry in the admin notification feed.
type Notification struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Read     bool   `json:"read"`
	Audience string `json:"audience"`
	Ago      string `json:"ago"`
}

// Contact is a support request submitted through the app.
type Contact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	CreatedAgo string `json:"created_ago"`
}

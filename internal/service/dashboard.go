package service

import (
	"sort"

	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/session"
)

// Repositories groups the backend clients the dashboard needs.
type Repositories struct {
	Brokers       repository.BrokerRepository
	Leads         repository.LeadRepository
	Properties    repository.PropertyRepository
	Regions       repository.RegionRepository
	Notifications repository.NotificationRepository
	Contacts      repository.ContactRepository
	Imports       repository.ImportRepository
	Auth          repository.AuthRepository
}

// Dashboard holds one service per admin page plus the stateful list views
// for the single admin session this process serves.
type Dashboard struct {
	Auth          *Auth
	Brokers       *Brokers
	Leads         *Leads
	Properties    *Properties
	Regions       *Regions
	Notifications *Notifications
	Contacts      *Contacts
	Imports       *Imports

	views map[string]View
}

// NewDashboard wires every page service.
func NewDashboard(repos Repositories, sess *session.Session, settings Settings) *Dashboard {
	settings = settings.withDefaults()
	d := &Dashboard{
		Auth:          NewAuth(sess, repos.Auth),
		Brokers:       NewBrokers(repos.Brokers, settings),
		Leads:         NewLeads(repos.Leads, settings),
		Properties:    NewProperties(repos.Properties, settings),
		Regions:       NewRegions(repos.Regions, settings),
		Notifications: NewNotifications(repos.Notifications, settings),
		Contacts:      NewContacts(repos.Contacts, settings),
		Imports:       NewImports(repos.Imports, settings),
	}
	d.views = make(map[string]View)
	for _, v := range []View{
		d.Brokers.View(),
		d.Leads.View(),
		d.Properties.View(),
		d.Regions.View(),
		d.Notifications.View(),
		d.Contacts.View(),
	} {
		d.views[v.Resource()] = v
	}
	return d
}

// View returns the stateful list view for resource.
func (d *Dashboard) View(resource string) (View, bool) {
	v, ok := d.views[resource]
	return v, ok
}

// Resources lists the resources that have a view.
func (d *Dashboard) Resources() []string {
	out := make([]string, 0, len(d.views))
	for r := range d.views {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Close disposes every view.
func (d *Dashboard) Close() {
	for _, v := range d.views {
		v.Dispose()
	}
}

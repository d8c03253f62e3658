package model

import "time"

// Record is one item or user entry. Both kinds share the same fields.
type Record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Amount    int64     `json:"amount"`
	Country   string    `json:"country"`
	AgentType string    `json:"agentType"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
}

// Record statuses. A record only ever moves from active to inactive.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Active reports whether the record can still be edited or deactivated.
func (r *Record) Active() bool {
	return r.Status == StatusActive
}

// Option is a value offered by the admin pages together with its label.
type Option struct {
	Value string
	Label string
}

// Countries lists the country codes the admin pages offer.
var Countries = []Option{
	{Value: "CL", Label: "CL"},
	{Value: "PER", Label: "PE"},
	{Value: "AR", Label: "AR"},
	{Value: "CO", Label: "CO"},
	{Value: "BR", Label: "BR"},
}

// AgentTypes lists the agent types the admin pages offer.
var AgentTypes = []Option{
	{Value: "INTERBANK", Label: "Interbank"},
	{Value: "YAPE", Label: "Yape"},
	{Value: "BANCO BCP", Label: "Banco BCP"},
}

// Statuses lists both record statuses with their labels.
var Statuses = []Option{
	{Value: StatusActive, Label: "Activo"},
	{Value: StatusInactive, Label: "Inactivo"},
}

// Label returns the label of value in opts, or value itself if unknown.
func Label(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

package domain

import "time"

// HasContactPhone is implemented by every business document that can be
// delivered over the messaging channel.
type HasContactPhone interface {
	ContactPhone() (string, bool)
}

// CustomerLinked documents can fall back to the customer's primary contact.
type CustomerLinked interface {
	CustomerRef() string
}

type Invoice struct {
	Name           string
	Tenant         string
	Customer       string
	CustomerName   string
	ContactMobile  string
	MobileNo       string
	Phone          string
	CustomerMobile string
	GrandTotal     float64
	Currency       string
	DueDate        time.Time
}

func (i Invoice) ContactPhone() (string, bool) {
	return firstNonEmpty(i.ContactMobile, i.MobileNo, i.Phone, i.CustomerMobile)
}

func (i Invoice) CustomerRef() string { return i.Customer }

// PrintableDocument is any document rendered to PDF before sending.
type PrintableDocument struct {
	DocType     string
	Name        string
	Tenant      string
	Customer    string
	PrintFormat string
	Letterhead  bool

	ContactMobile     string
	MobileNo          string
	Phone             string
	CustomerMobile    string
	CustomMobilePhone string
	ContactPhoneNo    string
}

func (d PrintableDocument) ContactPhone() (string, bool) {
	return firstNonEmpty(d.ContactMobile, d.MobileNo, d.Phone, d.CustomerMobile, d.CustomMobilePhone, d.ContactPhoneNo)
}

func (d PrintableDocument) CustomerRef() string { return d.Customer }

// Contact is a person or customer record that messages can be linked to.
type Contact struct {
	ID        string `db:"id" json:"contactId"`
	FullName  string `db:"full_name" json:"name"`
	MobileNo  string `db:"mobile_no" json:"phone"`
	Kind      string `db:"kind" json:"type"`
	Customer  string `db:"customer" json:"customer,omitempty"`
	IsPrimary bool   `db:"is_primary" json:"isPrimary,omitempty"`
}

func firstNonEmpty(values ...string) (string, bool) {
	for _, v := range values {
		if v != "" {
			return v, true
		}
	}
	return "", false
}

package models

// ContactFields is the payload for creating a contact in the accounting
// system. CompanyName and Phone are pointers because the API distinguishes
// null from an empty string for them.
type ContactFields struct {
	IsIndividual bool    `json:"is_individual"`
	IsSupplier   bool    `json:"is_supplier"`
	CompanyName  *string `json:"company_name"`
	PersonName   string  `json:"contact_person_name"`
	PersonEmail  string  `json:"contact_person_email_address"`
	Address      string  `json:"address"`
	Zipcode      string  `json:"zipcode"`
	City         string  `json:"city"`
	CountryCode  string  `json:"country_code"`
	Phone        *string `json:"phone"`
}

package processor

import (
	"invoicesync/internal/vat"
	"invoicesync/pkg/models"
)

// contactFieldsFromBilling maps webshop billing details onto a new
// accounting contact. Customers without a company name register as
// individuals; with one they register as a company and supplier. The
// address joins both lines when a second is present. A missing billing
// country falls back to the home country.
func contactFieldsFromBilling(billing models.Billing) models.ContactFields {
	hasCompany := billing.Company != ""

	address := billing.Address1
	if billing.Address2 != "" {
		address = billing.Address1 + ", " + billing.Address2
	}

	country := billing.Country
	if country == "" {
		country = vat.HomeCountry
	}

	fields := models.ContactFields{
		IsIndividual: !hasCompany,
		IsSupplier:   hasCompany,
		PersonName:   billing.FirstName + " " + billing.LastName,
		PersonEmail:  billing.Email,
		Address:      address,
		Zipcode:      billing.Postcode,
		City:         billing.City,
		CountryCode:  country,
	}

	if hasCompany {
		fields.CompanyName = &billing.Company
	}
	if billing.Phone != "" {
		fields.Phone = &billing.Phone
	}

	return fields
}

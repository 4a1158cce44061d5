package models

import "time"

// RepresentativeData holds the identification of a legal representative,
// required when the client is a minor. Shape mirrors the client's own
// personal fields.
type RepresentativeData struct {
	Name         string `json:"name"`
	MotherName   string `json:"motherName"`
	FatherName   string `json:"fatherName"`
	CPF          string `json:"cpf"`
	RG           string `json:"rg"`
	RGIssuer     string `json:"rgIssuer"`
	RGIssuerUF   string `json:"rgIssuerUF"`
	IssueDate    string `json:"dataEmissao"` // YYYY-MM-DD
	DateOfBirth  string `json:"dateOfBirth"` // YYYY-MM-DD
	Nationality  string `json:"nacionalidade"`
	PlaceOfBirth string `json:"naturalidade"`
	CivilStatus  string `json:"estadoCivil"`
	Profession   string `json:"profissao"`
}

// Client represents a client of the office
type Client struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	CPF          string `json:"cpf" validate:"required"`
	RG           string `json:"rg"`
	RGIssuer     string `json:"rgIssuer"`
	RGIssuerUF   string `json:"rgIssuerUF"`
	IssueDate    string `json:"dataEmissao"` // YYYY-MM-DD
	MotherName   string `json:"motherName"`
	FatherName   string `json:"fatherName"`
	DateOfBirth  string `json:"dateOfBirth"` // YYYY-MM-DD
	Nationality  string `json:"nacionalidade"`
	PlaceOfBirth string `json:"naturalidade"`
	CivilStatus  string `json:"estadoCivil"`
	Profession   string `json:"profissao"`

	// Present only when the client is a minor at entry time. The store does
	// not enforce this; age gating stays with the form layer.
	LegalRepresentative *RepresentativeData `json:"legalRepresentative,omitempty"`

	Email string `json:"email"`
	Phone string `json:"phone"`

	// Structured postal address
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`

	CreatedAt time.Time `json:"createdAt"`
}

// IsMinor reports whether the client is under 18 on the given date.
// Returns false when the birth date is absent or malformed.
func (c *Client) IsMinor(today time.Time) bool {
	birth, err := time.Parse(time.DateOnly, c.DateOfBirth)
	if err != nil {
		return false
	}

	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age < 18
}

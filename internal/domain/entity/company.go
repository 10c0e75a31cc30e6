package entity

// Valores de branding por defecto cuando la cuenta de Stripe no los define.
const (
	DefaultBrandColor     = "#4f46e5"
	DefaultSecondaryColor = "#f3f4f6"
)

// CompanyInfo datos de la empresa emisora, derivados del recurso account de
// Stripe más la resolución del tax id y del logo. Los campos ausentes en el
// upstream quedan vacíos; la capa de presentación los muestra como "Not Set".
type CompanyInfo struct {
	Name           string
	Address        string // dirección formateada en una sola línea
	Email          string // email de soporte
	LogoURL        string
	VATID          string // valor legible, ya resuelto (no la referencia txi_)
	BrandColor     string
	SecondaryColor string
	Description    string
}

// Nombres de los campos legales, tal como se reportan en el email de aviso y
// en el homepage.
const (
	LegalFieldName    = "Company Name"
	LegalFieldAddress = "Company Address"
	LegalFieldEmail   = "Company Email"
	LegalFieldVATID   = "VAT ID"
)

// MissingLegalFields devuelve los nombres de los campos legales obligatorios
// que faltan. Una factura de cara al cliente solo puede emitirse con los
// cuatro presentes.
func (c CompanyInfo) MissingLegalFields() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, LegalFieldName)
	}
	if c.Address == "" {
		missing = append(missing, LegalFieldAddress)
	}
	if c.Email == "" {
		missing = append(missing, LegalFieldEmail)
	}
	if c.VATID == "" {
		missing = append(missing, LegalFieldVATID)
	}
	return missing
}

// LegalInfoComplete indica si los cuatro campos legales están presentes.
func (c CompanyInfo) LegalInfoComplete() bool {
	return len(c.MissingLegalFields()) == 0
}

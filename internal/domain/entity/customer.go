package entity

// CustomerAddress dirección postal del cliente, campo a campo como la entrega
// Stripe. Cualquier campo puede venir vacío.
type CustomerAddress struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Lines devuelve la dirección como líneas no vacías, lista para render
// (documento PDF o página de billing).
func (a CustomerAddress) Lines() []string {
	var lines []string
	if a.Line1 != "" {
		lines = append(lines, a.Line1)
	}
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	cityLine := joinNonEmpty(", ", a.City, a.State)
	if a.PostalCode != "" {
		if cityLine != "" {
			cityLine += " " + a.PostalCode
		} else {
			cityLine = a.PostalCode
		}
	}
	if cityLine != "" {
		lines = append(lines, cityLine)
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}

// CustomerData cliente de Stripe, uno a uno con un customer id.
type CustomerData struct {
	ID      string
	Name    string
	Email   string
	Address CustomerAddress
	VATID   string // tax id del cliente si lo registró; habilita la nota de reverse charge
}

// DisplayName nombre a mostrar, con fallback genérico.
func (c CustomerData) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return "Customer"
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

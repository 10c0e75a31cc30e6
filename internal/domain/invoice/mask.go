package invoice

import "strings"

// MaskEmail enmascara un email para display: john.doe@example.com → jo***e@e**.com.
// Nombres de hasta 3 caracteres muestran solo el primero. El valor original no
// es recuperable; se usa únicamente en el cuerpo del email y nunca para entrega.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	name, domain := parts[0], parts[1]

	var maskedName string
	if len(name) <= 3 {
		// Nombres muy cortos (incluso vacíos) muestran a lo sumo el primer char.
		if name == "" {
			maskedName = "***"
		} else {
			maskedName = name[:1] + "***"
		}
	} else {
		maskedName = name[:2] + "***" + name[len(name)-1:]
	}

	domainParts := strings.SplitN(domain, ".", 2)
	domainName := domainParts[0]
	tld := ""
	if len(domainParts) == 2 {
		tld = domainParts[1]
	}

	var maskedDomain string
	if len(domainName) <= 3 {
		maskedDomain = "**." + tld
	} else {
		maskedDomain = domainName[:1] + "**." + tld
	}

	return maskedName + "@" + maskedDomain
}

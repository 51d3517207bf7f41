package utils

import (
	"cybersentry-service/internal/pkg/constvars"
	"net"
	"regexp"
	"strings"
)

var regexEmail = regexp.MustCompile(constvars.RegexEmail)

func IsValidEmail(email string) bool {
	return regexEmail.MatchString(email)
}

// IsBusinessEmail reports whether the address is syntactically valid and its
// domain is not a known free/consumer mail provider. Used to reject
// domain-reconnaissance requests against personal mailboxes.
func IsBusinessEmail(email string) bool {
	if !IsValidEmail(email) {
		return false
	}
	return !IsFreeEmailProviderDomain(EmailDomain(email))
}

func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IsValidLanguageCode accepts report language hints of at most two
// characters, e.g. "en", "it", "d".
func IsValidLanguageCode(language string) bool {
	return len(language) >= 1 && len(language) <= 2
}

func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// ExtractCompanyName derives a display name for the company behind a business
// email address: the registrable label of the domain, title-cased,
// e.g. "exec@acme.com" -> "Acme", "it@mail.contoso.co.uk" -> "Contoso".
func ExtractCompanyName(email string) string {
	domain := EmailDomain(email)
	if domain == "" {
		return ""
	}

	labels := strings.Split(domain, ".")
	// Walk back past the TLD and common second-level public suffixes (co, com,
	// org, net, ac, gov as in co.uk/com.br) to the registrable label.
	idx := len(labels) - 2
	if idx > 0 {
		switch labels[idx] {
		case "co", "com", "org", "net", "ac", "gov":
			idx--
		}
	}
	if idx < 0 {
		idx = 0
	}

	name := labels[idx]
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

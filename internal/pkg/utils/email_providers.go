package utils

import (
	"strings"
	"sync"
)

// freeEmailProviderDomains is the reference set of free/consumer mail provider
// domains consulted by the business-email validator. The list follows the
// provider set the chat frontend already uses; extra domains can be appended
// through EXTRA_FREE_EMAIL_PROVIDER_DOMAINS without a rebuild.
var (
	freeEmailProviderDomains = map[string]struct{}{}
	onceFreeEmailProviders   sync.Once
)

var freeEmailProviderDomainList = []string{
	"gmail.com",
	"googlemail.com",
	"yahoo.com",
	"yahoo.co.uk",
	"yahoo.co.in",
	"yahoo.fr",
	"yahoo.de",
	"yahoo.it",
	"yahoo.es",
	"yahoo.com.br",
	"ymail.com",
	"rocketmail.com",
	"outlook.com",
	"outlook.it",
	"outlook.fr",
	"outlook.de",
	"outlook.es",
	"hotmail.com",
	"hotmail.it",
	"hotmail.fr",
	"hotmail.de",
	"hotmail.es",
	"hotmail.co.uk",
	"live.com",
	"live.it",
	"live.fr",
	"live.de",
	"msn.com",
	"icloud.com",
	"me.com",
	"mac.com",
	"aol.com",
	"aim.com",
	"protonmail.com",
	"proton.me",
	"pm.me",
	"tutanota.com",
	"tutanota.de",
	"tuta.io",
	"zoho.com",
	"zohomail.com",
	"mail.com",
	"email.com",
	"gmx.com",
	"gmx.net",
	"gmx.de",
	"gmx.at",
	"gmx.ch",
	"web.de",
	"t-online.de",
	"freenet.de",
	"libero.it",
	"virgilio.it",
	"tiscali.it",
	"alice.it",
	"tin.it",
	"orange.fr",
	"wanadoo.fr",
	"free.fr",
	"laposte.net",
	"sfr.fr",
	"yandex.com",
	"yandex.ru",
	"mail.ru",
	"inbox.ru",
	"list.ru",
	"bk.ru",
	"rambler.ru",
	"seznam.cz",
	"wp.pl",
	"o2.pl",
	"interia.pl",
	"op.pl",
	"rediffmail.com",
	"qq.com",
	"163.com",
	"126.com",
	"sina.com",
	"naver.com",
	"daum.net",
	"hanmail.net",
	"fastmail.com",
	"fastmail.fm",
	"hushmail.com",
	"mailinator.com",
	"personalmail.com",
}

// loadFreeEmailProviderDomains runs on the first lookup rather than in init,
// so godotenv has already populated the environment by the time the extra
// domains are read.
func loadFreeEmailProviderDomains() {
	for _, domain := range freeEmailProviderDomainList {
		freeEmailProviderDomains[domain] = struct{}{}
	}
	extra := GetEnvString("EXTRA_FREE_EMAIL_PROVIDER_DOMAINS", "")
	for _, domain := range strings.Split(extra, ",") {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			freeEmailProviderDomains[domain] = struct{}{}
		}
	}
}

func IsFreeEmailProviderDomain(domain string) bool {
	onceFreeEmailProviders.Do(loadFreeEmailProviderDomains)
	_, found := freeEmailProviderDomains[strings.ToLower(domain)]
	return found
}

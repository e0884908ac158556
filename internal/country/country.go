// Package country holds the static dial-code registry used by phone inputs.
// The list is fixed at compile time; lookups never touch the database.
package country

// Country is one entry in the dial-code registry.
type Country struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	DialCode string `json:"dial_code"`
	Flag     string `json:"flag"`
}

// countries is ordered for display; India first as the default market.
var countries = []Country{
	{Name: "India", Code: "IN", DialCode: "+91", Flag: "🇮🇳"},
	{Name: "United States", Code: "US", DialCode: "+1", Flag: "🇺🇸"},
	{Name: "United Kingdom", Code: "GB", DialCode: "+44", Flag: "🇬🇧"},
	{Name: "Canada", Code: "CA", DialCode: "+1", Flag: "🇨🇦"},
	{Name: "Australia", Code: "AU", DialCode: "+61", Flag: "🇦🇺"},
	{Name: "Germany", Code: "DE", DialCode: "+49", Flag: "🇩🇪"},
	{Name: "France", Code: "FR", DialCode: "+33", Flag: "🇫🇷"},
	{Name: "Japan", Code: "JP", DialCode: "+81", Flag: "🇯🇵"},
	{Name: "China", Code: "CN", DialCode: "+86", Flag: "🇨🇳"},
	{Name: "Brazil", Code: "BR", DialCode: "+55", Flag: "🇧🇷"},
	{Name: "Mexico", Code: "MX", DialCode: "+52", Flag: "🇲🇽"},
	{Name: "Russia", Code: "RU", DialCode: "+7", Flag: "🇷🇺"},
	{Name: "South Africa", Code: "ZA", DialCode: "+27", Flag: "🇿🇦"},
	{Name: "Italy", Code: "IT", DialCode: "+39", Flag: "🇮🇹"},
	{Name: "Spain", Code: "ES", DialCode: "+34", Flag: "🇪🇸"},
	{Name: "Netherlands", Code: "NL", DialCode: "+31", Flag: "🇳🇱"},
	{Name: "Belgium", Code: "BE", DialCode: "+32", Flag: "🇧🇪"},
	{Name: "Sweden", Code: "SE", DialCode: "+46", Flag: "🇸🇪"},
	{Name: "Norway", Code: "NO", DialCode: "+47", Flag: "🇳🇴"},
	{Name: "Denmark", Code: "DK", DialCode: "+45", Flag: "🇩🇰"},
	{Name: "Finland", Code: "FI", DialCode: "+358", Flag: "🇫🇮"},
	{Name: "Poland", Code: "PL", DialCode: "+48", Flag: "🇵🇱"},
	{Name: "Austria", Code: "AT", DialCode: "+43", Flag: "🇦🇹"},
	{Name: "Switzerland", Code: "CH", DialCode: "+41", Flag: "🇨🇭"},
	{Name: "Portugal", Code: "PT", DialCode: "+351", Flag: "🇵🇹"},
	{Name: "Greece", Code: "GR", DialCode: "+30", Flag: "🇬🇷"},
	{Name: "Ireland", Code: "IE", DialCode: "+353", Flag: "🇮🇪"},
	{Name: "New Zealand", Code: "NZ", DialCode: "+64", Flag: "🇳🇿"},
	{Name: "Singapore", Code: "SG", DialCode: "+65", Flag: "🇸🇬"},
	{Name: "Hong Kong", Code: "HK", DialCode: "+852", Flag: "🇭🇰"},
	{Name: "South Korea", Code: "KR", DialCode: "+82", Flag: "🇰🇷"},
	{Name: "Taiwan", Code: "TW", DialCode: "+886", Flag: "🇹🇼"},
	{Name: "Thailand", Code: "TH", DialCode: "+66", Flag: "🇹🇭"},
	{Name: "Malaysia", Code: "MY", DialCode: "+60", Flag: "🇲🇾"},
	{Name: "Philippines", Code: "PH", DialCode: "+63", Flag: "🇵🇭"},
	{Name: "Indonesia", Code: "ID", DialCode: "+62", Flag: "🇮🇩"},
	{Name: "Vietnam", Code: "VN", DialCode: "+84", Flag: "🇻🇳"},
	{Name: "Pakistan", Code: "PK", DialCode: "+92", Flag: "🇵🇰"},
	{Name: "Bangladesh", Code: "BD", DialCode: "+880", Flag: "🇧🇩"},
	{Name: "Sri Lanka", Code: "LK", DialCode: "+94", Flag: "🇱🇰"},
	{Name: "Nepal", Code: "NP", DialCode: "+977", Flag: "🇳🇵"},
	{Name: "United Arab Emirates", Code: "AE", DialCode: "+971", Flag: "🇦🇪"},
	{Name: "Saudi Arabia", Code: "SA", DialCode: "+966", Flag: "🇸🇦"},
	{Name: "Qatar", Code: "QA", DialCode: "+974", Flag: "🇶🇦"},
	{Name: "Kuwait", Code: "KW", DialCode: "+965", Flag: "🇰🇼"},
	{Name: "Bahrain", Code: "BH", DialCode: "+973", Flag: "🇧🇭"},
	{Name: "Oman", Code: "OM", DialCode: "+968", Flag: "🇴🇲"},
	{Name: "Israel", Code: "IL", DialCode: "+972", Flag: "🇮🇱"},
	{Name: "Turkey", Code: "TR", DialCode: "+90", Flag: "🇹🇷"},
	{Name: "Egypt", Code: "EG", DialCode: "+20", Flag: "🇪🇬"},
	{Name: "Nigeria", Code: "NG", DialCode: "+234", Flag: "🇳🇬"},
	{Name: "Kenya", Code: "KE", DialCode: "+254", Flag: "🇰🇪"},
	{Name: "Ghana", Code: "GH", DialCode: "+233", Flag: "🇬🇭"},
	{Name: "Morocco", Code: "MA", DialCode: "+212", Flag: "🇲🇦"},
	{Name: "Argentina", Code: "AR", DialCode: "+54", Flag: "🇦🇷"},
	{Name: "Chile", Code: "CL", DialCode: "+56", Flag: "🇨🇱"},
	{Name: "Colombia", Code: "CO", DialCode: "+57", Flag: "🇨🇴"},
	{Name: "Peru", Code: "PE", DialCode: "+51", Flag: "🇵🇪"},
	{Name: "Venezuela", Code: "VE", DialCode: "+58", Flag: "🇻🇪"},
}

// All returns a copy of the registry in display order.
func All() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// ByDialCode looks up a country by its dial code ("+91"). Dial codes are not
// unique (US and Canada share "+1"); the first entry in display order wins.
func ByDialCode(dialCode string) (Country, bool) {
	for _, c := range countries {
		if c.DialCode == dialCode {
			return c, true
		}
	}
	return Country{}, false
}

// ByCode looks up a country by its two-letter ISO code.
func ByCode(code string) (Country, bool) {
	for _, c := range countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// Default returns the registry default (India).
func Default() Country {
	if c, ok := ByCode("IN"); ok {
		return c
	}
	return countries[0]
}

package desensitize

var (
	// PhoneRule keeps the last four digits of North American numbers
	// (+1 (555) 010-2030 -> ***-***-2030)
	PhoneRule = MustNewContentRule(
		"phone",
		`(?:\+?1[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?(\d{4})\b`,
		"***-***-$1",
	)

	// EmailRule keeps the first and last character of the local part
	// (jane.roe@example.com -> j***e@example.com)
	EmailRule = MustNewContentRule(
		"email",
		`\b([A-Za-z0-9])[A-Za-z0-9._%+-]*([A-Za-z0-9])@([A-Za-z0-9.-]+\.[A-Za-z]{2,})\b`,
		"$1***$2@$3",
	)

	PasswordRule = MustNewFieldRule("password", "password", "******")
	TokenRule    = MustNewFieldRule("token", "token", "******")
	SecretRule   = MustNewFieldRule("secret", "secret", "******")
)

// BuiltinRules returns the rules for contact data and credentials
func BuiltinRules() []Rule {
	return []Rule{
		PasswordRule,
		TokenRule,
		SecretRule,
		EmailRule,
		PhoneRule,
	}
}

package config

// LegalAlias reports whether alias can be used as a single URL path segment
// without escaping.
func LegalAlias(alias string) bool {
	if alias == "" {
		return false
	}

	for i := 0; i < len(alias); i++ {
		if !legalInUrl(alias[i]) {
			return false
		}
	}

	return true
}

func legalInUrl(char byte) bool {
	if char < '!' || 'z' < char {
		return false
	}
	switch char {
	case
		'"',
		'#',
		'%',
		'&',
		'/',
		':',
		';',
		'<',
		'=',
		'>',
		'?',
		'@',
		'[',
		'\\',
		']',
		'^',
		'`':
		return false
	}
	return true
}

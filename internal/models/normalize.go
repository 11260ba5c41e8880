package models

// pick returns the first non-empty value. Payloads arrive either in
// camelCase or snake_case, so readers decode both spellings and pick.
func pick(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func pickInt(values ...*int) (int, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func pickBool(values ...*bool) (bool, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return false, false
}

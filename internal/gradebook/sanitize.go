package gradebook

import "strings"

// SanitizeStudentEmail converts an email address into the form embedded
// in document-store keys: '.' becomes ',' (reversible) and the other
// characters the store forbids in keys become '_'.
func SanitizeStudentEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	replacer := strings.NewReplacer(
		".", ",",
		"#", "_",
		"$", "_",
		"[", "_",
		"]", "_",
		"/", "_",
	)
	return replacer.Replace(email)
}

// RestoreStudentEmail reverses the '.' to ',' substitution applied by
// SanitizeStudentEmail. Characters collapsed to '_' are not recoverable.
func RestoreStudentEmail(key string) string {
	return strings.ReplaceAll(key, ",", ".")
}

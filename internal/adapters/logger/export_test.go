package logger

// FormatError exposes the error formatting for white-box tests.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}

// Messages returns the chain messages collected from err.
func Messages(err error) []string {
	entries := collectErrorEntries(err)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.message)
	}
	return out
}

package logging

// RedactKey masks a credential for logging, keeping only the last four
// characters. Short values are fully masked.
func RedactKey(key string) string {
	const keep = 4
	if len(key) <= keep*2 {
		return "****"
	}
	return "****" + key[len(key)-keep:]
}

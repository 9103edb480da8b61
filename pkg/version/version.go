package version

// Version represents the current version of fhsearch
const Version = "0.3.0"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "fhsearch version " + Version
}

// UserAgent is sent with every API request.
func UserAgent() string {
	return "fhsearch/" + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}

package models

// DefaultFilename is used when the client does not name the snippet.
const DefaultFilename = "snippet.py"

// DefaultStyle is the docstring convention used when none is requested.
const DefaultStyle = "google"

// MaxSourceBytes is the upper bound on submitted source code.
const MaxSourceBytes = 100000

// contains all supported docstring styles (in lowercase)
var ValidStyles = map[string]bool{
	"google": true,
	"numpy":  true,
	"sphinx": true,
}

func ValidStylesList() []string {
	return []string{"google", "numpy", "sphinx"}
}

// server messages returned alongside documented code
const (
	MessageSuccess = "Docstrings generated successfully!"
	MessageFailed  = "Failed or empty input."
)

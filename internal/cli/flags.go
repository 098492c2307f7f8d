package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputFile string
	Tasks      int
	Limit      int
	Language   string
	CachePath  string
	ListModels bool
	Verbose    bool

	// Provider flags
	Provider    string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Tasks:       8,
		Limit:       -1,
		Language:    "French",
		Provider:    "openai",
		Temperature: 0.2,
		Timeout:     60 * time.Second,
		MaxRetries:  3,
	}
}

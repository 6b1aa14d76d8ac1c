package cache

// Keyer builds cache keys.
type Keyer interface {
	// OutputKey returns the key for the output of formatting the text whose
	// hash is textHash under opts.
	OutputKey(textHash string, opts OutputKeyOpts) string
}

// OutputKeyOpts is everything besides the text that changes the output.
// Config must marshal to JSON deterministically.
type OutputKeyOpts struct {
	Mode      string `json:"mode"`
	Separator string `json:"separator,omitempty"`
	Config    any    `json:"config"`
}

// DefaultKeyer produces keys of the form "output:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OutputKey implements Keyer.
func (DefaultKeyer) OutputKey(textHash string, opts OutputKeyOpts) string {
	return hashKey("output", textHash, opts)
}

package base

import "fmt"

// InvalidConfigurationError indicates a projection evaluator was constructed
// with settings that cannot describe a valid projection.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("base: invalid projection configuration: %s", e.Reason)
}

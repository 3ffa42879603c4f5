package pipeline

// StepOption configures a stage.
type StepOption func(s *stepConfig)

type stepConfig struct {
	concurrent int
}

// StepConcurrency sets how many goroutines run the stage function. Values below 1 mean 1.
func StepConcurrency(concurrent int) StepOption {
	return func(s *stepConfig) {
		s.concurrent = concurrent
	}
}

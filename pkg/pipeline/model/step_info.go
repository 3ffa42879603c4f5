package model

type stepType string

const (
	SourceStepType stepType = "source"
	StageStepType  stepType = "stage"
	SinkStepType   stepType = "sink"
)

// StepInfo describes a step for the pipeline options.
type StepInfo struct {
	Type       stepType
	Name       string
	Concurrent int
}

var (
	StartStep = &Step{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step{Details: &StepInfo{Name: "end"}}
)

// Record is one line of text on its way through the cipher stages. Line is the zero-based
// position of the line in the input and is used to restore the input order at the sink.
type Record struct {
	Line int
	Text string
}

// Step is the output side of a pipeline step.
type Step struct {
	Output  chan Record
	Details *StepInfo
}

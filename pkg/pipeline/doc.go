// Package pipeline streams lines of text through the hybrid cipher stages.
//
// Every cipher stage becomes a step of the pipeline and runs in its own goroutines, connected
// to its neighbours by channels. A stage can run several goroutines at once; records carry their
// line number so the sink writes them back in input order.
//
// The pipeline stops on the first error: a line rejected by a stage cancels every other step
// and Run returns the error decorated with the step name and the line number.
//
// Options implementing model.PipelineOption observe the steps: the measure package times them,
// the drawer package renders the stage graph and the logging package logs their lifecycle.
package pipeline

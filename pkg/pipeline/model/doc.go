// Package model provides the data structures shared by the pipeline package and its options.
// It defines the records flowing between cipher stages, the steps that carry them and the
// hooks a pipeline option implements.
package model

// Package cipher implements the hybrid cipher: a Caesar shift, a block reversal, a 6x6 grid
// substitution and a keyword columnar transposition applied in a fixed order.
//
// Every stage is a pure function of its input text and parameters, so the package holds no
// state and can be called from any number of goroutines. Encrypt runs the four stages in order
// and Decrypt runs their inverses in reverse order. The composition is a classroom exercise in
// classical ciphers and gives no security guarantee.
//
// Decrypt does not know how much filler the transposition added during Encrypt. Filler that
// cannot be content is removed, but when the filler symbol is also a label character, trailing
// filler pairs decode as grid symbols and show up in the plain text.
package cipher

// Package application wires the env file, build parameters, placeholder rules
// and publishers into a single resolution pass, keeping the main package
// focused on CLI parsing.
package application

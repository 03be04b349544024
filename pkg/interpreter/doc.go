// Package interpreter walks a flashing document and executes its steps.
//
// For every step, in document order, the interpreter:
//
//  1. resolves the step's file against the firmware directory through the
//     path guards,
//  2. verifies the file's digest when the step carries one and integrity
//     checking is enabled,
//  3. builds the tool's argument list,
//  4. runs the tool and waits for it to exit.
//
// The first failure aborts the run. There is no retry, skip or
// continue-on-error mode, and steps are never reordered or run in
// parallel: later steps depend on device state left by earlier ones.
//
// Options replace process-wide switches: dry run, integrity skipping and
// verbose logging are fixed when the Interpreter is constructed.
package interpreter

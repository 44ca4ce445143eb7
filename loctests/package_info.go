// Package loctests contains the LocalizationUtils contract scenario and its supporting API.
//
// The scenario is a fixed sequence of stages. Each stage mutates the project's fixture files,
// runs the tool, and checks what the tool left behind; later stages depend on the files earlier
// stages produced, so the first stage that fails ends the run and the rest are reported as
// skipped.
//
// Test harness infrastructure that is not specific to the scenario, such as test contexts and
// running the tool, is in the lower-level framework package.
package loctests

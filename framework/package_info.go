// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests against the LocalizationUtils tool.
//
// The general model is:
//
// 1. The test harness drives an external tool binary, which it runs as a child process inside
// a project directory. The project directory is the only channel between the two: the harness
// writes fixture files there, the tool reads them and writes its own output there.
//
// 2. Every invocation of the tool is recorded, so that the exit status of the last one can be
// reported as the outcome of the run.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// The domain-specific code that knows what is being tested is responsible for deciding which
// fixtures to write, which commands to run, and what to check afterward.
package framework

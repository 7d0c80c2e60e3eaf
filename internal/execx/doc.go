// Package execx is the single point through which external commands run.
// It provides a narrow Runner interface ("run one command, stream I/O,
// return exit status") so orchestration code can be tested against a fake
// that records invocations instead of truly spawning processes.
package execx

// Package cli implements the command-line interface of the hostcheck tool.
//
// # Overview
//
// hostcheck collects the diagnostics a cluster-management agent reports when
// a host registers: running Java processes, live services, firewall state,
// umask, and, when the host is not yet in use, the installed stack packages,
// repositories, alternatives links, user home directories and leftover stack
// folders. Each check degrades to an empty or sentinel value instead of
// failing the run.
//
// # Commands
//
// check - Run the host checks:
//
//	hostcheck check [--components-mapped=false] [--commands-in-progress=false]
//	                [--report-path FILE] [--metrics-textfile FILE]
//
// Runs the check battery and prints the report. The expensive checks only run
// when both gating flags are false and the OS family supports them; the
// report is then also persisted to the report path. Running hostcheck without
// a command is the same as "check" with default flags.
//
// firewall - Probe the host firewall:
//
//	hostcheck firewall
//
// disk - Filesystem usage:
//
//	hostcheck disk [PATH...]
//
// facts - Detected OS facts:
//
//	hostcheck facts
//
// # Global Flags
//
//	--config, -c   YAML file overriding the built-in check configuration
//	--log-level    debug, info, warn, error (default: info)
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// # Environment Variables
//
//	HOSTCHECK_CONFIG       Same as --config
//	HOSTCHECK_LOG_LEVEL    Same as --log-level
//	LOG_LEVEL              Fallback for the log level
//	HOSTCHECK_REPORT_PATH  Same as check --report-path
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, configuration, probe failure)
//	2  Context canceled or timeout
package cli

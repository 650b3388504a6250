package hosts

import "errors"

// The editor reports failures through these sentinels so callers can tell
// "run as administrator" apart from "file is in use" and from a missing
// hosts file (broken installation).
var (
	// ErrPermissionDenied means the process lacks write access to the
	// hosts file location.
	ErrPermissionDenied = errors.New("administrator rights are required to modify the hosts file")

	// ErrNoBackup means a restore was requested but no backup file exists.
	ErrNoBackup = errors.New("no hosts file backup exists")

	// ErrHostsMissing means the hosts file itself does not exist.
	ErrHostsMissing = errors.New("hosts file does not exist")

	// ErrFileOperation wraps any other I/O failure (file locked, disk
	// full, path missing), distinct from the privilege check.
	ErrFileOperation = errors.New("hosts file operation failed")
)

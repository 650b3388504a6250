// Package hosts maintains the FocusGuard managed section of the system
// hosts file: idempotent block/unblock of hostnames, backup and restore.
package hosts

import (
	"fmt"
	"os"
	"strings"

	"github.com/user/focus-guard/internal/domain"
	"github.com/user/focus-guard/internal/logger"
)

// BackupSuffix is appended to the hosts path for the default backup file.
const BackupSuffix = ".focusguard.backup"

// Editor performs all hosts-file operations against one configured path.
// Each operation is a full read-modify-write cycle; there is no internal
// locking against other processes editing the same file.
type Editor struct {
	hostsPath  string
	backupPath string
	isElevated func() bool
	flushDNS   func() error
	log        logger.Logger
}

// Options configures an Editor. Privilege, FlushDNS and Log are injected so
// tests can substitute them without touching the real system.
type Options struct {
	HostsPath  string
	BackupPath string       // defaults to HostsPath + BackupSuffix
	Privilege  func() bool  // defaults to always-true
	FlushDNS   func() error // nil disables resolver-cache flushing
	Log        logger.Logger
}

// NewEditor creates an editor for the given hosts file.
func NewEditor(opts Options) *Editor {
	e := &Editor{
		hostsPath:  opts.HostsPath,
		backupPath: opts.BackupPath,
		isElevated: opts.Privilege,
		flushDNS:   opts.FlushDNS,
		log:        opts.Log,
	}
	if e.backupPath == "" {
		e.backupPath = e.hostsPath + BackupSuffix
	}
	if e.isElevated == nil {
		e.isElevated = func() bool { return true }
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	return e
}

// HostsPath returns the hosts file path this editor operates on.
func (e *Editor) HostsPath() string { return e.hostsPath }

// BackupPath returns the backup file path.
func (e *Editor) BackupPath() string { return e.backupPath }

// Block adds a 127.0.0.1 entry for hostname to the managed section. The
// hostname must already be validated and canonical. Blocking an already
// blocked hostname succeeds without touching the file.
func (e *Editor) Block(hostname string) error {
	if !e.isElevated() {
		return ErrPermissionDenied
	}

	hostname = strings.ToLower(strings.TrimSpace(hostname))

	lines, err := e.readLines()
	if err != nil {
		return err
	}

	sec := parseSection(lines)
	if sec.contains(hostname) {
		e.log.Info("hosts: %s is already blocked", hostname)
		return nil
	}

	if err := e.CreateBackupIfAbsent(); err != nil {
		return err
	}

	if err := e.writeLines(sec.insert(lines, hostname)); err != nil {
		return err
	}
	e.log.Info("hosts: blocked %s", hostname)

	e.flushBestEffort()
	return nil
}

// Unblock removes every line that redirects hostname to localhost, wherever
// it appears in the file (tolerates accidental duplicates). Unblocking a
// hostname that is not blocked succeeds without touching the file.
func (e *Editor) Unblock(hostname string) error {
	if !e.isElevated() {
		return ErrPermissionDenied
	}

	hostname = strings.ToLower(strings.TrimSpace(hostname))

	lines, err := e.readLines()
	if err != nil {
		return err
	}

	if !parseSection(lines).contains(hostname) {
		e.log.Info("hosts: %s is not blocked", hostname)
		return nil
	}

	kept := lines[:0]
	for _, line := range lines {
		if host, ok := parseEntry(strings.TrimSpace(line)); ok && strings.EqualFold(host, hostname) {
			continue
		}
		kept = append(kept, line)
	}

	if err := e.writeLines(kept); err != nil {
		return err
	}
	e.log.Info("hosts: unblocked %s", hostname)

	e.flushBestEffort()
	return nil
}

// IsBlocked reports whether hostname currently has an entry in the managed
// section. Invalid input and read failures read as "not blocked".
func (e *Editor) IsBlocked(hostname string) bool {
	res := domain.Validate(hostname)
	if !res.Valid {
		return false
	}

	lines, err := e.readLines()
	if err != nil {
		return false
	}
	return parseSection(lines).contains(res.Hostname)
}

// Blocked returns the hostnames in the managed section, in file order.
func (e *Editor) Blocked() ([]string, error) {
	lines, err := e.readLines()
	if err != nil {
		return nil, err
	}
	return parseSection(lines).hosts, nil
}

// CreateBackupIfAbsent copies the hosts file to the backup path unless a
// backup already exists. An existing backup is never overwritten.
func (e *Editor) CreateBackupIfAbsent() error {
	if _, err := os.Stat(e.backupPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", ErrFileOperation, e.backupPath, err)
	}

	data, err := os.ReadFile(e.hostsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrHostsMissing
		}
		return fmt.Errorf("%w: read %s: %v", ErrFileOperation, e.hostsPath, err)
	}

	if err := os.WriteFile(e.backupPath, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrFileOperation, e.backupPath, err)
	}
	e.log.Info("hosts: backup created at %s", e.backupPath)
	return nil
}

// RestoreFromBackup overwrites the hosts file with the backup contents.
func (e *Editor) RestoreFromBackup() error {
	if !e.isElevated() {
		return ErrPermissionDenied
	}

	data, err := os.ReadFile(e.backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoBackup
		}
		return fmt.Errorf("%w: read %s: %v", ErrFileOperation, e.backupPath, err)
	}

	if err := os.WriteFile(e.hostsPath, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrFileOperation, e.hostsPath, err)
	}
	e.log.Info("hosts: restored from backup")

	e.flushBestEffort()
	return nil
}

func (e *Editor) readLines() ([]string, error) {
	data, err := os.ReadFile(e.hostsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrHostsMissing
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrFileOperation, e.hostsPath, err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

// writeLines rewrites the whole file with CRLF line endings (the managed
// file only ever lives on Windows).
func (e *Editor) writeLines(lines []string) error {
	if err := os.WriteFile(e.hostsPath, []byte(strings.Join(lines, "\r\n")), 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrFileOperation, e.hostsPath, err)
	}
	return nil
}

// flushBestEffort asks the OS to drop its resolver cache so edits take
// effect immediately. Failure is non-fatal.
func (e *Editor) flushBestEffort() {
	if e.flushDNS == nil {
		return
	}
	if err := e.flushDNS(); err != nil {
		e.log.Warning("hosts: DNS cache flush failed: %v", err)
	}
}

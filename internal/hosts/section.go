package hosts

import "strings"

// Marker lines delimiting the managed section. Everything strictly between
// them belongs to FocusGuard; the rest of the file is never touched except
// by a full restore.
const (
	sectionStart = "# FocusGuard blocked sites - start"
	sectionEnd   = "# FocusGuard blocked sites - end"
)

const redirectIP = "127.0.0.1"

// section is the parsed managed block of a hosts file.
type section struct {
	start int // line index of the start marker, -1 if absent
	end   int // line index of the end marker, -1 if absent
	hosts []string
}

// parseSection scans lines for the managed block. A start marker without an
// end marker claims the rest of the file; the end marker is appended on the
// next modification.
func parseSection(lines []string) section {
	sec := section{start: -1, end: -1}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if sec.start == -1 {
			if trimmed == sectionStart {
				sec.start = i
			}
			continue
		}
		if trimmed == sectionEnd {
			sec.end = i
			break
		}
		if host, ok := parseEntry(trimmed); ok {
			sec.hosts = append(sec.hosts, host)
		}
	}
	return sec
}

// parseEntry extracts the hostname from a "127.0.0.1 <hostname>" line.
func parseEntry(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 2 && fields[0] == redirectIP {
		return fields[1], true
	}
	return "", false
}

func (s section) contains(host string) bool {
	for _, h := range s.hosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// insert returns lines with a new entry for host added to the managed
// section, creating the section (or its missing end marker) as needed.
func (s section) insert(lines []string, host string) []string {
	entry := redirectIP + " " + host

	if s.start == -1 {
		// No section yet: create one at the end of the file.
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		return append(lines, "", sectionStart, entry, sectionEnd, "")
	}

	if s.end == -1 {
		// Truncated section: the rest of the file is ours, close it off.
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		return append(lines, entry, sectionEnd, "")
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:s.end]...)
	out = append(out, entry)
	out = append(out, lines[s.end:]...)
	return out
}

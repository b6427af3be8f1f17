// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package procsetup provides process-lifecycle helpers for running
// markbookd as a long-lived daemon, adapted from cc-lib's runtime
// package: loading a .env file before internal/ccconfig.Init reads the
// process configuration, dropping root privileges after binding the
// debug HTTP listener, and notifying systemd of readiness when started
// under a Type=notify unit. None of this is spec-mandated (the spec
// names a request router and a store, not a deployment model), but
// SPEC_FULL.md's ambient stack treats "the process" as a first-class
// concern alongside "the workspace", and a daemon that starts as root to
// bind a low port has nowhere else in this repo to drop privileges.
package procsetup

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"strings"
	"syscall"

	cclog "github.com/markbookdev/markbookd/internal/cclog"
)

// LoadEnv reads file and sets every KEY=VALUE line it defines in the
// process environment. Supported syntax: "#" comments at the start of a
// line, blank lines, an optional "export " prefix, and double-quoted
// values with \n \r \t \" escapes. A missing file is returned as-is
// (os.IsNotExist) so callers can treat .env as optional.
func LoadEnv(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	s := bufio.NewScanner(bufio.NewReader(f))
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "#") || len(line) == 0 {
			continue
		}
		if strings.Contains(line, "#") {
			return errors.New("'#' are only supported at the start of a line")
		}

		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("unsupported line: %#v", line)
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if strings.HasPrefix(val, "\"") {
			if !strings.HasSuffix(val, "\"") {
				return fmt.Errorf("unsupported line: %#v", line)
			}
			unescaped, err := unescapeQuoted(val[1 : len(val)-1])
			if err != nil {
				return fmt.Errorf("%w: %#v", err, line)
			}
			val = unescaped
		}

		os.Setenv(key, val)
	}
	return s.Err()
}

func unescapeQuoted(s string) (string, error) {
	runes := []rune(s)
	var sb strings.Builder
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			sb.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			return "", errors.New("invalid escape sequence at end of string")
		}
		switch runes[i] {
		case 'n':
			sb.WriteRune('\n')
		case 'r':
			sb.WriteRune('\r')
		case 't':
			sb.WriteRune('\t')
		case '"':
			sb.WriteRune('"')
		default:
			return "", fmt.Errorf("unsupported escape sequence: backslash %#v", runes[i])
		}
	}
	return sb.String(), nil
}

// DropPrivileges switches the process's group then user to the named
// unprivileged account. Both parameters are optional; an empty string
// skips that change. Call this as early as possible after completing
// privileged startup work (binding the debug HTTP listener, opening the
// sqlite file).
func DropPrivileges(username, group string) error {
	if group != "" {
		g, err := user.LookupGroup(group)
		if err != nil {
			return fmt.Errorf("looking up group %q: %w", group, err)
		}
		gid, err := strconv.Atoi(g.Gid)
		if err != nil {
			return fmt.Errorf("parsing group gid %q: %w", g.Gid, err)
		}
		if err := syscall.Setgid(gid); err != nil {
			return fmt.Errorf("setting gid %d: %w", gid, err)
		}
	}

	if username != "" {
		u, err := user.Lookup(username)
		if err != nil {
			return fmt.Errorf("looking up user %q: %w", username, err)
		}
		uid, err := strconv.Atoi(u.Uid)
		if err != nil {
			return fmt.Errorf("parsing user uid %q: %w", u.Uid, err)
		}
		if err := syscall.Setuid(uid); err != nil {
			return fmt.Errorf("setting uid %d: %w", uid, err)
		}
	}

	return nil
}

// SystemdNotify sends a readiness/status notification to systemd's
// sd_notify protocol when NOTIFY_SOCKET is set (i.e. the unit is
// Type=notify); it is a silent no-op otherwise. An error from
// systemd-notify is logged at warn level and not returned; the daemon
// keeps running regardless.
func SystemdNotify(ready bool, status string) {
	if os.Getenv("NOTIFY_SOCKET") == "" {
		return
	}

	args := []string{fmt.Sprintf("--pid=%d", os.Getpid())}
	if ready {
		args = append(args, "--ready")
	}
	if status != "" {
		args = append(args, fmt.Sprintf("--status=%s", status))
	}

	if err := exec.Command("systemd-notify", args...).Run(); err != nil {
		cclog.ComponentWarn("Startup", "systemd-notify failed:", err.Error())
	}
}

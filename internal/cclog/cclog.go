// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cclog implements a simple leveled log wrapper around the standard
// log package, adapted from ClusterCockpit's ccLogger. Time/date are not
// logged by default because systemd or journald usually add them; pass
// logdate=true to Init when running outside of such a supervisor.
package cclog

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
	CritWriter  io.Writer = os.Stderr
)

var (
	DebugPrefix string = "<7>[DEBUG]    "
	InfoPrefix  string = "<6>[INFO]     "
	WarnPrefix  string = "<4>[WARNING]  "
	ErrPrefix   string = "<3>[ERROR]    "
	CritPrefix  string = "<2>[CRITICAL] "
)

var (
	DebugLog *log.Logger = log.New(DebugWriter, DebugPrefix, log.LstdFlags)
	InfoLog  *log.Logger = log.New(InfoWriter, InfoPrefix, log.LstdFlags|log.Lshortfile)
	WarnLog  *log.Logger = log.New(WarnWriter, WarnPrefix, log.LstdFlags|log.Lshortfile)
	ErrLog   *log.Logger = log.New(ErrWriter, ErrPrefix, log.LstdFlags|log.Llongfile)
	CritLog  *log.Logger = log.New(CritWriter, CritPrefix, log.LstdFlags|log.Llongfile)
)

var loglevel string = "info"

// Init sets the active log level ("debug", "info", "warn", "err"/"fatal", "crit")
// and whether the standard date/time prefix is added to each line.
func Init(lvl string, logdate bool) {
	// Start from all-enabled so a repeated call (config hot-reload) can
	// lower the level again after an earlier call discarded a writer.
	DebugWriter, InfoWriter, WarnWriter, ErrWriter, CritWriter = os.Stderr, os.Stderr, os.Stderr, os.Stderr, os.Stderr

	switch lvl {
	case "crit":
		ErrWriter = io.Discard
		fallthrough
	case "err", "fatal":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
		// Nothing to do.
	default:
		fmt.Fprintf(os.Stderr, "cclog: invalid loglevel %q, using 'info'\n", lvl)
		lvl = "info"
		DebugWriter = io.Discard
	}

	flags := log.Lshortfile
	if logdate {
		flags = log.LstdFlags | log.Lshortfile
	}
	DebugLog = log.New(DebugWriter, DebugPrefix, flags)
	InfoLog = log.New(InfoWriter, InfoPrefix, flags)
	WarnLog = log.New(WarnWriter, WarnPrefix, flags)
	ErrLog = log.New(ErrWriter, ErrPrefix, flags)
	CritLog = log.New(CritWriter, CritPrefix, flags)

	loglevel = lvl
}

// Loglevel returns the currently active log level.
func Loglevel() string {
	return loglevel
}

func printStr(v ...any) string       { return fmt.Sprint(v...) }
func printfStr(f string, v ...any) string { return fmt.Sprintf(f, v...) }

func Debug(v ...any) { DebugLog.Output(3, printStr(v...)) }
func Info(v ...any)  { InfoLog.Output(3, printStr(v...)) }
func Warn(v ...any)  { WarnLog.Output(3, printStr(v...)) }
func Error(v ...any) { ErrLog.Output(3, printStr(v...)) }

func Debugf(f string, v ...any) { DebugLog.Output(3, printfStr(f, v...)) }
func Infof(f string, v ...any)  { InfoLog.Output(3, printfStr(f, v...)) }
func Warnf(f string, v ...any)  { WarnLog.Output(3, printfStr(f, v...)) }
func Errorf(f string, v ...any) { ErrLog.Output(3, printfStr(f, v...)) }

// ComponentDebug/Info/Warn/Error tag a log line with the subsystem that
// emitted it ("Calc", "Store", "Router", "Config", ...).
func ComponentDebug(component string, v ...any) { DebugLog.Print(fmt.Sprintf("[%s] ", component), fmt.Sprint(v...)) }
func ComponentInfo(component string, v ...any)  { InfoLog.Print(fmt.Sprintf("[%s] ", component), fmt.Sprint(v...)) }
func ComponentWarn(component string, v ...any)  { WarnLog.Print(fmt.Sprintf("[%s] ", component), fmt.Sprint(v...)) }
func ComponentError(component string, v ...any) { ErrLog.Print(fmt.Sprintf("[%s] ", component), fmt.Sprint(v...)) }

// Fatal logs to the critical writer and terminates the process.
func Fatal(v ...any) {
	CritLog.Output(3, printStr(v...))
	os.Exit(1)
}

func Fatalf(f string, v ...any) {
	CritLog.Output(3, printfStr(f, v...))
	os.Exit(1)
}

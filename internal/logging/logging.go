package logging

import (
	"github.com/pterm/pterm"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

const (
	LoggingRootPath = "/tmp/dir-compare"
	LoggingFileName = "dir-compare.log"
	LogFilePath     = LoggingRootPath + "/" + LoggingFileName
)

var (
	debugEnabled atomic.Bool

	fileLoggerOnce sync.Once
	fileLogger     *log.Logger
)

func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
	pterm.PrintDebugMessages = enabled
}

func IsDebugEnabled() bool {
	return debugEnabled.Load()
}

func Printf(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	writeToLogFile(format, a...)
	pterm.Debug.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Success.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	if IsDebugEnabled() {
		pterm.Info.Printfln(format, a...)
	}
}

func Warning(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Error.Printfln(format, a...)
}

func FatalWithoutStacktrace(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Fatal.WithFatal(false).Printfln(format, a...)
	os.Exit(1)
}

func Fatal(format string, a ...interface{}) {
	writeToLogFile(format, a...)
	pterm.Fatal.Printfln(format, a...)
}

func writeToLogFile(format string, a ...interface{}) {
	if len(format) <= 0 {
		return
	}
	fileLoggerOnce.Do(func() {
		file := openLogFile()
		if file != nil {
			fileLogger = log.New(file, "", log.LstdFlags)
		}
	})
	if fileLogger == nil {
		return
	}
	fileLogger.Printf(format, a...)
}

func openLogFile() *os.File {
	err := os.MkdirAll(LoggingRootPath, 0777)
	if err != nil {
		log.Println(err)
	}
	err = os.Chmod(LoggingRootPath, 0777)
	if err != nil {
		log.Println(err)
	}
	file, err := os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Println(err)
		return nil
	}
	err = os.Chmod(LogFilePath, 0666)
	if err != nil {
		log.Println(err)
	}
	return file
}

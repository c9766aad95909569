package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/pressly/goose/v3"
)

// gooseLogger sends goose's printf-style output to a logging.Logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

var _ goose.Logger = (*gooseLogger)(nil)

// osExit is a seam for testing Fatalf.
var osExit = os.Exit

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	osExit(1)
}

// Package version - сведения о сборке. Номер сборки = число дней от первого коммита.
package version

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

// Заполняются при сборке:
//
//	go build -ldflags "-X github.com/mkoeppel/Markov-Market/internal/version.BuildDate=2026-01-15"
//
// Если ldflags не передали, коммит и дата берутся из VCS-меток, которые go build ставит сам.
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

var ErrNoBuildDate = errors.New("build date is unknown")

// buildEpoch - день первого коммита
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// readBuildInfo подменяется в тестах
var readBuildInfo = debug.ReadBuildInfo

// BuildInfo - то, что отдают `market version --json` и GET /version
type BuildInfo struct {
	BuildID   int    `json:"buildId"`
	Date      string `json:"date,omitempty"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	CI        string `json:"ci"`
	GoVersion string `json:"goVersion,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Known - удалось ли вычислить номер сборки
func (b BuildInfo) Known() bool { return b.Error == "" }

// BuildID переводит дату сборки в номер
func BuildID(date string) (int, error) {
	if date == "" {
		return 0, ErrNoBuildDate
	}

	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch %s", date, buildEpoch.Format(time.DateOnly))
	}

	// Обе даты в UTC, поэтому часы делятся на 24 без сюрпризов с переходом на летнее время
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает сведения о сборке: сначала ldflags, потом VCS-метки бинарника.
func Info() BuildInfo {
	info := BuildInfo{
		Date:   BuildDate,
		Commit: BuildCommit,
		Branch: coalesce(BuildBranch, "unknown"),
		CI:     coalesce(BuildCI, "local"),
	}

	if bi, ok := readBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if info.Date == "" && len(s.Value) >= len(time.DateOnly) {
					info.Date = s.Value[:len(time.DateOnly)]
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	info.Commit = coalesce(info.Commit, "unknown")

	id, err := BuildID(info.Date)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	return info
}

// String - строка для логов и `market version`
func String() string {
	info := Info()
	if !info.Known() {
		return fmt.Sprintf("Build unknown (%s)", info.Error)
	}

	dirty := ""
	if info.Dirty {
		dirty = "+dirty"
	}
	return fmt.Sprintf("Build %d (%s) commit[%s%s] branch[%s] ci[%s]",
		info.BuildID, info.Date, info.Commit, dirty, info.Branch, info.CI)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

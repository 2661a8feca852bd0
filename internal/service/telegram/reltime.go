package telegram

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"maple-blog/internal/pkg/i18n"
)

// zhMagnitudes follow the thresholds of the usual "x 分钟前" phrasing.
var zhMagnitudes = []humanize.RelTimeMagnitude{
	{D: 45 * time.Second, Format: "几秒%s", DivBy: time.Second},
	{D: 90 * time.Second, Format: "1 分钟%s", DivBy: time.Second},
	{D: 45 * time.Minute, Format: "%d 分钟%s", DivBy: time.Minute},
	{D: 90 * time.Minute, Format: "1 小时%s", DivBy: time.Second},
	{D: 22 * time.Hour, Format: "%d 小时%s", DivBy: time.Hour},
	{D: 36 * time.Hour, Format: "1 天%s", DivBy: time.Second},
	{D: 26 * humanize.Day, Format: "%d 天%s", DivBy: humanize.Day},
	{D: 46 * humanize.Day, Format: "1 个月%s", DivBy: time.Second},
	{D: 320 * humanize.Day, Format: "%d 个月%s", DivBy: humanize.Month},
	{D: 548 * humanize.Day, Format: "1 年%s", DivBy: time.Second},
	{D: math.MaxInt64, Format: "%d 年%s", DivBy: humanize.Year},
}

// relativeTime renders then relative to now in the given locale.
func relativeTime(then, now time.Time, locale string) string {
	ago := i18n.Translate(locale, "TIME_AGO")
	later := i18n.Translate(locale, "TIME_LATER")
	if locale == "zh-CN" || locale == "zh" {
		return humanize.CustomRelTime(then, now, ago, later, zhMagnitudes)
	}
	return humanize.RelTime(then, now, ago, later)
}

package meal

import (
	"fmt"
	"strings"
	"time"
)

// FormatHint is the reply sent when no line of a message could be parsed.
const FormatHint = "Формат неверен. Каждая строка: `<название> <ккал на 100> <белок на 100> <вес>`\n" +
	"Пример:\n`яйца 157 12.7 125`"

// HelpText is the reply to /start and /help.
const HelpText = "Пришлите приём пищи, по одному продукту на строку:\n" +
	"`<название> <ккал на 100> <белок на 100> <вес>`\n\n" +
	"Пример:\n`яйца 157 12.7 125`\n`хлеб 265 8.1 50`\n\n" +
	"/today — итоги за сегодня\n" +
	"Каждую полночь приходят итоги за прошедший день."

const (
	tableHeader    = "Продукт        | Ккал     | Белки"
	tableSeparator = "-------------- | -------- | ------"
)

// FormatReply renders the breakdown for one accepted message, followed by
// the message totals and the running total since local midnight. The result
// is a Markdown code block.
func FormatReply(res Result, dayCalories, dayProtein float64) string {
	lines := make([]string, 0, len(res.Items)+4)
	lines = append(lines, tableHeader, tableSeparator)
	for _, it := range res.Items {
		lines = append(lines, fmt.Sprintf("%-14s | %-8s | %-6s г",
			it.Name, FormatNumber(it.Calories), FormatNumber(it.Protein)))
	}
	lines = append(lines,
		fmt.Sprintf("\nИтого: %s ккал | %s г белка",
			FormatNumber(res.Calories), FormatNumber(res.Protein)),
		fmt.Sprintf("\n📊 С начала дня: %s ккал | %s г белка",
			FormatRunningTotal(dayCalories), FormatRunningTotal(dayProtein)),
	)

	return "```🍳\u00a0Приём\u00a0пищи:\n" + strings.Join(lines, "\n") + "\n```"
}

// FormatRollup renders the end-of-day summary for one user. day is any
// instant within the summarized day.
func FormatRollup(day time.Time, calories, protein float64, count int) string {
	return fmt.Sprintf("🍽️ *Итоги за %s:*\nКалорий: %s\nБелков: %s\nПриёмов пищи: %d",
		day.Format("02.01"),
		FormatNumber(Round(calories, 1)),
		FormatNumber(Round(protein, 1)),
		count,
	)
}

// FormatToday renders the answer to /today.
func FormatToday(calories, protein float64, count int) string {
	if count == 0 {
		return "Сегодня приёмов пищи ещё не было."
	}
	return fmt.Sprintf("📊 С начала дня: %s ккал | %s г белка\nПриёмов пищи: %d",
		FormatRunningTotal(calories), FormatRunningTotal(protein), count)
}

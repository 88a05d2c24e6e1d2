package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	paletteAccent  = lipgloss.Color("36")
	paletteOK      = lipgloss.Color("35")
	paletteWarn    = lipgloss.Color("220")
	paletteCommand = lipgloss.Color("75")
	paletteValue   = lipgloss.Color("255")
	paletteLabel   = lipgloss.Color("245")
	paletteMuted   = lipgloss.Color("240")
)

var (
	StyleDim     = lipgloss.NewStyle().Foreground(paletteMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(paletteValue)
	StyleNumber  = lipgloss.NewStyle().Foreground(paletteAccent)
	StyleWarning = lipgloss.NewStyle().Foreground(paletteWarn)

	styleOK      = lipgloss.NewStyle().Foreground(paletteOK)
	styleLabel   = lipgloss.NewStyle().Foreground(paletteLabel)
	styleCommand = lipgloss.NewStyle().Foreground(paletteCommand)
	styleKey     = styleLabel.Width(12)
)

const (
	markOK    = "✓"
	markWarn  = "!"
	markInfo  = "›"
	markArrow = "→"
	separator = " · "
)

func printLine(mark lipgloss.Style, symbol, msg string) {
	fmt.Println(mark.Render(symbol) + " " + msg)
}

func printSuccess(format string, args ...any) {
	printLine(styleOK, markOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(StyleWarning, markWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleLabel, markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a path that was written.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(markArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints one row of an aligned key/value table.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleNumber.Render(value))
}

// printStats prints input and output segment counts and whether the dense
// graph came from the cache, e.g. "  12 in · 40 out · cached".
func printStats(in, out int, cached bool) {
	source := styleLabel.Render("fresh")
	if cached {
		source = styleOK.Render("cached")
	}
	counts := []string{
		StyleDim.Render(fmt.Sprintf("%d in", in)),
		StyleDim.Render(fmt.Sprintf("%d out", out)),
		source,
	}
	fmt.Println("  " + strings.Join(counts, StyleDim.Render(separator)))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// Package ui holds the terminal styling for the scanner's status output.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorSuccess = lipgloss.Color("#00D26A") // green  — completed steps
	ColorWarning = lipgloss.Color("#FFB800") // yellow — warnings, truncation
	ColorError   = lipgloss.Color("#FF4444") // red    — failures
	ColorAddress = lipgloss.Color("#00B4D8") // cyan   — addresses, hashes
	ColorMeta    = lipgloss.Color("#555555") // dim gray — counts, paths
	ColorTitle   = lipgloss.Color("#9B5DE5") // purple — banner, section titles
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorTitle).Bold(true)

	styleBanner = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorTitle).
			Padding(0, 2)
)

// Banner returns the welcome panel shown before an interactive scan.
func Banner(version string) string {
	lines := []string{
		StyleTitle.Render("BSC Wallet Scanner"),
		"Token transfer history for any BSC address",
		StyleMeta.Render("v" + version),
	}

	return styleBanner.Render(strings.Join(lines, "\n"))
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Addr formats an address or hash.
func Addr(a string) string { return StyleAddress.Render(a) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// Summary renders the end-of-scan summary block.
func Summary(transactions int, skipped int, truncated bool, outputPath string) string {
	var sb strings.Builder

	sb.WriteString(Success(fmt.Sprintf("Scan complete: %d transactions", transactions)))
	sb.WriteString("\n")

	if skipped > 0 {
		sb.WriteString(Warn(fmt.Sprintf("%d records skipped (missing or malformed fields)", skipped)))
		sb.WriteString("\n")
	}
	if truncated {
		sb.WriteString(Warn("result truncated at the configured maximum"))
		sb.WriteString("\n")
	}

	sb.WriteString(Meta("Results saved to: " + outputPath))

	return sb.String()
}

package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown by interactive commands.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	lines := []string{
		`                       _             `,
		`  ___  ___  __ _ _ __ | | __ _ _ __  `,
		` / __|/ _ \/ _' | '_ \| |/ _' | '_ \ `,
		` \__ \  __/ (_| | |_) | | (_| | | | |`,
		` |___/\___|\__, | .__/|_|\__,_|_| |_|`,
		`              | |_|                  `,
	}
	colors := []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

	fmt.Println()
	for i, line := range lines {
		fmt.Println(termenv.String(line).Foreground(p.Color(colors[i])))
	}
	if version != "" {
		fmt.Printf("  v%s\n", version)
	}
	fmt.Println()
}

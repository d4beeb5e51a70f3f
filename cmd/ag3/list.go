package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulties and themes",
	Long:  `Shows the difficulties and themes available in the effective configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-10s  %-8s  %s\n", "NAME", "TICK", "")
	fmt.Printf("  %-10s  %-8s\n", "----", "----")
	for _, d := range cfg.Difficulties {
		mark := ""
		if strings.EqualFold(d.Name, cfg.DefaultDifficulty) {
			mark = "(default)"
		}
		fmt.Printf("  %-10s  %-8s  %s\n", d.Name, d.Period(), mark)
	}

	fmt.Println()
	fmt.Println("Themes:")
	fmt.Println()
	fmt.Printf("  %-10s  %-14s  %-14s  %s\n", "NAME", "HEAD", "FOOD", "")
	fmt.Printf("  %-10s  %-14s  %-14s\n", "----", "----", "----")
	for _, t := range cfg.Themes {
		mark := ""
		if strings.EqualFold(t.Name, cfg.DefaultTheme) {
			mark = "(default)"
		}
		fmt.Printf("  %-10s  %-14s  %-14s  %s\n", t.Name, t.Head, t.Food, mark)
	}

	fmt.Println()
	fmt.Println("Use: ag3 play --difficulty <name> --theme <name>")
	return nil
}

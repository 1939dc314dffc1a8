package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/itt-ustutt/quantity/pkg/quantity/calc"
	"github.com/itt-ustutt/quantity/pkg/quantity/dashboard"
)

func main() {
	port := flag.Int("port", 9090, "dashboard port (0 disables the dashboard)")
	flag.Parse()

	fmt.Println("Quantity calculator")

	// Show a few worked examples before handing over the prompt
	evaluator := calc.New()
	examples := []string{
		"1 Hz",
		"25 °C",
		"RGAS * 298.15 K / (25 l / NAV / 1e23)",
		"sqrt(2 * 9.81 m/s^2 * 10 m)",
	}
	for _, expr := range examples {
		q, err := evaluator.Evaluate(expr)
		if err != nil {
			log.Printf("example %q: %v", expr, err)
			continue
		}
		fmt.Printf("  %s = %s\n", expr, q)
	}

	if *port > 0 {
		srv := dashboard.NewServer(*port)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("dashboard stopped: %v", err)
			}
		}()
		defer srv.Stop()

		fmt.Printf("\nDashboard available at: http://localhost:%d\n", *port)
		fmt.Println("API endpoints:")
		fmt.Println("  - POST /api/eval    - Evaluate an expression")
		fmt.Println("  - GET  /api/catalog - Units, prefixes and constants")
		fmt.Println("  - GET  /api/history - Recent evaluations")
		fmt.Println("  - GET  /metrics     - Prometheus metrics")
	}

	fmt.Println("\nEnter expressions, Ctrl-D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		q, err := evaluator.Evaluate(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("= %s\n", q)
	}
	fmt.Println()
}

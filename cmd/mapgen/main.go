// mapgen renders an exported galaxy document as a text star map.
//
// Usage:
//
//	go run ./cmd/mapgen -input out/galaxy.yaml -width 100 -height 40
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/lawnchairsociety/galaxygen/internal/export"
)

func main() {
	inputFile := flag.String("input", "out/galaxy.yaml", "Path to an exported galaxy (yaml or json)")
	width := flag.Int("width", 100, "Map width in characters")
	height := flag.Int("height", 40, "Map height in characters")
	constellation := flag.Int("constellation", -1, "Only draw stars of this constellation (-1 for all)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showDetails := flag.Bool("details", false, "List every star with its lanes")
	showLegend := flag.Bool("legend", true, "Show legend")
	flag.Parse()

	doc, err := export.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading galaxy: %v\n", err)
		os.Exit(1)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Galaxy Map (Seed: %d, Shape: %s, Stars: %d)\n", doc.Seed, doc.Shape, len(doc.Stars)))
	output.WriteString(strings.Repeat("=", 60) + "\n\n")

	if !doc.Valid {
		output.WriteString("Generation failed, no galaxy to draw.\n")
		for _, d := range doc.Defects {
			if d.Fatal {
				output.WriteString(fmt.Sprintf("  attempt %d [%s] %s\n", d.Attempt, d.Stage, d.Message))
			}
		}
		emit(output.String(), *outputFile)
		return
	}

	checkConnectivity(&output, doc)
	renderGrid(&output, doc, *width, *height, *constellation)

	if *showDetails {
		renderDetails(&output, doc, *constellation)
	}
	if *showLegend {
		output.WriteString(getLegend())
	}

	emit(output.String(), *outputFile)
}

func emit(text, outputFile string) {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", outputFile)
		return
	}
	fmt.Print(text)
}

// adjacency builds the lane lists of the document, wormholes included
func adjacency(doc *export.Document) map[int][]int {
	adj := make(map[int][]int)
	for _, links := range [][]export.Link{doc.Warps, doc.Wormholes} {
		for _, l := range links {
			adj[l.A] = append(adj[l.A], l.B)
			adj[l.B] = append(adj[l.B], l.A)
		}
	}
	return adj
}

// checkConnectivity runs a BFS from the first spawn and reports stars that
// cannot be reached by lanes
func checkConnectivity(output *strings.Builder, doc *export.Document) {
	if len(doc.Stars) == 0 {
		output.WriteString("  (No stars to display)\n\n")
		return
	}

	start := doc.Stars[0].ID
	if len(doc.Spawns) > 0 {
		start = doc.Spawns[0]
	}

	adj := adjacency(doc)
	visited := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adj[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []export.Star
	for _, s := range doc.Stars {
		if !visited[s.ID] {
			unreachable = append(unreachable, s)
		}
	}

	if len(unreachable) > 0 {
		output.WriteString("WARNING: Unreachable stars detected!\n")
		for _, s := range unreachable {
			output.WriteString(fmt.Sprintf("  - %s (%d)\n", s.Name, s.ID))
		}
		output.WriteString("\n")
	} else {
		output.WriteString(fmt.Sprintf("All %d stars are connected.\n\n", len(doc.Stars)))
	}
}

func renderGrid(output *strings.Builder, doc *export.Document, width, height, constellation int) {
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}

	minX, maxX, minY, maxY := math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	for _, s := range doc.Stars {
		minX, maxX = math.Min(minX, s.X), math.Max(maxX, s.X)
		minY, maxY = math.Min(minY, s.Y), math.Max(maxY, s.Y)
	}
	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)

	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
	}

	spawns := make(map[int]bool)
	for _, id := range doc.Spawns {
		spawns[id] = true
	}

	for _, s := range doc.Stars {
		if constellation >= 0 && s.Constellation != constellation {
			continue
		}
		col := int((s.X - minX) / spanX * float64(width-1))
		// y grows upwards in galaxy space
		row := height - 1 - int((s.Y-minY)/spanY*float64(height-1))
		symbol := getStarSymbol(s, spawns[s.ID])
		// spawn stars win a shared cell
		if grid[row][col] == ' ' || symbol == '@' {
			grid[row][col] = symbol
		}
	}

	border := "+" + strings.Repeat("-", width) + "+\n"
	output.WriteString(border)
	for _, line := range grid {
		output.WriteString("|" + string(line) + "|\n")
	}
	output.WriteString(border)
	output.WriteString(fmt.Sprintf("x: %.1f .. %.1f  y: %.1f .. %.1f\n", minX, maxX, minY, maxY))
}

func renderDetails(output *strings.Builder, doc *export.Document, constellation int) {
	output.WriteString("\nStar Details:\n")

	names := make(map[int]string)
	for _, c := range doc.Constellations {
		names[c.ID] = c.Name
	}
	spawns := make(map[int]bool)
	for _, id := range doc.Spawns {
		spawns[id] = true
	}

	adj := adjacency(doc)
	for _, s := range doc.Stars {
		if constellation >= 0 && s.Constellation != constellation {
			continue
		}
		lanes := append([]int(nil), adj[s.ID]...)
		sort.Ints(lanes)

		var laneStrs []string
		for _, id := range lanes {
			laneStrs = append(laneStrs, fmt.Sprintf("%d", id))
		}

		details := fmt.Sprintf("  [%c] %4d %-20s %-14s", getStarSymbol(s, spawns[s.ID]), s.ID,
			truncate(s.Name, 20), truncate(names[s.Constellation], 14))
		details += fmt.Sprintf(" planets: %d", len(s.Planets))
		if len(laneStrs) > 0 {
			details += " lanes: " + strings.Join(laneStrs, ", ")
		}
		output.WriteString(details + "\n")
	}
}

func getStarSymbol(s export.Star, spawn bool) byte {
	if spawn {
		return '@'
	}
	switch s.Type {
	case "BlueGiant":
		return 'B'
	case "WhiteStar":
		return 'W'
	case "YellowStar":
		return 'Y'
	case "OrangeStar":
		return 'O'
	case "RedDwarf":
		return 'r'
	case "NeutronStar":
		return 'n'
	default:
		return '*'
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func getLegend() string {
	return `
Legend:
  [@] Empire spawn star
  [B] Blue giant
  [W] White star
  [Y] Yellow star
  [O] Orange star
  [r] Red dwarf
  [n] Neutron star
  [*] Other star type
`
}

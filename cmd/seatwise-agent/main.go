// Command seatwise-agent is a terminal client for seat selection: it
// loads a reservation from a running seatwise API and lets the user
// toggle and confirm seats interactively.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aroya-air/seatwise/internal/client"
	"github.com/aroya-air/seatwise/internal/config"
	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/selection"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	baseURL := cfg.Gateway.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	ctrl := selection.New(client.New(baseURL))
	ctx := context.Background()

	if len(os.Args) > 1 {
		ctrl.LoadReservation(ctx, os.Args[1], nil)
		printStatus(ctrl)
	} else {
		fmt.Println("usage: load <reservation-id>, then toggle/confirm/map/status/quit")
	}

	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "load":
			if len(fields) < 2 {
				fmt.Println("load <reservation-id>")
				break
			}
			ctrl.LoadReservation(ctx, fields[1], nil)
			printStatus(ctrl)
		case "toggle":
			for _, id := range fields[1:] {
				ctrl.ToggleSeat(id)
			}
			printStatus(ctrl)
		case "confirm":
			var seats []string
			if len(fields) > 1 {
				seats = fields[1:]
			}
			ctrl.ConfirmSelection(ctx, seats)
			printStatus(ctrl)
		case "map":
			printMap(ctrl.SeatMap())
		case "status":
			printStatus(ctrl)
		case "quit", "exit":
			return
		default:
			fmt.Println("commands: load, toggle, confirm, map, status, quit")
		}
		fmt.Print("> ")
	}
}

func printStatus(ctrl *selection.Controller) {
	if msg := ctrl.ErrorMessage(); msg != "" {
		fmt.Println("! " + msg)
	}
	fmt.Printf("selected: %s  confirmed: %s  state: %s\n",
		joinOrDash(ctrl.SelectedSeats()),
		joinOrDash(ctrl.ConfirmedSelection().SelectedSeats),
		ctrl.State(),
	)
}

func printMap(m *domain.SeatMap) {
	if m == nil {
		fmt.Println("no reservation loaded")
		return
	}
	for _, sec := range m.Sections {
		fmt.Printf("%s (%s)\n", sec.Label, sec.Subtitle)
		for _, row := range sec.Rows {
			cells := make([]string, 0, len(row.Seats))
			for _, seat := range row.Seats {
				cells = append(cells, seatCell(seat))
			}
			fmt.Printf("%4s  %s\n", row.Label, strings.Join(cells, " "))
		}
	}
	fmt.Printf("available %d / %d, selected %d\n",
		m.Meta.AvailableSeats, m.Meta.TotalSeats, m.Meta.SelectedSeats)
}

func seatCell(seat domain.Seat) string {
	switch {
	case seat.Selected:
		return "[" + seat.Display + "]"
	case seat.Status == domain.SeatAvailable:
		return " " + seat.Display + " "
	default:
		return " -- "
	}
}

func joinOrDash(seats []string) string {
	if len(seats) == 0 {
		return "-"
	}
	return strings.Join(seats, ",")
}

package main

import (
	"flag"
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hospctl [-role ROLE] COMMAND

Commands:
  health         check the API server
  assets [QUERY] list assets, optionally fuzzy-filtered
  stats          show dashboard aggregates
  events         show the audit log
  orders         list service orders
  stock          list stock items
  sync           show connectivity and queue status
  online|offline report a connectivity signal`)
	os.Exit(2)
}

func main() {
	role := flag.String("role", "", "acquire a role token before running the command")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	client := NewApiClient()
	if *role != "" {
		if err := client.Login(*role); err != nil {
			fail(err)
		}
	}

	switch flag.Arg(0) {
	case "health":
		ok, err := client.CheckHealth()
		if err != nil {
			fail(err)
		}
		fmt.Println("API healthy:", ok)

	case "assets":
		assets, err := client.GetAssets(flag.Arg(1))
		if err != nil {
			fail(err)
		}
		for _, a := range assets {
			fmt.Printf("%-12s %-30s %-20s %s\n", a.ID, a.Name, a.Location, a.Status)
		}

	case "stats":
		stats, err := client.GetStats()
		if err != nil {
			fail(err)
		}
		fmt.Printf("checklist verified today: %d/%d\n", stats.VerifiedToday, stats.TotalChecklist)
		fmt.Printf("assets: %d operational, %d in maintenance, %d critical\n",
			stats.OperationalAssets, stats.MaintenanceAssets, stats.CriticalAssets)
		fmt.Printf("open orders: %d, security alerts: %d, critical telemetry: %d\n",
			stats.OpenOrders, stats.SecurityAlerts, stats.CriticalTelemetry)
		fmt.Printf("cloud synced: %v\n", stats.IsCloudSynced)

	case "events":
		events, err := client.GetEvents()
		if err != nil {
			fail(err)
		}
		for _, e := range events {
			fmt.Printf("%s [%s/%s] %s: %s\n", e.Timestamp, e.Type, e.Severity, e.User, e.Message)
		}

	case "orders":
		orders, err := client.GetOrders()
		if err != nil {
			fail(err)
		}
		for _, o := range orders {
			fmt.Printf("%-14s %-30s %-10s %s\n", o.ID, o.AssetName, o.Priority, o.Status)
		}

	case "stock":
		items, err := client.GetStock()
		if err != nil {
			fail(err)
		}
		for _, i := range items {
			low := ""
			if i.Quantity < i.MinQuantity {
				low = "  LOW"
			}
			fmt.Printf("%-12s %-30s %4d %s%s\n", i.ID, i.Name, i.Quantity, i.Unit, low)
		}

	case "sync":
		status, err := client.SyncStatus()
		if err != nil {
			fail(err)
		}
		fmt.Printf("online: %v, queued: %v, views: %v\n", status["online"], status["queueCount"], status["clients"])

	case "online", "offline":
		if err := client.SetOnline(flag.Arg(0) == "online"); err != nil {
			fail(err)
		}
		fmt.Println("connectivity signal sent")

	default:
		usage()
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/finwatch/go-orderbook-dashboard/provider/bookservice"
	"github.com/finwatch/go-orderbook-dashboard/usecase"
	"github.com/finwatch/go-orderbook-dashboard/view"

	promclient "github.com/finwatch/go-orderbook-dashboard/infrastructure/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %s", err)
	}

	go promclient.StartPromClientServer()

	api := bookservice.NewSyncAPI()
	dashboard := usecase.NewDashboard(api)

	ctx := context.Background()
	for {
		if err := dashboard.Init(ctx); err == nil {
			break
		} else {
			log.Printf("failed to start session: %s, retrying", err)
			time.Sleep(3 * time.Second)
		}
	}
	defer dashboard.Close()

	for range time.Tick(3 * time.Second) {
		switch dashboard.ActiveView() {
		case usecase.ViewOrderBook:
			state := dashboard.BookPoller.State()
			if state.HasResult {
				fmt.Println(view.RenderOrderBook(state.Result))
			}
			if state.Err != nil {
				fmt.Printf("refresh failed, showing stale data: %s\n", state.Err)
			}
		case usecase.ViewHistory:
			fmt.Println(view.RenderHistory(dashboard.History.State()))
		case usecase.ViewStats:
			state := dashboard.StatsPoller.State()
			if state.HasResult {
				fmt.Println(view.RenderStats(state.Result))
			}
		}
	}
}
